package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidFormat возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrOutOfRange = errors.New("time string out of range")
)

// TimeString время суток с точностью до минуты в формате "HH:MM".
// Хранится и сравнивается как строка: для значений с ведущими нулями
// лексикографический порядок совпадает с хронологическим.
// Значение "24:00" допустимо как вычисленный конец интервала.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение имеет формат HH:MM и находится в пределах суток
func (t TimeString) Validate() error {
	if _, err := t.TotalMinutes(); err != nil {
		return err
	}
	return nil
}

// TotalMinutes возвращает количество минут с начала суток
func (t TimeString) TotalMinutes() (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	// 24:00 - допустимая граница конца интервала
	if hours < 0 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	return hours*60 + minutes, nil
}

// AddMinutes возвращает новое время, сдвинутое на m минут вперед.
// Возвращает ошибку, если результат выходит за пределы суток.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.TotalMinutes()
	if err != nil {
		return "", err
	}

	total += m
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrOutOfRange, string(t), m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner.
// Postgres-драйвер отдает колонки TIME как time.Time, string или []byte.
func (t *TimeString) Scan(value interface{}) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*t = NewTimeString(v)
	case string:
		*t = truncateSeconds(v)
	case []byte:
		*t = truncateSeconds(string(v))
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, value)
	}

	return (*t).Validate()
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// truncateSeconds отбрасывает секунды из строки вида "10:00:00"
func truncateSeconds(s string) TimeString {
	if len(s) > 5 {
		return TimeString(s[:5])
	}
	return TimeString(s)
}

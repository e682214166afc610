package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StylistID <= 0 {
		return fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidDateRange)
	}

	return nil
}

// validateRange проверяет, что диапазон не длиннее горизонта бронирования
// и не выходит за него. Длина ограничивается независимо от границ: диапазон,
// уходящий далеко в прошлое, иначе заставил бы генератор обходить его целиком.
func validateRange(from, to time.Time, now time.Time, maxHorizonDays int) error {
	if dateOnly(from).AddDate(0, 0, maxHorizonDays).Before(dateOnly(to)) {
		return fmt.Errorf("%w: range spans more than %d days", ErrRangeTooLarge, maxHorizonDays)
	}

	maxDate := dateOnly(now).AddDate(0, 0, maxHorizonDays)
	if dateOnly(to).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrRangeTooLarge, maxHorizonDays)
	}

	return nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

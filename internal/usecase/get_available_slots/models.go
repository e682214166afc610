package get_available_slots

import (
	"time"

	"github.com/glowbook/scheduling-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	StylistID int64     // ID стилиста
	ServiceID int64     // ID услуги
	From      time.Time // Начало диапазона дат (без времени)
	To        time.Time // Конец диапазона дат, включительно (без времени)
}

// Response модель ответа со списком доступных слотов по дням
type Response struct {
	StylistID       int64      // ID стилиста
	ServiceID       int64      // ID услуги
	DurationMinutes int        // Длительность услуги в минутах
	From            time.Time  // Начало запрошенного диапазона
	To              time.Time  // Конец запрошенного диапазона
	Days            []DaySlots // Слоты по дням, дни без слотов опускаются
}

// DaySlots слоты на один день
type DaySlots struct {
	Date  time.Time // Дата (без времени)
	Slots []Slot    // Доступные слоты, упорядоченные по времени начала
}

// Slot модель доступного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания (начало + длительность услуги)
}

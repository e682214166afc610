package domain

import "errors"

// Default scheduling configuration values
const (
	DefaultSlotGranularityMinutes = 30
	DefaultMinLeadTimeHours       = 24
	DefaultMaxHorizonDays         = 60
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MinLeadTimeHours = 0
	MaxLeadTimeHours = 168 // 1 week

	MinHorizonDays = 1
	MaxHorizonDays = 365

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServiceNameLength        = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Доменные ошибки валидации
var (
	// ErrInvalidTimeRange время начала должно быть строго раньше времени конца
	ErrInvalidTimeRange = errors.New("domain: start time must be before end time")

	// ErrInvalidDayOfWeek день недели должен быть в диапазоне 0-6 (0 = воскресенье)
	ErrInvalidDayOfWeek = errors.New("domain: day of week must be between 0 and 6")

	// ErrInvalidDuration длительность услуги вне допустимых пределов
	ErrInvalidDuration = errors.New("domain: invalid service duration")

	// ErrInvalidPrice цена не может быть отрицательной
	ErrInvalidPrice = errors.New("domain: price must not be negative")

	// ErrEmptyServiceName название услуги обязательно
	ErrEmptyServiceName = errors.New("domain: service name is required")
)

// ActiveStatuses статусы бронирований, занимающих слот.
// Используется при подсчёте конфликтов.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses терминальные статусы, не занимающие слот
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByStylist,
	StatusNoShow,
}

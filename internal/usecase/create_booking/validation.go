package create_booking

import (
	"fmt"
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
	"github.com/glowbook/scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StylistID <= 0 {
		return fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и в пределах горизонта бронирования
func validateDate(requestDate, now time.Time, maxHorizonDays int) error {
	requestDateOnly := dateOnly(requestDate)
	nowOnly := dateOnly(now)

	if requestDateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	maxDate := nowOnly.AddDate(0, 0, maxHorizonDays)
	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxHorizonDays)
	}

	return nil
}

// validateLeadTime проверяет минимальное время до записи.
// Сравнивается полный момент начала (дата + время), а не только дата:
// запись на завтрашнее утро при суточном ограничении вечером уже недоступна.
func validateLeadTime(date time.Time, start types.TimeString, now time.Time, minLeadTimeHours int) error {
	minutes, err := start.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	startAt := time.Date(date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0, now.Location())

	minStartAt := now.Add(time.Duration(minLeadTimeHours) * time.Hour)
	if startAt.Before(minStartAt) {
		return fmt.Errorf("%w: booking requires at least %d hours notice", ErrTooLateToBook, minLeadTimeHours)
	}

	return nil
}

// validateWithinWorkingHours проверяет, что интервал [start, end) целиком
// помещается в одно из рабочих окон, а start лежит на сетке слотов окна
func validateWithinWorkingHours(rules []*domain.AvailabilityRule, start, end types.TimeString, granularityMinutes int) error {
	for _, rule := range rules {
		if start.IsBefore(rule.StartTime) || end.IsAfter(rule.EndTime) {
			continue
		}

		startMinutes, err := start.TotalMinutes()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		ruleStartMinutes, err := rule.StartTime.TotalMinutes()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// Начало должно совпадать с кандидатом генератора слотов
		if (startMinutes-ruleStartMinutes)%granularityMinutes != 0 {
			return fmt.Errorf("%w: start time is not aligned to the %d-minute grid", ErrInvalidTimeSlot, granularityMinutes)
		}

		return nil
	}

	return ErrOutsideWorkingHours
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

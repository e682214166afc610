// Package conflict единственная точка проверки пересечений бронирований.
// Генератор слотов и создание бронирования используют один и тот же
// предикат, чтобы логика пересечений не расходилась.
package conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
	"github.com/glowbook/scheduling-service/pkg/types"
)

var (
	// ErrInvalidInterval возвращается при некорректном интервале (start >= end)
	ErrInvalidInterval = errors.New("conflict: start time must be before end time")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("conflict: internal error")
)

// Checker проверяет кандидата на пересечение с активными бронированиями стилиста
type Checker struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewChecker создает новый экземпляр проверки конфликтов
func NewChecker(bookingRepo BookingRepository, logger Logger) *Checker {
	return &Checker{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// HasConflict возвращает true, если интервал [start, end) на указанную дату
// пересекается с активным бронированием стилиста. Интервалы полуоткрытые:
// бронирование, заканчивающееся ровно в start, конфликтом НЕ является.
// excludeBookingID позволяет исключить переносимое бронирование из проверки.
//
// Внутри транзакции чтение бронирований выполняется с блокировкой FOR UPDATE
// (см. booking.Repository.GetByStylistWithFilter).
func (c *Checker) HasConflict(
	ctx context.Context,
	stylistID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID *int64,
) (bool, error) {
	if !start.IsBefore(end) {
		return false, ErrInvalidInterval
	}

	// Только активные бронирования на эту дату
	filter := domain.StylistBookingsFilter{
		StylistID:       stylistID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	bookings, err := c.bookingRepo.GetByStylistWithFilter(ctx, filter)
	if err != nil {
		c.logger.Error("HasConflict: failed to get bookings for stylist=%d date=%s: %v",
			stylistID, date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return domain.CountOverlapping(bookings, start, end, excludeBookingID) > 0, nil
}

// CountOverlapping возвращает число активных бронирований стилиста,
// пересекающихся с интервалом [start, end) на указанную дату
func (c *Checker) CountOverlapping(
	ctx context.Context,
	stylistID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID *int64,
) (int, error) {
	if !start.IsBefore(end) {
		return 0, ErrInvalidInterval
	}

	filter := domain.StylistBookingsFilter{
		StylistID:       stylistID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	bookings, err := c.bookingRepo.GetByStylistWithFilter(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return domain.CountOverlapping(bookings, start, end, excludeBookingID), nil
}

package domain

import (
	"time"

	"github.com/glowbook/scheduling-service/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByClient  BookingStatus = "cancelled_by_client"
	StatusCancelledByStylist BookingStatus = "cancelled_by_stylist"
	StatusNoShow             BookingStatus = "no_show"
)

// Booking represents one appointment reservation in the system
type Booking struct {
	ID              int64
	StylistID       int64
	ClientID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	ClientName   *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the derived end of the booking interval (start + duration)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsActive returns true if the booking still occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsTerminal returns true if the booking reached a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelledByClient ||
		b.Status == StatusCancelledByStylist ||
		b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled by either side
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByStylist
}

// StylistBookingsFilter фильтр для получения бронирований стилиста
type StylistBookingsFilter struct {
	StylistID       int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые бронирования
}

package bookings

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByStylistWithFilter(ctx context.Context, filter domain.StylistBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// Notifier интерфейс отправки уведомлений о событиях бронирования
type Notifier interface {
	Dispatch(booking *domain.Booking, event domain.BookingEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

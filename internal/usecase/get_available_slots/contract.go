package get_available_slots

import (
	"context"
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByStylistWithFilter(ctx context.Context, filter domain.StylistBookingsFilter) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetActiveByStylist(ctx context.Context, stylistID int64) ([]*domain.AvailabilityRule, error)
}

// ServiceRepository интерфейс репозитория услуг стилиста
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package create_booking

import (
	"context"
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
	"github.com/glowbook/scheduling-service/internal/integrations/profileservice"
	"github.com/glowbook/scheduling-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetActiveByStylistAndDay(ctx context.Context, stylistID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
}

// ServiceRepository интерфейс репозитория услуг стилиста
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
}

// ConflictChecker интерфейс проверки пересечений с активными бронированиями
type ConflictChecker interface {
	CountOverlapping(ctx context.Context, stylistID int64, date time.Time, start, end types.TimeString, excludeBookingID *int64) (int, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetStylist(ctx context.Context, stylistID int64) (*profileservice.Stylist, error)
	GetClient(ctx context.Context, clientID int64) (*profileservice.ClientProfile, error)
}

// Notifier интерфейс отправки уведомлений о событиях бронирования
type Notifier interface {
	Dispatch(booking *domain.Booking, event domain.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

package jobs

import (
	"context"
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований для фоновых задач
type BookingRepository interface {
	GetIDsDueForStart(ctx context.Context, now time.Time) ([]int64, error)
	GetIDsDueForCompletion(ctx context.Context, now time.Time) ([]int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

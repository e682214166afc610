package availability

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	GetActiveByStylist(ctx context.Context, stylistID int64) ([]*domain.AvailabilityRule, error)
	GetActiveByStylistAndDay(ctx context.Context, stylistID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package offerings

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг стилиста
type ServiceRepository interface {
	Create(ctx context.Context, offering *domain.ServiceOffering) (*domain.ServiceOffering, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
	GetActiveByStylist(ctx context.Context, stylistID int64) ([]*domain.ServiceOffering, error)
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

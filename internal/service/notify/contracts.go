package notify

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/integrations/profileservice"
)

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetStylist(ctx context.Context, stylistID int64) (*profileservice.Stylist, error)
	GetClient(ctx context.Context, clientID int64) (*profileservice.ClientProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

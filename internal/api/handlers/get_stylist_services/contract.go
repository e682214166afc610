package get_stylist_services

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/service/offerings/models"
)

type OfferingsService interface {
	ListServices(ctx context.Context, stylistID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

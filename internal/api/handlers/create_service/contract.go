package create_service

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/service/offerings/models"
)

type OfferingsService interface {
	CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

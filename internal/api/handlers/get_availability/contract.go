package get_availability

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/service/availability/models"
)

type AvailabilityService interface {
	ListRules(ctx context.Context, stylistID int64) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

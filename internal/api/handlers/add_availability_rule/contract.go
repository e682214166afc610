package add_availability_rule

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/service/availability/models"
)

type AvailabilityService interface {
	AddRule(ctx context.Context, req *models.AddRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

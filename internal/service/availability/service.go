package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowbook/scheduling-service/internal/domain"
	availabilityRepo "github.com/glowbook/scheduling-service/internal/infra/storage/availability"
	"github.com/glowbook/scheduling-service/internal/service/availability/models"
	"github.com/glowbook/scheduling-service/pkg/types"
)

// Service сервис управления еженедельной доступностью стилиста
type Service struct {
	ruleRepo RuleRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(ruleRepo RuleRepository, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// ListRules возвращает активные правила стилиста,
// упорядоченные по дню недели и времени начала
func (s *Service) ListRules(ctx context.Context, stylistID int64) (*models.RuleListResponse, error) {
	s.logger.Info("ListRules: fetching rules for stylist=%d", stylistID)

	if stylistID <= 0 {
		return nil, fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	rules, err := s.ruleRepo.GetActiveByStylist(ctx, stylistID)
	if err != nil {
		s.logger.Error("ListRules: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRules: successfully fetched %d rules for stylist=%d", len(rules), stylistID)
	return models.FromDomainRuleList(stylistID, rules), nil
}

// AddRule создает новое правило доступности.
// Правило отклоняется, если startTime >= endTime или если оно пересекается
// с существующим активным правилом стилиста на тот же день недели.
// Управлять расписанием может только сам стилист.
func (s *Service) AddRule(ctx context.Context, req *models.AddRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("AddRule: stylist=%d, day=%d, window=%s-%s",
		req.StylistID, req.DayOfWeek, req.StartTime, req.EndTime)

	if req.StylistID <= 0 {
		return nil, fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	// Только владелец расписания может его менять
	if req.UserID != req.StylistID {
		s.logger.Warn("AddRule: access denied for user=%d to stylist=%d schedule", req.UserID, req.StylistID)
		return nil, ErrAccessDenied
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	rule := &domain.AvailabilityRule{
		StylistID: req.StylistID,
		DayOfWeek: req.DayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		IsActive:  true,
	}

	if err := rule.Validate(); err != nil {
		s.logger.Warn("AddRule: validation failed for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем пересечение с существующими активными правилами на этот день
	existing, err := s.ruleRepo.GetActiveByStylistAndDay(ctx, req.StylistID, req.DayOfWeek)
	if err != nil {
		s.logger.Error("AddRule: failed to get existing rules for stylist=%d day=%d: %v",
			req.StylistID, req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: AddRule - repository error: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if rule.Overlaps(other) {
			s.logger.Warn("AddRule: rule overlaps existing rule id=%d for stylist=%d", other.ID, req.StylistID)
			return nil, fmt.Errorf("%w: overlaps rule id=%d (%s-%s)",
				ErrRuleOverlap, other.ID, other.StartTime, other.EndTime)
		}
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("AddRule: failed to create rule for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: AddRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddRule: successfully created rule id=%d for stylist=%d", created.ID, req.StylistID)
	return models.FromDomainRule(created), nil
}

// RemoveRule мягко удаляет правило доступности.
// Операция идемпотентна: повторное удаление уже неактивного правила успешно.
// Существующие бронирования не затрагиваются - они остаются действительными.
func (s *Service) RemoveRule(ctx context.Context, req *models.RemoveRuleRequest) error {
	s.logger.Info("RemoveRule: rule=%d, stylist=%d, user=%d", req.RuleID, req.StylistID, req.UserID)

	rule, err := s.ruleRepo.GetByID(ctx, req.RuleID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("RemoveRule: rule id=%d not found", req.RuleID)
			return ErrRuleNotFound
		}
		s.logger.Error("RemoveRule: repository error for rule id=%d: %v", req.RuleID, err)
		return fmt.Errorf("%w: RemoveRule - repository error: %v", ErrInternal, err)
	}

	// Только владелец расписания может удалять его правила
	if rule.StylistID != req.StylistID || req.UserID != rule.StylistID {
		s.logger.Warn("RemoveRule: access denied for user=%d to rule id=%d", req.UserID, req.RuleID)
		return ErrAccessDenied
	}

	if err := s.ruleRepo.Deactivate(ctx, req.RuleID); err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		s.logger.Error("RemoveRule: failed to deactivate rule id=%d: %v", req.RuleID, err)
		return fmt.Errorf("%w: RemoveRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveRule: successfully deactivated rule id=%d", req.RuleID)
	return nil
}

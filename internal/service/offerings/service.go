// Package offerings управление каталогом услуг стилиста.
// Длительность услуги определяет длительность слота при генерации
// и не обязана быть кратной шагу сетки.
package offerings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glowbook/scheduling-service/internal/domain"
	serviceRepo "github.com/glowbook/scheduling-service/internal/infra/storage/serviceoffering"
	"github.com/glowbook/scheduling-service/internal/service/offerings/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса услуг
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListServices возвращает активные услуги стилиста
func (s *Service) ListServices(ctx context.Context, stylistID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services for stylist=%d", stylistID)

	if stylistID <= 0 {
		return nil, fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	services, err := s.serviceRepo.GetActiveByStylist(ctx, stylistID)
	if err != nil {
		s.logger.Error("ListServices: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services for stylist=%d", len(services), stylistID)
	return models.FromDomainServiceList(stylistID, services), nil
}

// CreateService создает новую услугу. Доступно только самому стилисту.
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: stylist=%d, name=%q, duration=%d", req.StylistID, req.Name, req.DurationMinutes)

	if req.StylistID <= 0 {
		return nil, fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	if req.UserID != req.StylistID {
		s.logger.Warn("CreateService: access denied for user=%d to stylist=%d catalog", req.UserID, req.StylistID)
		return nil, ErrAccessDenied
	}

	name := strings.TrimSpace(req.Name)
	if len(name) > domain.MaxServiceNameLength {
		return nil, fmt.Errorf("%w: service name is too long", ErrInvalidInput)
	}

	offering := &domain.ServiceOffering{
		StylistID:       req.StylistID,
		Name:            name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}

	if err := offering.Validate(); err != nil {
		s.logger.Warn("CreateService: validation failed for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.serviceRepo.Create(ctx, offering)
	if err != nil {
		s.logger.Error("CreateService: failed to create service for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d for stylist=%d", created.ID, req.StylistID)
	return models.FromDomainService(created), nil
}

// RemoveService мягко удаляет услугу. Существующие бронирования не
// затрагиваются - денормализованные данные услуги остаются в них.
func (s *Service) RemoveService(ctx context.Context, req *models.RemoveServiceRequest) error {
	s.logger.Info("RemoveService: service=%d, stylist=%d, user=%d", req.ServiceID, req.StylistID, req.UserID)

	offering, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("RemoveService: service id=%d not found", req.ServiceID)
			return ErrServiceNotFound
		}
		s.logger.Error("RemoveService: repository error for service id=%d: %v", req.ServiceID, err)
		return fmt.Errorf("%w: RemoveService - repository error: %v", ErrInternal, err)
	}

	if offering.StylistID != req.StylistID || req.UserID != offering.StylistID {
		s.logger.Warn("RemoveService: access denied for user=%d to service id=%d", req.UserID, req.ServiceID)
		return ErrAccessDenied
	}

	if err := s.serviceRepo.Deactivate(ctx, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("RemoveService: failed to deactivate service id=%d: %v", req.ServiceID, err)
		return fmt.Errorf("%w: RemoveService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveService: successfully deactivated service id=%d", req.ServiceID)
	return nil
}

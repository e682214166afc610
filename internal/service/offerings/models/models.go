package models

import (
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	UserID          int64   `json:"userId"`
	StylistID       int64   `json:"stylistId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// RemoveServiceRequest запрос на удаление услуги
type RemoveServiceRequest struct {
	UserID    int64 `json:"userId"`
	StylistID int64 `json:"stylistId"`
	ServiceID int64 `json:"serviceId"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	StylistID       int64   `json:"stylistId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"isActive"`
	CreatedAt       string  `json:"createdAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	StylistID int64             `json:"stylistId"`
	Services  []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.ServiceOffering) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		StylistID:       s.StylistID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(stylistID int64, services []*domain.ServiceOffering) *ServiceListResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, *FromDomainService(s))
	}

	return &ServiceListResponse{
		StylistID: stylistID,
		Services:  result,
	}
}

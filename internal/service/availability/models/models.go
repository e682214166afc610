package models

import (
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// Request модели

// AddRuleRequest запрос на добавление правила доступности
type AddRuleRequest struct {
	UserID    int64  `json:"userId"`
	StylistID int64  `json:"stylistId"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// RemoveRuleRequest запрос на удаление правила доступности
type RemoveRuleRequest struct {
	UserID    int64 `json:"userId"`
	StylistID int64 `json:"stylistId"`
	RuleID    int64 `json:"ruleId"`
}

// Response модели

// RuleResponse ответ с данными правила доступности
type RuleResponse struct {
	ID        int64  `json:"id"`
	StylistID int64  `json:"stylistId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// RuleListResponse ответ со списком правил доступности
type RuleListResponse struct {
	StylistID int64          `json:"stylistId"`
	Rules     []RuleResponse `json:"rules"`
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}

	return &RuleResponse{
		ID:        r.ID,
		StylistID: r.StylistID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(stylistID int64, rules []*domain.AvailabilityRule) *RuleListResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, *FromDomainRule(rule))
	}

	return &RuleListResponse{
		StylistID: stylistID,
		Rules:     result,
	}
}

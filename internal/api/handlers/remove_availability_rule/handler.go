package remove_availability_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/api/middleware"
	"github.com/glowbook/scheduling-service/internal/service/availability"
	"github.com/glowbook/scheduling-service/internal/service/availability/models"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgInvalidRuleID    = "некорректный ID правила"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "правило доступности не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/stylists/{stylistId}/availability/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := strconv.ParseInt(vars["stylistId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /stylists/{id}/availability/{ruleId} - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /stylists/{id}/availability/{ruleId} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /stylists/{id}/availability/{ruleId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.RemoveRule(r.Context(), &models.RemoveRuleRequest{
		UserID:    userID,
		StylistID: stylistID,
		RuleID:    ruleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrRuleNotFound):
			h.logger.Warn("DELETE /stylists/{id}/availability/{ruleId} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /stylists/{id}/availability/{ruleId} - Access denied: rule_id=%d, user_id=%d",
				ruleID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /stylists/{id}/availability/{ruleId} - Failed to remove rule: rule_id=%d, error=%v",
				ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /stylists/{id}/availability/{ruleId} - Rule removed successfully: rule_id=%d, stylist_id=%d",
		ruleID, stylistID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

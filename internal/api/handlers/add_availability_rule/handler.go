package add_availability_rule

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
	msgInvalidStylistID   = "некорректный ID стилиста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgRuleOverlap        = "правило пересекается с существующим правилом"
	msgInvalidRule        = "некорректное правило доступности"
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

// Handle POST /api/v1/stylists/{stylistId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := strconv.ParseInt(vars["stylistId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /stylists/{id}/availability - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /stylists/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stylists/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddRule(r.Context(), &models.AddRuleRequest{
		UserID:    userID,
		StylistID: stylistID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /stylists/{id}/availability - Access denied: stylist_id=%d, user_id=%d",
				stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrRuleOverlap):
			h.logger.Warn("POST /stylists/{id}/availability - Rule overlap: stylist_id=%d", stylistID)
			handlers.RespondBadRequest(w, msgRuleOverlap)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /stylists/{id}/availability - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("POST /stylists/{id}/availability - Failed to add rule: stylist_id=%d, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stylists/{id}/availability - Rule added successfully: rule_id=%d, stylist_id=%d",
		result.ID, stylistID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

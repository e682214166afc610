package create_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/api/middleware"
	"github.com/glowbook/scheduling-service/internal/service/offerings"
	"github.com/glowbook/scheduling-service/internal/service/offerings/models"
)

const (
	msgInvalidStylistID   = "некорректный ID стилиста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidService     = "некорректные данные услуги"
)

type Handler struct {
	service OfferingsService
	logger  Logger
}

func NewHandler(service OfferingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/stylists/{stylistId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := strconv.ParseInt(vars["stylistId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /stylists/{id}/services - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /stylists/{id}/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stylists/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), &models.CreateServiceRequest{
		UserID:          userID,
		StylistID:       stylistID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, offerings.ErrAccessDenied):
			h.logger.Warn("POST /stylists/{id}/services - Access denied: stylist_id=%d, user_id=%d",
				stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, offerings.ErrInvalidInput):
			h.logger.Warn("POST /stylists/{id}/services - Invalid service: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("POST /stylists/{id}/services - Failed to create service: stylist_id=%d, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stylists/{id}/services - Service created successfully: service_id=%d, stylist_id=%d",
		result.ID, stylistID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

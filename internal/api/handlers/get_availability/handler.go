package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/service/availability"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
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

// Handle GET /api/v1/stylists/{stylistId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := strconv.ParseInt(vars["stylistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/availability - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	result, err := h.service.ListRules(r.Context(), stylistID)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("GET /stylists/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStylistID)
			return
		}

		h.logger.Error("GET /stylists/{id}/availability - Failed to get rules: stylist_id=%d, error=%v",
			stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stylists/{id}/availability - Rules retrieved successfully: stylist_id=%d, count=%d",
		stylistID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

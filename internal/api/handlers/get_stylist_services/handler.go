package get_stylist_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/service/offerings"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
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

// Handle GET /api/v1/stylists/{stylistId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := strconv.ParseInt(vars["stylistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/services - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	result, err := h.service.ListServices(r.Context(), stylistID)
	if err != nil {
		if errors.Is(err, offerings.ErrInvalidInput) {
			h.logger.Warn("GET /stylists/{id}/services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStylistID)
			return
		}

		h.logger.Error("GET /stylists/{id}/services - Failed to get services: stylist_id=%d, error=%v",
			stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stylists/{id}/services - Services retrieved successfully: stylist_id=%d, count=%d",
		stylistID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_client_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/api/middleware"
	"github.com/glowbook/scheduling-service/internal/service/bookings"
	"github.com/glowbook/scheduling-service/internal/service/bookings/models"
	"github.com/glowbook/scheduling-service/pkg/ptr"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidStatus   = "некорректный статус бронирования"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/bookings - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Фильтр по статусу опционален
	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = ptr.Ptr(status)
	}

	result, err := h.service.GetClientBookings(r.Context(), &models.GetClientBookingsRequest{
		UserID:   userID,
		ClientID: clientID,
		Status:   statusPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /clients/{id}/bookings - Access denied: client_id=%d, user_id=%d", clientID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/{id}/bookings - Failed to get bookings: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/bookings - Bookings retrieved successfully: client_id=%d, count=%d",
		clientID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

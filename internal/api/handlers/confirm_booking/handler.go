package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/api/middleware"
	"github.com/glowbook/scheduling-service/internal/service/bookings"
	"github.com/glowbook/scheduling-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgNotFound          = "бронирование не найдено"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgInvalidTransition = "бронирование нельзя подтвердить в текущем статусе"
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

// Handle PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Confirm(r.Context(), &models.ConfirmBookingRequest{
		UserID:    userID,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/{id}/confirm - Failed to confirm booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/confirm - Booking confirmed successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

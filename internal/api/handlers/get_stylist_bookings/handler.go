package get_stylist_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/api/middleware"
	"github.com/glowbook/scheduling-service/internal/domain"
	"github.com/glowbook/scheduling-service/internal/service/bookings"
	"github.com/glowbook/scheduling-service/internal/service/bookings/models"
	"github.com/glowbook/scheduling-service/pkg/ptr"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/stylists/{stylistId}/bookings?from=&to=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := strconv.ParseInt(vars["stylistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/bookings - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /stylists/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	var startDate, endDate *time.Time
	if rawFrom := query.Get("from"); rawFrom != "" {
		from, err := time.Parse(domain.DateFormat, rawFrom)
		if err != nil {
			h.logger.Warn("GET /stylists/{id}/bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		startDate = &from
	}
	if rawTo := query.Get("to"); rawTo != "" {
		to, err := time.Parse(domain.DateFormat, rawTo)
		if err != nil {
			h.logger.Warn("GET /stylists/{id}/bookings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		endDate = &to
	}

	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = ptr.Ptr(status)
	}

	includeInactive := query.Get("includeInactive") == "true"

	result, err := h.service.GetStylistBookings(r.Context(), &models.GetStylistBookingsRequest{
		UserID:          userID,
		StylistID:       stylistID,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /stylists/{id}/bookings - Access denied: stylist_id=%d, user_id=%d",
				stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /stylists/{id}/bookings - Failed to get bookings: stylist_id=%d, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/bookings - Bookings retrieved successfully: stylist_id=%d, count=%d",
		stylistID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

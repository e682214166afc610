package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/domain"
	getAvailableSlots "github.com/glowbook/scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "некорректный диапазон дат"
	msgRangeTooLarge    = "диапазон дат превышает горизонт бронирования"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/available-slots?serviceId=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем stylistId из URL
	vars := mux.Vars(r)

	stylistID, err := strconv.ParseInt(vars["stylistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/available-slots - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/available-slots - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Параметр to опционален: по умолчанию один день
	to := from
	if rawTo := query.Get("to"); rawTo != "" {
		to, err = time.Parse(domain.DateFormat, rawTo)
		if err != nil {
			h.logger.Warn("GET /stylists/{id}/available-slots - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	useCaseReq := &getAvailableSlots.Request{
		StylistID: stylistID,
		ServiceID: serviceID,
		From:      from,
		To:        to,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound),
			errors.Is(err, getAvailableSlots.ErrServiceNotOwned):
			h.logger.Warn("GET /stylists/{id}/available-slots - Service not found: service_id=%d, stylist_id=%d",
				serviceID, stylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /stylists/{id}/available-slots - Range too large: stylist_id=%d", stylistID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange),
			errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /stylists/{id}/available-slots - Failed to get slots: stylist_id=%d, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/available-slots - Slots retrieved successfully: stylist_id=%d, days=%d",
		stylistID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/glowbook/scheduling-service/internal/api/handlers"
	"github.com/glowbook/scheduling-service/internal/api/middleware"
	createBooking "github.com/glowbook/scheduling-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgStylistNotFound     = "стилист не найден"
	msgClientNotFound      = "профиль клиента не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgInvalidBookingDate  = "некорректная дата бронирования"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgOutsideWorkingHours = "слот вне рабочих часов стилиста"
	msgInvalidTimeSlot     = "некорректный временной слот"
	msgTooLateToBook       = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Клиентом становится аутентифицированный пользователь
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: client_id=%d, stylist_id=%d", clientID, req.StylistID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrStylistNotFound):
			h.logger.Warn("POST /bookings - Stylist not found: stylist_id=%d", req.StylistID)
			handlers.RespondNotFound(w, msgStylistNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound),
			errors.Is(err, createBooking.ErrServiceNotOwned):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d, stylist_id=%d", req.ServiceID, req.StylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, stylist_id=%d", clientID, req.StylistID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: client_id=%d, stylist_id=%d", clientID, req.StylistID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: client_id=%d, stylist_id=%d", clientID, req.StylistID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: client_id=%d, stylist_id=%d", clientID, req.StylistID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: client_id=%d, stylist_id=%d", clientID, req.StylistID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, stylist_id=%d, error=%v",
				clientID, req.StylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, stylist_id=%d",
		result.ID, clientID, req.StylistID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

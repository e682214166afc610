// Package bookings операции жизненного цикла бронирования после его создания:
// просмотр, подтверждение, отмена и смена статуса стилистом.
//
// Все переходы статусов проходят через таблицу допустимых переходов
// в domain - сервис не содержит собственной логики переходов.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glowbook/scheduling-service/internal/domain"
	bookingRepo "github.com/glowbook/scheduling-service/internal/infra/storage/booking"
	"github.com/glowbook/scheduling-service/internal/service/bookings/models"
)

// Service сервис управления жизненным циклом бронирований
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, notifier Notifier, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID возвращает бронирование по ID.
// Доступ имеют только клиент и стилист этого бронирования.
func (s *Service) GetByID(ctx context.Context, req *models.GetBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: booking=%d, user=%d", req.BookingID, req.UserID)

	booking, err := s.fetchBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.ClientID != req.UserID && booking.StylistID != req.UserID {
		s.logger.Warn("GetByID: access denied for user=%d to booking=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings возвращает бронирования клиента,
// опционально отфильтрованные по статусу.
// Клиент видит только собственные бронирования.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: client=%d, user=%d", req.ClientID, req.UserID)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientBookings: access denied for user=%d to client=%d bookings", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStylistBookings возвращает бронирования стилиста с фильтрацией
// по периоду и статусу. Стилист видит только собственный журнал.
func (s *Service) GetStylistBookings(ctx context.Context, req *models.GetStylistBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStylistBookings: stylist=%d, user=%d", req.StylistID, req.UserID)

	if req.StylistID <= 0 {
		return nil, fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	if req.UserID != req.StylistID {
		s.logger.Warn("GetStylistBookings: access denied for user=%d to stylist=%d bookings", req.UserID, req.StylistID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	filter := domain.StylistBookingsFilter{
		StylistID:       req.StylistID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          status,
		IncludeInactive: req.IncludeInactive,
	}

	bookings, err := s.bookingRepo.GetByStylistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStylistBookings: repository error for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: GetStylistBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStylistBookings: fetched %d bookings for stylist=%d", len(bookings), req.StylistID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает заявку на бронирование.
// Подтвердить может только стилист, и только заявку в статусе pending.
func (s *Service) Confirm(ctx context.Context, req *models.ConfirmBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: booking=%d, user=%d", req.BookingID, req.UserID)

	booking, err := s.fetchBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.StylistID != req.UserID {
		s.logger.Warn("Confirm: access denied for user=%d to booking=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, booking, domain.StatusConfirmed)
}

// Cancel отменяет бронирование.
// Отменить могут обе стороны: клиент получает статус cancelled_by_client,
// стилист - cancelled_by_stylist. Отменить можно только заявку
// в статусе pending или confirmed.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking=%d, user=%d", req.BookingID, req.UserID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.fetchBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	var targetStatus domain.BookingStatus
	switch req.UserID {
	case booking.ClientID:
		targetStatus = domain.StatusCancelledByClient
	case booking.StylistID:
		targetStatus = domain.StatusCancelledByStylist
	default:
		s.logger.Warn("Cancel: access denied for user=%d to booking=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking=%d in status %s cannot be cancelled", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, booking.Status)
	}

	reason := strings.TrimSpace(req.Reason)
	if err := s.bookingRepo.Cancel(ctx, booking.ID, targetStatus, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Между чтением и отменой бронирование покинуло pending/confirmed
			s.logger.Warn("Cancel: booking=%d status changed concurrently, cancel rejected", booking.ID)
			return nil, fmt.Errorf("%w: booking status changed concurrently", ErrCannotCancel)
		}
		s.logger.Error("Cancel: repository error for booking=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = targetStatus
	if reason != "" {
		booking.CancellationReason = &reason
	}

	s.logger.Info("Cancel: booking=%d cancelled with status %s", booking.ID, targetStatus)
	s.notifier.Dispatch(booking, domain.EventForStatus(targetStatus))

	return models.FromDomainBooking(booking), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Доступно только стилисту бронирования; допустимость перехода
// проверяется по доменной таблице переходов.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking=%d, user=%d, newStatus=%s", req.BookingID, req.UserID, req.NewStatus)

	newStatus, ok := models.ToDomainBookingStatus(req.NewStatus)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.NewStatus)
	}

	// Отмена идет через Cancel с указанием причины
	if newStatus == domain.StatusCancelledByClient || newStatus == domain.StatusCancelledByStylist {
		return nil, fmt.Errorf("%w: use the cancel operation for cancellation", ErrInvalidInput)
	}

	booking, err := s.fetchBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.StylistID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to booking=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, booking, newStatus)
}

// transition выполняет проверенный переход статуса с уведомлением.
// Обновление в репозитории условное (WHERE status = прочитанный статус):
// конкурентный переход между чтением и записью отклоняется без повторного
// уведомления.
func (s *Service) transition(ctx context.Context, booking *domain.Booking, to domain.BookingStatus) (*models.BookingResponse, error) {
	if !domain.CanTransition(booking.Status, to) {
		s.logger.Warn("transition: booking=%d transition %s -> %s is not allowed",
			booking.ID, booking.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, to); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("transition: booking=%d status changed concurrently, %s -> %s rejected",
				booking.ID, booking.Status, to)
			return nil, fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("transition: repository error for booking=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	booking.Status = to

	s.logger.Info("transition: booking=%d moved to status %s", booking.ID, to)
	s.notifier.Dispatch(booking, domain.EventForStatus(to))

	return models.FromDomainBooking(booking), nil
}

func (s *Service) fetchBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("fetchBooking: booking=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("fetchBooking: repository error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: fetchBooking - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}

func (s *Service) parseStatusFilter(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	status, ok := models.ToDomainBookingStatus(*raw)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *raw)
	}

	return &status, nil
}

package models

import (
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// Request модели

// GetBookingRequest запрос на получение бронирования
type GetBookingRequest struct {
	UserID    int64
	BookingID int64
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64
	ClientID int64
	Status   *string
}

// GetStylistBookingsRequest запрос на получение бронирований стилиста
type GetStylistBookingsRequest struct {
	UserID          int64
	StylistID       int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ConfirmBookingRequest запрос стилиста на подтверждение заявки
type ConfirmBookingRequest struct {
	UserID    int64
	BookingID int64
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID    int64  `json:"userId"`
	BookingID int64  `json:"bookingId"`
	Reason    string `json:"reason"`
}

// UpdateStatusRequest запрос стилиста на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID    int64  `json:"userId"`
	BookingID int64  `json:"bookingId"`
	NewStatus string `json:"newStatus"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	StylistID       int64   `json:"stylistId"`
	ClientID        int64   `json:"clientId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // YYYY-MM-DD
	StartTime       string  `json:"startTime"`   // HH:MM
	EndTime         string  `json:"endTime"`     // HH:MM
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	ClientName      *string `json:"clientName,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ToDomainBookingStatus конвертирует строковый статус в доменный.
// Возвращает false для неизвестного статуса.
func ToDomainBookingStatus(status string) (domain.BookingStatus, bool) {
	s := domain.BookingStatus(status)
	return s, domain.IsValidStatus(s)
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		StylistID:       b.StylistID,
		ClientID:        b.ClientID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		ClientName:      b.ClientName,
		Notes:           b.Notes,

		CancellationReason: b.CancellationReason,

		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}

	if endTime, err := b.EndTime(); err == nil {
		resp.EndTime = endTime.String()
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}

	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

package create_booking

import (
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
	createBooking "github.com/glowbook/scheduling-service/internal/usecase/create_booking"
	"github.com/glowbook/scheduling-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StylistID   int64   `json:"stylistId"`
	ServiceID   int64   `json:"serviceId"`
	BookingDate string  `json:"bookingDate"` // "2026-09-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	StylistID       int64   `json:"stylistId"`
	ClientID        int64   `json:"clientId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	ClientName      *string `json:"clientName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:  clientID,
		StylistID: r.StylistID,
		ServiceID: r.ServiceID,
		Date:      bookingDate,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		StylistID:       resp.StylistID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		ClientName:      resp.ClientName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

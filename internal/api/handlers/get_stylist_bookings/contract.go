package get_stylist_bookings

import (
	"context"

	"github.com/glowbook/scheduling-service/internal/service/bookings/models"
)

type BookingService interface {
	GetStylistBookings(ctx context.Context, req *models.GetStylistBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/scheduling-service/internal/domain"
	bookingRepo "github.com/glowbook/scheduling-service/internal/infra/storage/booking"
	"github.com/glowbook/scheduling-service/internal/service/bookings/models"
)

const (
	clientID  int64 = 1
	stylistID int64 = 10
	otherID   int64 = 99
)

type memBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newMemBookingRepo(bookings ...*domain.Booking) *memBookingRepo {
	repo := &memBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *memBookingRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ClientID != clientID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *memBookingRepo) GetByStylistWithFilter(_ context.Context, filter domain.StylistBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.StylistID != filter.StylistID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	booking, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	booking.Status = to
	return nil
}

func (r *memBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	booking, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if !booking.CanBeCancelled() {
		return bookingRepo.ErrStatusConflict
	}
	booking.Status = status
	if reason != "" {
		booking.CancellationReason = &reason
	}
	now := time.Now()
	booking.CancelledAt = &now
	return nil
}

// staleReadRepo имитирует гонку: чтение возвращает уже устаревший статус,
// условное обновление в хранилище видит актуальный
type staleReadRepo struct {
	*memBookingRepo
	stale *domain.Booking
}

func (r *staleReadRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.stale != nil && r.stale.ID == id {
		copied := *r.stale
		return &copied, nil
	}
	return r.memBookingRepo.GetByID(context.Background(), id)
}

type recordingNotifier struct {
	events []domain.BookingEvent
}

func (n *recordingNotifier) Dispatch(_ *domain.Booking, event domain.BookingEvent) {
	n.events = append(n.events, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		StylistID:       stylistID,
		ClientID:        clientID,
		ServiceID:       5,
		BookingDate:     time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
		ServiceName:     "Стрижка",
		ServicePrice:    1500,
	}
}

func newService(bookings ...*domain.Booking) (*Service, *memBookingRepo, *recordingNotifier) {
	repo := newMemBookingRepo(bookings...)
	notifier := &recordingNotifier{}
	return NewService(repo, notifier, nopLogger{}), repo, notifier
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newService(testBooking(1, domain.StatusPending))

	t.Run("client sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), &models.GetBookingRequest{UserID: clientID, BookingID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("stylist sees own booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), &models.GetBookingRequest{UserID: stylistID, BookingID: 1})
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), &models.GetBookingRequest{UserID: otherID, BookingID: 1})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), &models.GetBookingRequest{UserID: clientID, BookingID: 2})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("stylist confirms pending", func(t *testing.T) {
		svc, repo, notifier := newService(testBooking(1, domain.StatusPending))

		resp, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{UserID: stylistID, BookingID: 1})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
		assert.Equal(t, []domain.BookingEvent{domain.EventBookingConfirmed}, notifier.events)
	})

	t.Run("client cannot confirm", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusPending))

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{UserID: clientID, BookingID: 1})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("concurrent confirm rejected without second notification", func(t *testing.T) {
		// Второй из двух конкурентных Confirm прочитал pending до того,
		// как первый зафиксировал confirmed
		repo := newMemBookingRepo(testBooking(1, domain.StatusConfirmed))
		notifier := &recordingNotifier{}
		svc := NewService(&staleReadRepo{
			memBookingRepo: repo,
			stale:          testBooking(1, domain.StatusPending),
		}, notifier, nopLogger{})

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{UserID: stylistID, BookingID: 1})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, notifier.events)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	})

	t.Run("cancelled booking cannot be confirmed", func(t *testing.T) {
		svc, _, notifier := newService(testBooking(1, domain.StatusCancelledByClient))

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{UserID: stylistID, BookingID: 1})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, notifier.events)
	})
}

func TestCancel(t *testing.T) {
	t.Run("client cancel", func(t *testing.T) {
		svc, repo, notifier := newService(testBooking(1, domain.StatusPending))

		resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
			UserID: clientID, BookingID: 1, Reason: "  поменялись планы  ",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelledByClient), resp.Status)
		require.NotNil(t, repo.bookings[1].CancellationReason)
		assert.Equal(t, "поменялись планы", *repo.bookings[1].CancellationReason)
		assert.Equal(t, []domain.BookingEvent{domain.EventBookingCancelled}, notifier.events)
	})

	t.Run("stylist cancel confirmed booking", func(t *testing.T) {
		svc, repo, _ := newService(testBooking(1, domain.StatusConfirmed))

		resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{UserID: stylistID, BookingID: 1})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelledByStylist), resp.Status)
		assert.Nil(t, repo.bookings[1].CancellationReason)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusCompleted))

		_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{UserID: clientID, BookingID: 1})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("in-progress booking cannot be cancelled", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusInProgress))

		_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{UserID: stylistID, BookingID: 1})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusPending))

		_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{UserID: otherID, BookingID: 1})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("concurrent completion beats cancel", func(t *testing.T) {
		// Между чтением и отменой бронирование успело завершиться
		repo := newMemBookingRepo(testBooking(1, domain.StatusCompleted))
		notifier := &recordingNotifier{}
		svc := NewService(&staleReadRepo{
			memBookingRepo: repo,
			stale:          testBooking(1, domain.StatusConfirmed),
		}, notifier, nopLogger{})

		_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{UserID: clientID, BookingID: 1})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, notifier.events)
		assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("confirmed to in_progress to completed", func(t *testing.T) {
		svc, _, notifier := newService(testBooking(1, domain.StatusConfirmed))

		resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID: stylistID, BookingID: 1, NewStatus: "in_progress",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusInProgress), resp.Status)

		resp, err = svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID: stylistID, BookingID: 1, NewStatus: "completed",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)

		assert.Equal(t, []domain.BookingEvent{domain.EventBookingStarted, domain.EventBookingCompleted}, notifier.events)
	})

	t.Run("no_show from confirmed", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusConfirmed))

		resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID: stylistID, BookingID: 1, NewStatus: "no_show",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	})

	t.Run("pending cannot go straight to completed", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusPending))

		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID: stylistID, BookingID: 1, NewStatus: "completed",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancellation goes through cancel", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusPending))

		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID: stylistID, BookingID: 1, NewStatus: "cancelled_by_stylist",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusPending))

		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID: stylistID, BookingID: 1, NewStatus: "done",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("client denied", func(t *testing.T) {
		svc, _, _ := newService(testBooking(1, domain.StatusConfirmed))

		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID: clientID, BookingID: 1, NewStatus: "in_progress",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetClientBookings(t *testing.T) {
	svc, _, _ := newService(
		testBooking(1, domain.StatusPending),
		testBooking(2, domain.StatusCompleted),
	)

	t.Run("all own bookings", func(t *testing.T) {
		resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
			UserID: clientID, ClientID: clientID,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("status filter", func(t *testing.T) {
		status := "completed"
		resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
			UserID: clientID, ClientID: clientID, Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		status := "finished"
		_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
			UserID: clientID, ClientID: clientID, Status: &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign journal denied", func(t *testing.T) {
		_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
			UserID: otherID, ClientID: clientID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetStylistBookings(t *testing.T) {
	svc, _, _ := newService(
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCancelledByClient),
	)

	t.Run("active only by default", func(t *testing.T) {
		resp, err := svc.GetStylistBookings(context.Background(), &models.GetStylistBookingsRequest{
			UserID: stylistID, StylistID: stylistID,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("include inactive", func(t *testing.T) {
		resp, err := svc.GetStylistBookings(context.Background(), &models.GetStylistBookingsRequest{
			UserID: stylistID, StylistID: stylistID, IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("invalid period", func(t *testing.T) {
		start := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)
		_, err := svc.GetStylistBookings(context.Background(), &models.GetStylistBookingsRequest{
			UserID: stylistID, StylistID: stylistID, StartDate: &start, EndDate: &end,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign journal denied", func(t *testing.T) {
		_, err := svc.GetStylistBookings(context.Background(), &models.GetStylistBookingsRequest{
			UserID: otherID, StylistID: stylistID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

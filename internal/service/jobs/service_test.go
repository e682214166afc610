package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowbook/scheduling-service/internal/domain"
	bookingRepo "github.com/glowbook/scheduling-service/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	dueForStart      []int64
	dueForCompletion []int64
	failIDs          map[int64]bool
	// актуальный статус в хранилище, если отличается от ожидаемого выборкой
	currentStatus map[int64]domain.BookingStatus

	updated map[int64]domain.BookingStatus
}

func (r *fakeBookingRepo) GetIDsDueForStart(_ context.Context, _ time.Time) ([]int64, error) {
	return r.dueForStart, nil
}

func (r *fakeBookingRepo) GetIDsDueForCompletion(_ context.Context, _ time.Time) ([]int64, error) {
	return r.dueForCompletion, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	if r.failIDs[id] {
		return errors.New("update failed")
	}
	if current, ok := r.currentStatus[id]; ok && current != from {
		return bookingRepo.ErrStatusConflict
	}
	if r.updated == nil {
		r.updated = make(map[int64]domain.BookingStatus)
	}
	r.updated[id] = to
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSweepAdvancesDueBookings(t *testing.T) {
	repo := &fakeBookingRepo{
		dueForStart:      []int64{1, 2},
		dueForCompletion: []int64{3},
	}
	svc := NewService(repo, &fixedTimeProvider{now: time.Now()}, nopLogger{}, "*/5 * * * *")

	svc.Sweep()

	assert.Equal(t, map[int64]domain.BookingStatus{
		1: domain.StatusInProgress,
		2: domain.StatusInProgress,
		3: domain.StatusCompleted,
	}, repo.updated)
}

func TestSweepContinuesPastFailures(t *testing.T) {
	repo := &fakeBookingRepo{
		dueForStart: []int64{1, 2, 3},
		failIDs:     map[int64]bool{2: true},
	}
	svc := NewService(repo, &fixedTimeProvider{now: time.Now()}, nopLogger{}, "*/5 * * * *")

	svc.Sweep()

	assert.Equal(t, map[int64]domain.BookingStatus{
		1: domain.StatusInProgress,
		3: domain.StatusInProgress,
	}, repo.updated)
}

func TestSweepSkipsConcurrentlyCancelledBookings(t *testing.T) {
	// Бронирование id=2 отменили между выборкой due-списка и обновлением:
	// условное обновление не должно переписать терминальный статус
	repo := &fakeBookingRepo{
		dueForStart: []int64{1, 2, 3},
		currentStatus: map[int64]domain.BookingStatus{
			2: domain.StatusCancelledByClient,
		},
	}
	svc := NewService(repo, &fixedTimeProvider{now: time.Now()}, nopLogger{}, "*/5 * * * *")

	svc.Sweep()

	assert.Equal(t, map[int64]domain.BookingStatus{
		1: domain.StatusInProgress,
		3: domain.StatusInProgress,
	}, repo.updated)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fixedTimeProvider{now: time.Now()}, nopLogger{}, "not a schedule")

	assert.Error(t, svc.Start())
}

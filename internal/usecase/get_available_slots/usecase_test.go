package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/scheduling-service/internal/domain"
	serviceRepo "github.com/glowbook/scheduling-service/internal/infra/storage/serviceoffering"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByStylistWithFilter(_ context.Context, _ domain.StylistBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetActiveByStylist(_ context.Context, _ int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

type fakeServiceRepo struct {
	offering *domain.ServiceOffering
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.ServiceOffering, error) {
	if f.offering == nil || f.offering.ID != id {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.offering, nil
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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Понедельник 2026-03-09, правило 09:00-12:00, услуга 90 минут, шаг 30.
func newSlotsUseCase(t *testing.T, bookings []*domain.Booking) *UseCase {
	t.Helper()

	uc := NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{
			{ID: 1, StylistID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		}},
		&fakeServiceRepo{offering: &domain.ServiceOffering{
			ID:              5,
			StylistID:       10,
			Name:            "Стрижка",
			DurationMinutes: 90,
			IsActive:        true,
		}},
		Config{GranularityMinutes: 30, MinLeadTimeHours: 24, MaxHorizonDays: 60},
		nopLogger{},
	)
	// Пятница, за трое суток до запрашиваемого понедельника
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, time.March, 6, 12, 0, 0, 0, time.UTC)}
	return uc
}

func slotStarts(day DaySlots) []string {
	starts := make([]string, 0, len(day.Slots))
	for _, slot := range day.Slots {
		starts = append(starts, slot.StartTime.String())
	}
	return starts
}

func TestExecuteGeneratesGridSlots(t *testing.T) {
	uc := newSlotsUseCase(t, nil)
	monday := date(2026, time.March, 9)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		StylistID: 10,
		ServiceID: 5,
		From:      monday,
		To:        monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1)
	assert.Equal(t, monday, resp.Days[0].Date)
	// 10:30 + 90 мин = 12:00 ровно укладывается в окно, 11:00 уже нет
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotStarts(resp.Days[0]))
	assert.Equal(t, "12:00", resp.Days[0].Slots[3].EndTime.String())
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecuteExcludesConflictingSlots(t *testing.T) {
	monday := date(2026, time.March, 9)
	uc := newSlotsUseCase(t, []*domain.Booking{
		{ID: 1, StylistID: 10, BookingDate: monday, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: monday, To: monday,
	})
	require.NoError(t, err)

	// 09:00 и 09:30 пересекаются с бронированием 09:00-10:00,
	// слот 10:00 начинается ровно в момент его окончания и доступен
	require.Len(t, resp.Days, 1)
	assert.Equal(t, []string{"10:00", "10:30"}, slotStarts(resp.Days[0]))
}

func TestExecuteIgnoresCancelledBookings(t *testing.T) {
	monday := date(2026, time.March, 9)
	uc := newSlotsUseCase(t, []*domain.Booking{
		{ID: 1, StylistID: 10, BookingDate: monday, StartTime: "09:00", DurationMinutes: 180, Status: domain.StatusCancelledByClient},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: monday, To: monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotStarts(resp.Days[0]))
}

func TestExecuteAppliesLeadTimeCutoff(t *testing.T) {
	uc := newSlotsUseCase(t, nil)
	monday := date(2026, time.March, 9)
	// До начала понедельника меньше 24 часов - отсечка попадает на 10:15
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, time.March, 8, 10, 15, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: monday, To: monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1)
	assert.Equal(t, []string{"10:30"}, slotStarts(resp.Days[0]))
}

func TestExecuteDayWithoutRulesOmitted(t *testing.T) {
	uc := newSlotsUseCase(t, nil)
	// Вторник не покрыт ни одним правилом
	tuesday := date(2026, time.March, 10)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: tuesday, To: tuesday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}

func TestExecuteRangeBeyondHorizon(t *testing.T) {
	uc := newSlotsUseCase(t, nil)
	from := date(2026, time.March, 9)
	to := date(2026, time.June, 9)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: from, To: to,
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestExecuteRangeSpanningPastTooLong(t *testing.T) {
	uc := newSlotsUseCase(t, nil)
	// Диапазон в 200 дней: from глубоко в прошлом, to в пределах горизонта.
	// Длина диапазона ограничена независимо от его границ.
	from := date(2025, time.August, 28)
	to := date(2026, time.March, 16)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: from, To: to,
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestExecuteToBeforeFrom(t *testing.T) {
	uc := newSlotsUseCase(t, nil)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		StylistID: 10,
		ServiceID: 5,
		From:      date(2026, time.March, 9),
		To:        date(2026, time.March, 8),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecuteServiceNotFound(t *testing.T) {
	uc := newSlotsUseCase(t, nil)
	monday := date(2026, time.March, 9)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 10, ServiceID: 999, From: monday, To: monday,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteServiceOwnedByAnotherStylist(t *testing.T) {
	uc := newSlotsUseCase(t, nil)
	monday := date(2026, time.March, 9)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, StylistID: 11, ServiceID: 5, From: monday, To: monday,
	})
	assert.ErrorIs(t, err, ErrServiceNotOwned)
}

func TestGenerateDaySlotsMultipleRulesSorted(t *testing.T) {
	monday := date(2026, time.March, 9)
	rules := []*domain.AvailabilityRule{
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	}

	slots, err := generateDaySlots(rules, nil, monday, 60, 30, time.Time{})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.StartTime.String())
	}
	// generateDaySlots обходит правила в исходном порядке, сортировка - на уровне usecase
	assert.ElementsMatch(t, []string{"09:00", "09:30", "10:00", "14:00", "14:30", "15:00"}, starts)
}

func TestGenerateDaySlotsDurationLongerThanWindow(t *testing.T) {
	monday := date(2026, time.March, 9)
	rules := []*domain.AvailabilityRule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}

	slots, err := generateDaySlots(rules, nil, monday, 120, 30, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDaySlotsWindowUntilMidnight(t *testing.T) {
	monday := date(2026, time.March, 9)
	rules := []*domain.AvailabilityRule{
		{DayOfWeek: 1, StartTime: "23:00", EndTime: "24:00"},
	}

	slots, err := generateDaySlots(rules, nil, monday, 30, 30, time.Time{})
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "23:00", slots[0].StartTime.String())
	assert.Equal(t, "23:30", slots[1].StartTime.String())
	assert.Equal(t, "24:00", slots[1].EndTime.String())
}

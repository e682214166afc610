package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/scheduling-service/internal/domain"
	serviceRepo "github.com/glowbook/scheduling-service/internal/infra/storage/serviceoffering"
	"github.com/glowbook/scheduling-service/internal/integrations/profileservice"
	getAvailableSlots "github.com/glowbook/scheduling-service/internal/usecase/get_available_slots"
	"github.com/glowbook/scheduling-service/pkg/txmanager"
	"github.com/glowbook/scheduling-service/pkg/types"
)

// memBookingRepo хранит бронирования в памяти и служит одновременно
// репозиторием и источником данных для проверки пересечений
type memBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (r *memBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *booking
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.bookings = append(r.bookings, &created)
	return &created, nil
}

func (r *memBookingRepo) CountOverlapping(_ context.Context, stylistID int64, date time.Time, start, end types.TimeString, excludeBookingID *int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dayBookings := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.StylistID == stylistID && b.BookingDate.Equal(date) {
			dayBookings = append(dayBookings, b)
		}
	}
	return domain.CountOverlapping(dayBookings, start, end, excludeBookingID), nil
}

func (r *memBookingRepo) GetByStylistWithFilter(_ context.Context, filter domain.StylistBookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.StylistID != filter.StylistID {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetActiveByStylistAndDay(_ context.Context, _ int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	result := make([]*domain.AvailabilityRule, 0)
	for _, rule := range f.rules {
		if rule.DayOfWeek == dayOfWeek {
			result = append(result, rule)
		}
	}
	return result, nil
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

type fakeProfileClient struct {
	stylistMissing bool
	clientMissing  bool
}

func (f *fakeProfileClient) GetStylist(_ context.Context, stylistID int64) (*profileservice.Stylist, error) {
	if f.stylistMissing {
		return nil, profileservice.ErrStylistNotFound
	}
	return &profileservice.Stylist{ID: stylistID, DisplayName: "Анна", Email: "anna@example.com", IsActive: true}, nil
}

func (f *fakeProfileClient) GetClient(_ context.Context, clientID int64) (*profileservice.ClientProfile, error) {
	if f.clientMissing {
		return nil, profileservice.ErrClientNotFound
	}
	return &profileservice.ClientProfile{ID: clientID, DisplayName: "Мария", Email: "maria@example.com"}, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (n *recordingNotifier) Dispatch(_ *domain.Booking, event domain.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// serialTxManager выполняет функцию под мьютексом: проверка пересечений
// и вставка становятся атомарными, как в сериализуемой транзакции
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// exhaustedTxManager имитирует исчерпание повторов сериализуемой транзакции
type exhaustedTxManager struct{}

func (exhaustedTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return txmanager.ErrSerializationFailure
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fixture struct {
	uc        *UseCase
	repo      *memBookingRepo
	availRepo *fakeAvailabilityRepo
	svcRepo   *fakeServiceRepo
	notifier  *recordingNotifier
	profile   *fakeProfileClient
}

// Правило: понедельник 09:00-18:00, услуга на 60 минут, шаг сетки 30,
// текущий момент - пятница 2026-03-06 12:00
func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := &memBookingRepo{}
	notifier := &recordingNotifier{}
	profile := &fakeProfileClient{}
	availRepo := &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{
		{ID: 1, StylistID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true},
	}}
	svcRepo := &fakeServiceRepo{offering: &domain.ServiceOffering{
		ID:              5,
		StylistID:       10,
		Name:            "Стрижка",
		DurationMinutes: 60,
		Price:           1500,
		IsActive:        true,
	}}

	uc := NewUseCase(
		repo,
		availRepo,
		svcRepo,
		repo,
		profile,
		notifier,
		&serialTxManager{},
		Config{GranularityMinutes: 30, MinLeadTimeHours: 24, MaxHorizonDays: 60},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, time.March, 6, 12, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, repo: repo, availRepo: availRepo, svcRepo: svcRepo, notifier: notifier, profile: profile}
}

func mondayRequest(start types.TimeString) *Request {
	return &Request{
		ClientID:  1,
		StylistID: 10,
		ServiceID: 5,
		Date:      time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		StartTime: start,
	}
}

func TestExecuteCreatesPendingBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), mondayRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	require.NotNil(t, resp.ClientName)
	assert.Equal(t, "Мария", *resp.ClientName)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventBookingRequested, f.notifier.events[0])
}

func TestExecuteRejectsOverlappingSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), mondayRequest("10:00"))
	require.NoError(t, err)

	// 10:30-11:30 пересекается с занятым 10:00-11:00
	_, err = f.uc.Execute(context.Background(), mondayRequest("10:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// 11:00 начинается ровно в момент окончания и доступен
	resp, err := f.uc.Execute(context.Background(), mondayRequest("11:00"))
	require.NoError(t, err)
	assert.Equal(t, "11:00", resp.StartTime.String())
}

func TestExecuteConcurrentRequestsSingleWinner(t *testing.T) {
	f := newFixture(t)

	const workers = 8
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), mondayRequest("10:00"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.repo.bookings, 1)
}

func TestExecuteOutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	// Окно заканчивается в 18:00, слот 17:30-18:30 не помещается
	_, err := f.uc.Execute(context.Background(), mondayRequest("17:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Вторник не покрыт ни одним правилом
	req := mondayRequest("10:00")
	req.Date = req.Date.AddDate(0, 0, 1)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecuteStartNotOnGrid(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), mondayRequest("10:15"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecuteLeadTimeViolated(t *testing.T) {
	f := newFixture(t)
	// Сейчас воскресенье 11:00, до понедельника 10:00 меньше суток
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, time.March, 8, 11, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), mondayRequest("10:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteDateInPast(t *testing.T) {
	f := newFixture(t)

	req := mondayRequest("10:00")
	req.Date = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteDateBeyondHorizon(t *testing.T) {
	f := newFixture(t)

	req := mondayRequest("10:00")
	req.Date = time.Date(2026, time.June, 8, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecuteServiceOwnership(t *testing.T) {
	f := newFixture(t)

	req := mondayRequest("10:00")
	req.ServiceID = 999
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = mondayRequest("10:00")
	req.StylistID = 11
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotOwned)
}

func TestExecuteProfileNotFound(t *testing.T) {
	f := newFixture(t)

	f.profile.stylistMissing = true
	_, err := f.uc.Execute(context.Background(), mondayRequest("10:00"))
	assert.ErrorIs(t, err, ErrStylistNotFound)

	f.profile.stylistMissing = false
	f.profile.clientMissing = true
	_, err = f.uc.Execute(context.Background(), mondayRequest("10:00"))
	assert.ErrorIs(t, err, ErrClientNotFound)
}

// Сквозной сценарий: слот из выдачи генератора принимается при создании
// бронирования, а после бронирования исчезает из повторной выдачи.
// Оба use case работают над одними и теми же фейками и реальными часами.
func TestListedSlotIsBookable(t *testing.T) {
	f := newFixture(t)
	f.uc.timeProvider = &RealTimeProvider{}

	slotsUC := getAvailableSlots.NewUseCase(
		f.repo,
		f.availRepo,
		f.svcRepo,
		getAvailableSlots.Config{GranularityMinutes: 30, MinLeadTimeHours: 24, MaxHorizonDays: 60},
		nopLogger{},
	)

	// Ближайший понедельник не раньше чем через двое суток:
	// заведомо за пределами минимального времени до записи
	day := time.Now().UTC().AddDate(0, 0, 2)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	listed, err := slotsUC.Execute(context.Background(), &getAvailableSlots.Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: day, To: day,
	})
	require.NoError(t, err)
	require.Len(t, listed.Days, 1)
	require.NotEmpty(t, listed.Days[0].Slots)

	first := listed.Days[0].Slots[0]
	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID: 1, StylistID: 10, ServiceID: 5, Date: day, StartTime: first.StartTime,
	})
	require.NoError(t, err)
	assert.Equal(t, first.StartTime, resp.StartTime)
	assert.Equal(t, first.EndTime, resp.EndTime)

	relisted, err := slotsUC.Execute(context.Background(), &getAvailableSlots.Request{
		UserID: 1, StylistID: 10, ServiceID: 5, From: day, To: day,
	})
	require.NoError(t, err)
	require.Len(t, relisted.Days, 1)
	require.NotEmpty(t, relisted.Days[0].Slots)

	for _, slot := range relisted.Days[0].Slots {
		assert.NotEqual(t, first.StartTime, slot.StartTime)
	}

	// Первый оставшийся слот тоже бронируется
	next := relisted.Days[0].Slots[0]
	_, err = f.uc.Execute(context.Background(), &Request{
		ClientID: 2, StylistID: 10, ServiceID: 5, Date: day, StartTime: next.StartTime,
	})
	require.NoError(t, err)
}

func TestExecuteSerializationFailureMapsToSlotNotAvailable(t *testing.T) {
	f := newFixture(t)
	f.uc.txManager = exhaustedTxManager{}

	_, err := f.uc.Execute(context.Background(), mondayRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.events)
}

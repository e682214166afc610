package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowbook/scheduling-service/internal/domain"
	serviceRepo "github.com/glowbook/scheduling-service/internal/infra/storage/serviceoffering"
	profileClient "github.com/glowbook/scheduling-service/internal/integrations/profileservice"
	"github.com/glowbook/scheduling-service/pkg/txmanager"
)

// Config параметры проверки слота при создании бронирования.
// Должны совпадать с параметрами генерации слотов, иначе проверка
// будет принимать слоты, которых генератор не предлагает.
type Config struct {
	GranularityMinutes int
	MinLeadTimeHours   int
	MaxHorizonDays     int
}

// DefaultConfig возвращает параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		GranularityMinutes: domain.DefaultSlotGranularityMinutes,
		MinLeadTimeHours:   domain.DefaultMinLeadTimeHours,
		MaxHorizonDays:     domain.DefaultMaxHorizonDays,
	}
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	serviceRepo      ServiceRepository
	conflictChecker  ConflictChecker
	profileClient    ProfileServiceClient
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	cfg              Config
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	serviceRepo ServiceRepository,
	conflictChecker ConflictChecker,
	profileClient ProfileServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		serviceRepo:      serviceRepo,
		conflictChecker:  conflictChecker,
		profileClient:    profileClient,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		cfg:              cfg,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в сериализуемой транзакции:
// при гонке двух запросов на один слот выигрывает ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, stylist=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.StylistID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату и минимальное время до записи
	if err := validateDate(req.Date, now, uc.cfg.MaxHorizonDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	if err := validateLeadTime(req.Date, req.StartTime, now, uc.cfg.MinLeadTimeHours); err != nil {
		uc.logger.Warn("CreateBooking: lead time validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу - она определяет длительность и цену
	offering, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if offering.StylistID != req.StylistID || !offering.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d does not belong to stylist=%d or is inactive",
			req.ServiceID, req.StylistID)
		return nil, ErrServiceNotOwned
	}

	slotEnd, err := req.StartTime.AddMinutes(offering.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot crosses midnight: %v", err)
		return nil, fmt.Errorf("%w: slot does not fit into the day", ErrInvalidTimeSlot)
	}

	// 5. Проверяем существование стилиста
	if _, err := uc.profileClient.GetStylist(ctx, req.StylistID); err != nil {
		if errors.Is(err, profileClient.ErrStylistNotFound) {
			uc.logger.Warn("CreateBooking: stylist id=%d not found", req.StylistID)
			return nil, ErrStylistNotFound
		}
		uc.logger.Error("CreateBooking: failed to get stylist id=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	// 6. Получаем профиль клиента для денормализации имени
	client, err := uc.profileClient.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, profileClient.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Рабочие окна стилиста на этот день недели
		rules, err := uc.availabilityRepo.GetActiveByStylistAndDay(txCtx, req.StylistID, int(req.Date.Weekday()))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		// 7.2. Слот должен помещаться в рабочее окно и лежать на сетке
		if err := validateWithinWorkingHours(rules, req.StartTime, slotEnd, uc.cfg.GranularityMinutes); err != nil {
			uc.logger.Warn("CreateBooking: working hours validation failed: %v", err)
			return err
		}

		// 7.3. Проверяем пересечения с активными бронированиями.
		// Внутри транзакции чтение идет с блокировкой FOR UPDATE.
		overlapping, err := uc.conflictChecker.CountOverlapping(txCtx, req.StylistID, req.Date, req.StartTime, slotEnd, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlapping > 0 {
			uc.logger.Warn("CreateBooking: slot %s-%s overlaps %d active bookings",
				req.StartTime, slotEnd, overlapping)
			return ErrSlotNotAvailable
		}

		// 7.4. Создаем заявку с денормализацией данных услуги и клиента
		booking := &domain.Booking{
			StylistID:       req.StylistID,
			ClientID:        req.ClientID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: offering.DurationMinutes,
			Status:          domain.StatusPending,
			// Денормализация данных услуги
			ServiceName:  offering.Name,
			ServicePrice: offering.Price,
			// Денормализация данных клиента
			ClientName: &client.DisplayName,
			// Пожелания
			Notes: req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпанные повторы сериализуемой транзакции означают, что слот
		// выиграл конкурирующий запрос
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict, slot lost to a concurrent request")
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 8. Уведомляем стилиста о новой заявке (fire-and-forget)
	uc.notifier.Dispatch(result, domain.EventBookingRequested)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		StylistID:       result.StylistID,
		ClientID:        result.ClientID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         slotEnd,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		ClientName:      result.ClientName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

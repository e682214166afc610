package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
	serviceRepo "github.com/glowbook/scheduling-service/internal/infra/storage/serviceoffering"
)

// Config параметры генерации слотов
type Config struct {
	GranularityMinutes int // Шаг сетки слотов
	MinLeadTimeHours   int // Минимальное время до записи
	MaxHorizonDays     int // Горизонт бронирования
}

// DefaultConfig возвращает параметры генерации по умолчанию
func DefaultConfig() Config {
	return Config{
		GranularityMinutes: domain.DefaultSlotGranularityMinutes,
		MinLeadTimeHours:   domain.DefaultMinLeadTimeHours,
		MaxHorizonDays:     domain.DefaultMaxHorizonDays,
	}
}

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	serviceRepo      ServiceRepository
	timeProvider     TimeProvider
	cfg              Config
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	serviceRepo ServiceRepository,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		serviceRepo:      serviceRepo,
		timeProvider:     &RealTimeProvider{},
		cfg:              cfg,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, stylist=%d, service=%d, range=%s..%s",
		req.UserID, req.StylistID, req.ServiceID,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем горизонт бронирования
	if err := validateRange(req.From, req.To, now, uc.cfg.MaxHorizonDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: range validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу - длительность слота определяется услугой
	offering, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if offering.StylistID != req.StylistID || !offering.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d does not belong to stylist=%d or is inactive",
			req.ServiceID, req.StylistID)
		return nil, ErrServiceNotOwned
	}

	// 5. Получаем все активные правила доступности стилиста
	rules, err := uc.availabilityRepo.GetActiveByStylist(ctx, req.StylistID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	response := &Response{
		StylistID:       req.StylistID,
		ServiceID:       req.ServiceID,
		DurationMinutes: offering.DurationMinutes,
		From:            req.From,
		To:              req.To,
		Days:            make([]DaySlots, 0),
	}

	// Без рабочих окон слотов не бывает
	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: stylist=%d has no active availability rules", req.StylistID)
		return response, nil
	}

	// 6. Получаем активные бронирования стилиста на весь диапазон одним запросом
	from := dateOnly(req.From)
	to := dateOnly(req.To)

	bookings, err := uc.bookingRepo.GetByStylistWithFilter(ctx, domain.StylistBookingsFilter{
		StylistID:       req.StylistID,
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: false,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	byDate := bookingsByDate(bookings)

	// Минимальный момент начала слота: сейчас + минимальное время до записи
	minStartAt := now.Add(time.Duration(uc.cfg.MinLeadTimeHours) * time.Hour)

	// 7. Обходим диапазон по дням
	totalSlots := 0
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		dayRules := rulesForDay(rules, date.Weekday())
		if len(dayRules) == 0 {
			continue
		}

		daySlots, err := generateDaySlots(
			dayRules,
			byDate[date.Format(domain.DateFormat)],
			date,
			offering.DurationMinutes,
			uc.cfg.GranularityMinutes,
			minStartAt,
		)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for date=%s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		if len(daySlots) == 0 {
			continue
		}

		// Правила могут идти не по порядку - сортируем слоты дня по времени начала
		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].StartTime.IsBefore(daySlots[j].StartTime)
		})

		response.Days = append(response.Days, DaySlots{Date: date, Slots: daySlots})
		totalSlots += len(daySlots)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots across %d days for stylist=%d",
		totalSlots, len(response.Days), req.StylistID)

	return response, nil
}

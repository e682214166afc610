// Package jobs фоновые задачи автоматического продвижения статусов:
// подтверждённые бронирования переводятся в in_progress после времени
// начала, бронирования в работе - в completed после времени окончания.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/glowbook/scheduling-service/internal/domain"
	bookingRepo "github.com/glowbook/scheduling-service/internal/infra/storage/booking"
)

const sweepTimeout = 30 * time.Second

// Service планировщик фоновых задач
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
	schedule     string
	cron         *cron.Cron
}

// NewService создает новый планировщик фоновых задач.
// schedule - cron-выражение периодичности обхода (например "*/5 * * * *").
func NewService(bookingRepo BookingRepository, timeProvider TimeProvider, logger Logger, schedule string) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
		schedule:     schedule,
		cron:         cron.New(),
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *Service) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Sweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("jobs: scheduler started with schedule %q", s.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего обхода
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("jobs: scheduler stopped")
}

// Sweep выполняет один обход: продвигает все бронирования,
// чьё время начала или окончания уже прошло
func (s *Service) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	now := s.timeProvider.Now()

	s.advanceDue(ctx, now, s.bookingRepo.GetIDsDueForStart, domain.StatusConfirmed, domain.StatusInProgress)
	s.advanceDue(ctx, now, s.bookingRepo.GetIDsDueForCompletion, domain.StatusInProgress, domain.StatusCompleted)
}

func (s *Service) advanceDue(
	ctx context.Context,
	now time.Time,
	fetchIDs func(ctx context.Context, now time.Time) ([]int64, error),
	from, target domain.BookingStatus,
) {
	ids, err := fetchIDs(ctx, now)
	if err != nil {
		s.logger.Error("jobs: failed to fetch bookings due for %s: %v", target, err)
		return
	}

	if len(ids) == 0 {
		return
	}

	advanced := 0
	for _, id := range ids {
		if err := s.bookingRepo.UpdateStatus(ctx, id, from, target); err != nil {
			// Статус изменился между выборкой и обновлением (например,
			// бронирование отменили) - пропускаем, не трогая новый статус
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				s.logger.Info("jobs: booking id=%d left status %s, skipped", id, from)
				continue
			}
			// Не прерываем обход - остальные бронирования продвинем,
			// а эту запись подхватит следующий обход
			s.logger.Error("jobs: failed to move booking id=%d to %s: %v", id, target, err)
			continue
		}
		advanced++
	}

	s.logger.Info("jobs: moved %d of %d bookings to %s", advanced, len(ids), target)
}

// Package notify рассылка email-уведомлений о событиях бронирования.
//
// Доставка выполняется по принципу fire-and-forget: переход статуса
// никогда не ждёт отправки и не откатывается из-за её ошибок.
// Все ошибки доставки логируются и проглатываются.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/glowbook/scheduling-service/internal/domain"
)

const dispatchTimeout = 10 * time.Second

// Config настройки рассылки уведомлений
type Config struct {
	Enabled        bool
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

// Service сервис отправки уведомлений
type Service struct {
	cfg           Config
	profileClient ProfileServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(cfg Config, profileClient ProfileServiceClient, logger Logger) *Service {
	return &Service{
		cfg:           cfg,
		profileClient: profileClient,
		logger:        logger,
	}
}

// Dispatch асинхронно отправляет уведомление о событии бронирования.
// Возвращает управление немедленно; доставка идет в отдельной горутине
// со своим таймаутом, не привязанным к контексту запроса.
func (s *Service) Dispatch(booking *domain.Booking, event domain.BookingEvent) {
	if booking == nil || event == "" {
		return
	}

	// Копия данных, чтобы горутина не держала ссылку на изменяемое бронирование
	snapshot := *booking

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := s.send(ctx, &snapshot, event); err != nil {
			s.logger.Error("Dispatch: failed to deliver %s for booking id=%d: %v", event, snapshot.ID, err)
			return
		}

		s.logger.Info("Dispatch: delivered %s for booking id=%d", event, snapshot.ID)
	}()
}

func (s *Service) send(ctx context.Context, booking *domain.Booking, event domain.BookingEvent) error {
	toName, toEmail, err := s.resolveRecipient(ctx, booking, event)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	subject, body := buildMessage(booking, event)

	if !s.cfg.Enabled || s.cfg.SendGridAPIKey == "" {
		// Рассылка выключена - фиксируем событие только в логах
		s.logger.Warn("Dispatch: notifications disabled, skipping %s for booking id=%d (to=%s)",
			event, booking.ID, toEmail)
		return nil
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}

// resolveRecipient определяет получателя уведомления:
// о новой заявке уведомляется стилист, об остальных событиях - клиент
func (s *Service) resolveRecipient(ctx context.Context, booking *domain.Booking, event domain.BookingEvent) (string, string, error) {
	if event == domain.EventBookingRequested {
		stylist, err := s.profileClient.GetStylist(ctx, booking.StylistID)
		if err != nil {
			return "", "", err
		}
		return stylist.DisplayName, stylist.Email, nil
	}

	client, err := s.profileClient.GetClient(ctx, booking.ClientID)
	if err != nil {
		return "", "", err
	}
	return client.DisplayName, client.Email, nil
}

func buildMessage(booking *domain.Booking, event domain.BookingEvent) (subject, body string) {
	when := fmt.Sprintf("%s %s", booking.BookingDate.Format(domain.DateFormat), booking.StartTime)

	switch event {
	case domain.EventBookingRequested:
		subject = "Новая заявка на бронирование"
		body = fmt.Sprintf("Новая заявка: %s, %s. Подтвердите или отклоните её в личном кабинете.",
			booking.ServiceName, when)
	case domain.EventBookingConfirmed:
		subject = "Бронирование подтверждено"
		body = fmt.Sprintf("Ваша запись подтверждена: %s, %s.", booking.ServiceName, when)
	case domain.EventBookingStarted:
		subject = "Обслуживание началось"
		body = fmt.Sprintf("Обслуживание по записи %s (%s) началось.", booking.ServiceName, when)
	case domain.EventBookingCompleted:
		subject = "Обслуживание завершено"
		body = fmt.Sprintf("Запись %s (%s) завершена. Спасибо, что выбрали нас!", booking.ServiceName, when)
	case domain.EventBookingCancelled:
		subject = "Бронирование отменено"
		body = fmt.Sprintf("Запись %s (%s) отменена.", booking.ServiceName, when)
	case domain.EventBookingNoShow:
		subject = "Неявка на запись"
		body = fmt.Sprintf("Запись %s (%s) помечена как неявка.", booking.ServiceName, when)
	default:
		subject = "Обновление бронирования"
		body = fmt.Sprintf("Статус записи %s (%s) изменился.", booking.ServiceName, when)
	}

	return subject, body
}

package create_booking

import (
	"time"

	"github.com/glowbook/scheduling-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64            // ID клиента (из заголовка аутентификации)
	StylistID int64            // ID стилиста
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	StylistID       int64            // ID стилиста
	ClientID        int64            // ID клиента
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания (начало + длительность)
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	ClientName   *string // Имя клиента
	Notes        *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

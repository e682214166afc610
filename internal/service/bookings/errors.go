package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не имеет доступа к бронированию
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается при попытке отменить бронирование
	// в терминальном или выполняемом статусе
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)

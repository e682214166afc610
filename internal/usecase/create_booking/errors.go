package create_booking

import "errors"

var (
	// ErrStylistNotFound возвращается, когда стилист не найден
	ErrStylistNotFound = errors.New("create_booking: stylist not found")

	// ErrClientNotFound возвращается, когда профиль клиента не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotOwned возвращается, когда услуга принадлежит другому стилисту
	ErrServiceNotOwned = errors.New("create_booking: service does not belong to this stylist")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается
	// ни в одно рабочее окно стилиста на этот день
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается при нарушении минимального времени до записи
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с активным бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

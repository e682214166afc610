package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotOwned возвращается, когда услуга принадлежит другому стилисту
	ErrServiceNotOwned = errors.New("service does not belong to this stylist")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат (to раньше from)
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrRangeTooLarge возвращается, когда диапазон выходит за горизонт бронирования
	ErrRangeTooLarge = errors.New("date range exceeds the booking horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

package offerings

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("offerings: service not found")

	// ErrAccessDenied возвращается, когда пользователь управляет чужими услугами
	ErrAccessDenied = errors.New("offerings: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("offerings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("offerings: internal error")
)

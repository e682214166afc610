package profileservice

import "errors"

var (
	// ErrStylistNotFound возвращается, когда стилист не найден
	ErrStylistNotFound = errors.New("profileservice client: stylist not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("profileservice client: client not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)

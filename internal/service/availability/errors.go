package availability

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило доступности не найдено
	ErrRuleNotFound = errors.New("availability: rule not found")

	// ErrRuleOverlap возвращается, когда новое правило пересекается с
	// существующим активным правилом на тот же день недели
	ErrRuleOverlap = errors.New("availability: rule overlaps an existing rule")

	// ErrAccessDenied возвращается, когда пользователь управляет чужим расписанием
	ErrAccessDenied = errors.New("availability: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)

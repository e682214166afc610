package profileservice

// Stylist профиль стилиста из ProfileService
type Stylist struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	City        string `json:"city"`
	IsActive    bool   `json:"is_active"`
}

// ClientProfile профиль клиента из ProfileService
type ClientProfile struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

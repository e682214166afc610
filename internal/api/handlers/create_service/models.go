package create_service

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

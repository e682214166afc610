package domain

import "time"

// ServiceOffering represents one service a stylist offers.
// Duration is arbitrary and does not have to be a multiple of the slot granularity.
type ServiceOffering struct {
	ID              int64
	StylistID       int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the offering's own invariants
func (s *ServiceOffering) Validate() error {
	if s.Name == "" {
		return ErrEmptyServiceName
	}
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return ErrInvalidDuration
	}
	if s.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

package domain

import (
	"time"

	"github.com/glowbook/scheduling-service/pkg/types"
)

// AvailabilityRule represents one recurring weekly working window of a stylist.
// DayOfWeek follows time.Weekday numbering: 0 = Sunday.
type AvailabilityRule struct {
	ID        int64
	StylistID int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the rule's own invariants
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if err := r.StartTime.Validate(); err != nil {
		return err
	}
	if err := r.EndTime.Validate(); err != nil {
		return err
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps returns true if the rule's window overlaps with other's
// on the same day of week. Touching windows do not overlap.
func (r *AvailabilityRule) Overlaps(other *AvailabilityRule) bool {
	if r.DayOfWeek != other.DayOfWeek {
		return false
	}
	return IntervalsOverlap(r.StartTime, r.EndTime, other.StartTime, other.EndTime)
}

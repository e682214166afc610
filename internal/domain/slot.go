package domain

import (
	"time"

	"github.com/glowbook/scheduling-service/pkg/types"
)

// Slot is a computed bookable candidate. It is a projection valid only at
// generation time, never persisted.
type Slot struct {
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

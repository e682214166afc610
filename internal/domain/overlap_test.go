package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowbook/scheduling-service/pkg/types"
)

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 types.TimeString
		want           bool
	}{
		{name: "partial overlap", s1: "10:00", e1: "11:00", s2: "10:30", e2: "11:30", want: true},
		{name: "contained", s1: "10:00", e1: "12:00", s2: "10:30", e2: "11:00", want: true},
		{name: "identical", s1: "10:00", e1: "11:00", s2: "10:00", e2: "11:00", want: true},
		{name: "touching end to start", s1: "10:00", e1: "11:00", s2: "11:00", e2: "12:00", want: false},
		{name: "touching start to end", s1: "11:00", e1: "12:00", s2: "10:00", e2: "11:00", want: false},
		{name: "disjoint", s1: "09:00", e1: "10:00", s2: "11:00", e2: "12:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.s1, tt.e1, tt.s2, tt.e2))
			// Предикат симметричен
			assert.Equal(t, tt.want, IntervalsOverlap(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestCountOverlapping(t *testing.T) {
	bookings := []*Booking{
		{ID: 1, StartTime: "10:00", DurationMinutes: 60, Status: StatusConfirmed},
		{ID: 2, StartTime: "12:00", DurationMinutes: 30, Status: StatusPending},
		{ID: 3, StartTime: "10:30", DurationMinutes: 60, Status: StatusCancelledByClient},
	}

	t.Run("overlap counted", func(t *testing.T) {
		assert.Equal(t, 1, CountOverlapping(bookings, "10:30", "11:30", nil))
	})

	t.Run("touching interval not counted", func(t *testing.T) {
		assert.Equal(t, 0, CountOverlapping(bookings, "11:00", "12:00", nil))
	})

	t.Run("cancelled bookings ignored", func(t *testing.T) {
		// Отменённое бронирование 10:30-11:30 слот не занимает
		assert.Equal(t, 0, CountOverlapping(bookings, "11:00", "11:30", nil))
	})

	t.Run("pending counted as active", func(t *testing.T) {
		assert.Equal(t, 1, CountOverlapping(bookings, "12:00", "12:30", nil))
	})

	t.Run("excluded booking skipped", func(t *testing.T) {
		excludeID := int64(1)
		assert.Equal(t, 0, CountOverlapping(bookings, "10:00", "11:00", &excludeID))
	})
}

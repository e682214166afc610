package domain

import "github.com/glowbook/scheduling-service/pkg/types"

// IntervalsOverlap reports whether two half-open intervals [s1, e1) and
// [s2, e2) overlap. An interval ending exactly where the other starts does
// NOT overlap.
//
// Примеры:
// - [10:00, 11:00) и [10:30, 11:30) → пересекаются
// - [10:00, 11:00) и [11:00, 12:00) → НЕ пересекаются (граничат)
func IntervalsOverlap(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// CountOverlapping подсчитывает активные бронирования, пересекающиеся с
// интервалом [start, end). Бронирование с ID равным excludeID пропускается
// (используется при переносе бронирования).
func CountOverlapping(bookings []*Booking, start, end types.TimeString, excludeID *int64) int {
	count := 0

	for _, booking := range bookings {
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		// Неактивные бронирования слот не занимают
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.EndTime()
		if err != nil {
			// Если не можем вычислить конец бронирования, пропускаем
			continue
		}

		if IntervalsOverlap(booking.StartTime, bookingEnd, start, end) {
			count++
		}
	}

	return count
}

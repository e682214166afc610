package get_available_slots

import (
	"time"

	"github.com/glowbook/scheduling-service/internal/domain"
	"github.com/glowbook/scheduling-service/pkg/types"
)

// generateDaySlots генерирует доступные слоты на один день.
//
// Кандидаты начинаются от начала каждого рабочего окна с фиксированным шагом
// granularityMinutes; шаг сетки и длительность услуги независимы. Кандидат
// включается, если он целиком помещается в рабочее окно, начинается не раньше
// минимального времени до записи и не пересекается ни с одним активным
// бронированием. Интервалы полуоткрытые: слот, начинающийся ровно в момент
// окончания бронирования, доступен.
func generateDaySlots(
	rules []*domain.AvailabilityRule,
	bookings []*domain.Booking,
	date time.Time,
	durationMinutes int,
	granularityMinutes int,
	minStartAt time.Time,
) ([]Slot, error) {
	slots := make([]Slot, 0)

	for _, rule := range rules {
		currentStart := rule.StartTime

		for currentStart.IsBefore(rule.EndTime) {
			slotEnd, err := currentStart.AddMinutes(durationMinutes)
			if err != nil {
				// Слот вышел бы за полночь
				break
			}

			// Слот должен целиком помещаться в рабочее окно
			if slotEnd.IsAfter(rule.EndTime) {
				break
			}

			if startsAfter(date, currentStart, minStartAt) &&
				domain.CountOverlapping(bookings, currentStart, slotEnd, nil) == 0 {
				slots = append(slots, Slot{
					StartTime: currentStart,
					EndTime:   slotEnd,
				})
			}

			currentStart, err = currentStart.AddMinutes(granularityMinutes)
			if err != nil {
				break
			}
		}
	}

	return slots, nil
}

// startsAfter проверяет, что слот на дату date со временем начала start
// начинается не раньше минимального допустимого момента minStartAt
func startsAfter(date time.Time, start types.TimeString, minStartAt time.Time) bool {
	minutes, err := start.TotalMinutes()
	if err != nil {
		return false
	}

	startAt := time.Date(date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0, minStartAt.Location())
	return !startAt.Before(minStartAt)
}

// rulesForDay возвращает активные правила на указанный день недели
func rulesForDay(rules []*domain.AvailabilityRule, weekday time.Weekday) []*domain.AvailabilityRule {
	result := make([]*domain.AvailabilityRule, 0)
	for _, rule := range rules {
		if rule.DayOfWeek == int(weekday) {
			result = append(result, rule)
		}
	}
	return result
}

// bookingsByDate раскладывает бронирования по датам
func bookingsByDate(bookings []*domain.Booking) map[string][]*domain.Booking {
	result := make(map[string][]*domain.Booking)
	for _, booking := range bookings {
		key := booking.BookingDate.Format(domain.DateFormat)
		result[key] = append(result[key], booking)
	}
	return result
}

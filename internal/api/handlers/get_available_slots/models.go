package get_available_slots

import (
	"github.com/glowbook/scheduling-service/internal/domain"
	getAvailableSlots "github.com/glowbook/scheduling-service/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	StylistID       int64      `json:"stylistId"`
	ServiceID       int64      `json:"serviceId"`
	DurationMinutes int        `json:"durationMinutes"`
	From            string     `json:"from"`
	To              string     `json:"to"`
	Days            []DaySlots `json:"days"`
}

// DaySlots слоты на один день
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// Slot модель доступного слота
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	days := make([]DaySlots, 0, len(resp.Days))
	for _, day := range resp.Days {
		slots := make([]Slot, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, Slot{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
			})
		}
		days = append(days, DaySlots{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		})
	}

	return &SlotsResponse{
		StylistID:       resp.StylistID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		From:            resp.From.Format(domain.DateFormat),
		To:              resp.To.Format(domain.DateFormat),
		Days:            days,
	}
}

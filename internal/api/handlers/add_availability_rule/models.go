package add_availability_rule

// AddRuleRequest HTTP request model
type AddRuleRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

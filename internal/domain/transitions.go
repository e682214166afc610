package domain

// BookingEvent identifies a lifecycle event used for notification dispatch
type BookingEvent string

const (
	EventBookingRequested BookingEvent = "booking_requested"
	EventBookingConfirmed BookingEvent = "booking_confirmed"
	EventBookingStarted   BookingEvent = "booking_started"
	EventBookingCompleted BookingEvent = "booking_completed"
	EventBookingCancelled BookingEvent = "booking_cancelled"
	EventBookingNoShow    BookingEvent = "booking_no_show"
)

// allowedTransitions таблица допустимых переходов статусов.
// IN_PROGRESS необязателен: подтверждённое бронирование можно завершить напрямую.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending: {
		StatusConfirmed,
		StatusCancelledByClient,
		StatusCancelledByStylist,
	},
	StatusConfirmed: {
		StatusInProgress,
		StatusCompleted,
		StatusNoShow,
		StatusCancelledByClient,
		StatusCancelledByStylist,
	},
	StatusInProgress: {
		StatusCompleted,
	},
}

// CanTransition returns true if the status transition from -> to is allowed
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// EventForStatus returns the notification event matching a target status
func EventForStatus(status BookingStatus) BookingEvent {
	switch status {
	case StatusPending:
		return EventBookingRequested
	case StatusConfirmed:
		return EventBookingConfirmed
	case StatusInProgress:
		return EventBookingStarted
	case StatusCompleted:
		return EventBookingCompleted
	case StatusCancelledByClient, StatusCancelledByStylist:
		return EventBookingCancelled
	case StatusNoShow:
		return EventBookingNoShow
	default:
		return ""
	}
}

// IsValidStatus returns true for a known booking status
func IsValidStatus(status BookingStatus) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelledByClient, StatusCancelledByStylist, StatusNoShow:
		return true
	default:
		return false
	}
}

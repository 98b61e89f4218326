package booking

// CalendarEvent is what the external calendar hands back after a
// successful push.
type CalendarEvent struct {
	EventID  string
	MeetLink string
}

// Notification kinds/topics recorded against jobs.
const (
	NotificationKindEmail = "email"

	TopicBookingConfirmation = "booking_confirmation"
	TopicAdminNotice         = "booking_admin_notice"
	TopicBookingReminder     = "booking_reminder"
	TopicBookingCancelled    = "booking_cancelled"
)

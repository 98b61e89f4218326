package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID                 uuid.UUID `json:"id"`
	CustomerName       string    `json:"customer_name"`
	CustomerEmail      string    `json:"customer_email"`
	CustomerPhone      string    `json:"customer_phone,omitempty"`
	BusinessName       string    `json:"business_name,omitempty"`
	BusinessType       string    `json:"business_type,omitempty"`
	BusinessNotes      string    `json:"business_notes,omitempty"`
	BookedAt           time.Time `json:"booked_at"`
	Status             string    `json:"status"`
	CalendarEventID    string    `json:"calendar_event_id,omitempty"`
	MeetLink           string    `json:"meet_link,omitempty"`
	CalendarSyncStatus string    `json:"calendar_sync_status"`
	CalendarSyncError  string    `json:"calendar_sync_error,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SlotInstanceView is one bookable (or full) concrete slot. Full
// instances are returned flagged rather than hidden so callers can
// decide how to render them.
type SlotInstanceView struct {
	TemplateID     uuid.UUID `json:"template_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Capacity       int       `json:"capacity"`
	AvailableCount int       `json:"available_count"`
	IsFull         bool      `json:"is_full"`
}

type SlotTemplateView struct {
	ID          uuid.UUID `json:"id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	MaxBookings int       `json:"max_bookings"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BlackoutWindowView struct {
	ID             uuid.UUID `json:"id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Reason         string    `json:"reason,omitempty"`
	IsRecurring    bool      `json:"is_recurring"`
	RecurrenceRule string    `json:"recurrence_rule,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

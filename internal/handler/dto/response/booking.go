package response

import (
	"time"

	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	CustomerName       string    `json:"customerName"`
	CustomerEmail      string    `json:"customerEmail"`
	CustomerPhone      string    `json:"customerPhone,omitempty"`
	BusinessName       string    `json:"businessName,omitempty"`
	BusinessType       string    `json:"businessType,omitempty"`
	BusinessNotes      string    `json:"businessNotes,omitempty"`
	BookedAt           time.Time `json:"bookedAt"`
	Status             string    `json:"status"`
	CalendarEventID    string    `json:"calendarEventId,omitempty"`
	MeetLink           string    `json:"meetLink,omitempty"`
	CalendarSyncStatus string    `json:"calendarSyncStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 rm.ID,
		CustomerName:       rm.CustomerName,
		CustomerEmail:      rm.CustomerEmail,
		CustomerPhone:      rm.CustomerPhone,
		BusinessName:       rm.BusinessName,
		BusinessType:       rm.BusinessType,
		BusinessNotes:      rm.BusinessNotes,
		BookedAt:           rm.BookedAt,
		Status:             rm.Status,
		CalendarEventID:    rm.CalendarEventID,
		MeetLink:           rm.MeetLink,
		CalendarSyncStatus: rm.CalendarSyncStatus,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromBookingList(rms []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromBookingView(rm)
	}
	return out
}

package response

import (
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotTemplateResponse struct {
	ID          uuid.UUID `json:"id"`
	DayOfWeek   int       `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	MaxBookings int       `json:"maxBookings"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromSlotTemplateView(v *queries.SlotTemplateView) *SlotTemplateResponse {
	return &SlotTemplateResponse{
		ID:          v.ID,
		DayOfWeek:   v.DayOfWeek,
		StartTime:   v.StartTime,
		EndTime:     v.EndTime,
		MaxBookings: v.MaxBookings,
		IsAvailable: v.IsAvailable,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromSlotTemplate(t *schedule.SlotTemplate) *SlotTemplateResponse {
	return &SlotTemplateResponse{
		ID:          t.ID(),
		DayOfWeek:   int(t.DayOfWeek()),
		StartTime:   t.StartTime().String(),
		EndTime:     t.EndTime().String(),
		MaxBookings: t.MaxBookings(),
		IsAvailable: t.IsAvailable(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func FromSlotTemplateList(views []*queries.SlotTemplateView) []*SlotTemplateResponse {
	out := make([]*SlotTemplateResponse, len(views))
	for i, v := range views {
		out[i] = FromSlotTemplateView(v)
	}
	return out
}

type BlackoutWindowResponse struct {
	ID             uuid.UUID `json:"id"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	Reason         string    `json:"reason,omitempty"`
	IsRecurring    bool      `json:"isRecurring"`
	RecurrenceRule string    `json:"recurrenceRule,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromBlackoutView(v *queries.BlackoutWindowView) *BlackoutWindowResponse {
	return &BlackoutWindowResponse{
		ID:             v.ID,
		StartDate:      v.StartDate,
		EndDate:        v.EndDate,
		Reason:         v.Reason,
		IsRecurring:    v.IsRecurring,
		RecurrenceRule: v.RecurrenceRule,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromBlackoutWindow(w *schedule.BlackoutWindow) *BlackoutWindowResponse {
	return &BlackoutWindowResponse{
		ID:             w.ID(),
		StartDate:      w.StartDate().Format("2006-01-02"),
		EndDate:        w.EndDate().Format("2006-01-02"),
		Reason:         w.Reason(),
		IsRecurring:    w.IsRecurring(),
		RecurrenceRule: string(w.Recurrence()),
		CreatedAt:      w.CreatedAt(),
		UpdatedAt:      w.UpdatedAt(),
	}
}

func FromBlackoutList(views []*queries.BlackoutWindowView) []*BlackoutWindowResponse {
	out := make([]*BlackoutWindowResponse, len(views))
	for i, v := range views {
		out[i] = FromBlackoutView(v)
	}
	return out
}

type BlackoutOccurrenceResponse struct {
	WindowID    uuid.UUID `json:"windowId"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Reason      string    `json:"reason,omitempty"`
	IsRecurring bool      `json:"isRecurring"`
}

func FromBlackoutOccurrences(views []*queries.BlackoutOccurrenceView) []*BlackoutOccurrenceResponse {
	out := make([]*BlackoutOccurrenceResponse, len(views))
	for i, v := range views {
		out[i] = &BlackoutOccurrenceResponse{
			WindowID:    v.WindowID,
			StartDate:   v.StartDate,
			EndDate:     v.EndDate,
			Reason:      v.Reason,
			IsRecurring: v.IsRecurring,
		}
	}
	return out
}

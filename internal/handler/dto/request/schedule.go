package request

import (
	"time"

	"booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type UpsertSlotTemplateRequest struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	MaxBookings int    `json:"max_bookings" binding:"required,min=1"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

func (r UpsertSlotTemplateRequest) ToCommand(id *uuid.UUID) commands.UpsertTemplateRequest {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return commands.UpsertTemplateRequest{
		ID:          id,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		MaxBookings: r.MaxBookings,
		IsAvailable: available,
	}
}

type UpsertBlackoutRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason,omitempty"`
	IsRecurring bool   `json:"is_recurring,omitempty"`
	Rule        string `json:"recurrence_rule,omitempty"`
}

func (r UpsertBlackoutRequest) ToCommand(id *uuid.UUID) (commands.UpsertBlackoutRequest, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return commands.UpsertBlackoutRequest{}, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return commands.UpsertBlackoutRequest{}, err
	}
	return commands.UpsertBlackoutRequest{
		ID:          id,
		StartDate:   start,
		EndDate:     end,
		Reason:      r.Reason,
		IsRecurring: r.IsRecurring,
		Rule:        r.Rule,
	}, nil
}

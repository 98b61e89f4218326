//go:build unit || e2e

package builder

import (
	"time"

	"booking-engine/internal/domain/schedule"
)

type SlotTemplateBuilder struct {
	DayOfWeek   int
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
	MaxBookings int
	IsAvailable bool
}

func NewSlotTemplateBuilder() *SlotTemplateBuilder {
	return &SlotTemplateBuilder{
		DayOfWeek:   1, // Monday
		StartHour:   10,
		EndHour:     11,
		MaxBookings: 2,
		IsAvailable: true,
	}
}

func (b *SlotTemplateBuilder) With(mutate func(*SlotTemplateBuilder)) *SlotTemplateBuilder {
	mutate(b)
	return b
}

func (b *SlotTemplateBuilder) BuildDomain() (*schedule.SlotTemplate, error) {
	start, err := schedule.NewTimeOfDay(b.StartHour, b.StartMinute)
	if err != nil {
		return nil, err
	}
	end, err := schedule.NewTimeOfDay(b.EndHour, b.EndMinute)
	if err != nil {
		return nil, err
	}
	return schedule.NewSlotTemplate(b.DayOfWeek, start, end, b.MaxBookings, b.IsAvailable)
}

type BlackoutBuilder struct {
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Recurrence schedule.RecurrenceRule
}

func NewBlackoutBuilder() *BlackoutBuilder {
	return &BlackoutBuilder{
		StartDate:  time.Date(2026, 12, 29, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2027, 1, 3, 0, 0, 0, 0, time.UTC),
		Reason:     "year-end holidays",
		Recurrence: schedule.RecurrenceNone,
	}
}

func (b *BlackoutBuilder) With(mutate func(*BlackoutBuilder)) *BlackoutBuilder {
	mutate(b)
	return b
}

func (b *BlackoutBuilder) BuildDomain() (*schedule.BlackoutWindow, error) {
	return schedule.NewBlackoutWindow(b.StartDate, b.EndDate, b.Reason, b.Recurrence)
}

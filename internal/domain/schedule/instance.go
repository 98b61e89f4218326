package schedule

import (
	"time"

	"github.com/google/uuid"
)

// SlotInstance is one concrete calendar projection of a SlotTemplate.
// Instances are derived on every query, never persisted; the booking
// ledger is the source of truth for how many seats are actually taken.
type SlotInstance struct {
	TemplateID uuid.UUID
	Date       time.Time
	StartTime  TimeOfDay
	EndTime    TimeOfDay
	Capacity   int
}

// StartAt is the instance's absolute start, the value a booking's
// booked_at must equal exactly.
func (s SlotInstance) StartAt(loc *time.Location) time.Time {
	return s.StartTime.On(s.Date, loc)
}

// Project expands templates onto every calendar day in [from, to],
// dropping days covered by a blackout occurrence. Pure function: callers
// annotate the result with live booking counts.
func Project(from, to time.Time, templates []*SlotTemplate, blackouts []*BlackoutWindow) []SlotInstance {
	from = CivilDate(from)
	to = CivilDate(to)

	var out []SlotInstance
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if coveredByAny(date, blackouts) {
			continue
		}
		for _, t := range templates {
			if !t.IsAvailable() || t.DayOfWeek() != date.Weekday() {
				continue
			}
			out = append(out, SlotInstance{
				TemplateID: t.ID(),
				Date:       date,
				StartTime:  t.StartTime(),
				EndTime:    t.EndTime(),
				Capacity:   t.MaxBookings(),
			})
		}
	}
	return out
}

func coveredByAny(date time.Time, blackouts []*BlackoutWindow) bool {
	for _, w := range blackouts {
		if w.Covers(date) {
			return true
		}
	}
	return false
}

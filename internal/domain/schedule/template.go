package schedule

import (
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday   = errs.New("day of week must be between 0 and 6")
	ErrInvalidTimeRange = errs.New("start time must be before end time")
	ErrInvalidCapacity  = errs.New("max bookings must be at least 1")
)

// SlotTemplate is a recurring weekly opening: every <Weekday> from
// <start> to <end>, up to <maxBookings> concurrent active bookings.
// Disabling or deleting a template never touches bookings already
// placed against past projections of it.
type SlotTemplate struct {
	id          uuid.UUID
	dayOfWeek   time.Weekday
	startTime   TimeOfDay
	endTime     TimeOfDay
	maxBookings int
	isAvailable bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSlotTemplate(dayOfWeek int, start, end TimeOfDay, maxBookings int, isAvailable bool) (*SlotTemplate, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidWeekday
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	if maxBookings < 1 {
		return nil, ErrInvalidCapacity
	}

	return &SlotTemplate{
		id:          uuid.New(),
		dayOfWeek:   time.Weekday(dayOfWeek),
		startTime:   start,
		endTime:     end,
		maxBookings: maxBookings,
		isAvailable: isAvailable,
	}, nil
}

func ReconstructSlotTemplate(
	id uuid.UUID,
	dayOfWeek int,
	start, end TimeOfDay,
	maxBookings int,
	isAvailable bool,
	createdAt, updatedAt time.Time,
) *SlotTemplate {
	return &SlotTemplate{
		id:          id,
		dayOfWeek:   time.Weekday(dayOfWeek),
		startTime:   start,
		endTime:     end,
		maxBookings: maxBookings,
		isAvailable: isAvailable,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *SlotTemplate) ID() uuid.UUID          { return t.id }
func (t *SlotTemplate) DayOfWeek() time.Weekday { return t.dayOfWeek }
func (t *SlotTemplate) StartTime() TimeOfDay   { return t.startTime }
func (t *SlotTemplate) EndTime() TimeOfDay     { return t.endTime }
func (t *SlotTemplate) MaxBookings() int       { return t.maxBookings }
func (t *SlotTemplate) IsAvailable() bool      { return t.isAvailable }
func (t *SlotTemplate) CreatedAt() time.Time   { return t.createdAt }
func (t *SlotTemplate) UpdatedAt() time.Time   { return t.updatedAt }

func (t *SlotTemplate) Disable() {
	t.isAvailable = false
}

// Matches reports whether a requested start time lands exactly on this
// template for its weekday.
func (t *SlotTemplate) Matches(at time.Time) bool {
	return t.isAvailable &&
		at.Weekday() == t.dayOfWeek &&
		TimeOfDayFrom(at).Equal(t.startTime)
}

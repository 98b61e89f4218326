package schedule

import (
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange      = errs.New("start date must not be after end date")
	ErrUnknownRecurrenceRule = errs.New("unknown recurrence rule")
)

type RecurrenceRule string

const (
	RecurrenceNone   RecurrenceRule = ""
	RecurrenceYearly RecurrenceRule = "yearly"
)

// BlackoutWindow closes a date range (inclusive on both ends) against
// availability. A recurring window is stored as a single concrete
// instance; OccurrencesWithin reapplies its month/day to every year in
// the queried range instead of pre-materializing future occurrences.
type BlackoutWindow struct {
	id         uuid.UUID
	startDate  time.Time // civil date, midnight UTC
	endDate    time.Time
	reason     string
	recurrence RecurrenceRule
	createdAt  time.Time
	updatedAt  time.Time
}

// DateRange is one concrete occurrence of a blackout, both ends inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(date time.Time) bool {
	d := CivilDate(date)
	return !d.Before(CivilDate(r.Start)) && !d.After(CivilDate(r.End))
}

func NewBlackoutWindow(startDate, endDate time.Time, reason string, recurrence RecurrenceRule) (*BlackoutWindow, error) {
	start := CivilDate(startDate)
	end := CivilDate(endDate)
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	switch recurrence {
	case RecurrenceNone, RecurrenceYearly:
	default:
		return nil, ErrUnknownRecurrenceRule
	}

	return &BlackoutWindow{
		id:         uuid.New(),
		startDate:  start,
		endDate:    end,
		reason:     reason,
		recurrence: recurrence,
	}, nil
}

func ReconstructBlackoutWindow(
	id uuid.UUID,
	startDate, endDate time.Time,
	reason string,
	recurrence RecurrenceRule,
	createdAt, updatedAt time.Time,
) *BlackoutWindow {
	return &BlackoutWindow{
		id:         id,
		startDate:  CivilDate(startDate),
		endDate:    CivilDate(endDate),
		reason:     reason,
		recurrence: recurrence,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (w *BlackoutWindow) ID() uuid.UUID              { return w.id }
func (w *BlackoutWindow) StartDate() time.Time       { return w.startDate }
func (w *BlackoutWindow) EndDate() time.Time         { return w.endDate }
func (w *BlackoutWindow) Reason() string             { return w.reason }
func (w *BlackoutWindow) Recurrence() RecurrenceRule { return w.recurrence }
func (w *BlackoutWindow) IsRecurring() bool          { return w.recurrence != RecurrenceNone }
func (w *BlackoutWindow) CreatedAt() time.Time       { return w.createdAt }
func (w *BlackoutWindow) UpdatedAt() time.Time       { return w.updatedAt }

// OccurrencesWithin expands the window into concrete occurrences that
// overlap [from, to]. Pure and deterministic: the same range over the
// same stored window always yields the same occurrences.
func (w *BlackoutWindow) OccurrencesWithin(from, to time.Time) []DateRange {
	from = CivilDate(from)
	to = CivilDate(to)
	if from.After(to) {
		return nil
	}

	if !w.IsRecurring() {
		if w.endDate.Before(from) || w.startDate.After(to) {
			return nil
		}
		return []DateRange{{Start: w.startDate, End: w.endDate}}
	}

	spanDays := int(w.endDate.Sub(w.startDate).Hours() / 24)

	// A yearly occurrence starting late in year N may reach into the
	// query range of year N+1, so walk one extra year on each side.
	var out []DateRange
	for year := from.Year() - 1; year <= to.Year()+1; year++ {
		start := shiftToYear(w.startDate, year)
		end := start.AddDate(0, 0, spanDays)
		if end.Before(from) || start.After(to) {
			continue
		}
		out = append(out, DateRange{Start: start, End: end})
	}
	return out
}

// Covers reports whether date's calendar day falls inside any occurrence
// of the window, regardless of the timezone date is expressed in.
func (w *BlackoutWindow) Covers(date time.Time) bool {
	d := CivilDate(date)
	for _, occ := range w.OccurrencesWithin(d, d) {
		if occ.Contains(d) {
			return true
		}
	}
	return false
}

// shiftToYear keeps month/day, moving Feb 29 to Feb 28 on non-leap years.
func shiftToYear(date time.Time, year int) time.Time {
	day := date.Day()
	if date.Month() == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, date.Month(), day, 0, 0, 0, 0, date.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// CivilDate reduces t to midnight UTC of the calendar day it reads as in
// its own location. All day-level comparisons in this package go through
// it, so a window stored as midnight UTC and a query time in the business
// timezone meet on the same representation instead of comparing instants.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

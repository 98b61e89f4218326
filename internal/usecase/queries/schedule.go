package queries

import (
	"context"
	"time"

	"booking-engine/internal/domain/schedule"

	"github.com/google/uuid"
)

// BlackoutOccurrenceView is one concrete expansion of a stored window
// inside a queried range.
type BlackoutOccurrenceView struct {
	WindowID    uuid.UUID `json:"window_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Reason      string    `json:"reason,omitempty"`
	IsRecurring bool      `json:"is_recurring"`
}

type BlackoutListSource interface {
	List(ctx context.Context) ([]*schedule.BlackoutWindow, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*schedule.BlackoutWindow, error)
}

type ScheduleQueries interface {
	ListTemplates(ctx context.Context) ([]*SlotTemplateView, error)
	ListWindows(ctx context.Context) ([]*BlackoutWindowView, error)
	// ListOccurrences expands recurring windows into the concrete
	// occurrences overlapping [from, to]. Computation only; the same
	// inputs always produce the same occurrences.
	ListOccurrences(ctx context.Context, from, to time.Time) ([]*BlackoutOccurrenceView, error)
}

type scheduleQueriesImpl struct {
	templates TemplateReadSource
	blackouts BlackoutListSource
}

func NewScheduleQueries(templates TemplateReadSource, blackouts BlackoutListSource) ScheduleQueries {
	return &scheduleQueriesImpl{templates: templates, blackouts: blackouts}
}

func (q *scheduleQueriesImpl) ListTemplates(ctx context.Context) ([]*SlotTemplateView, error) {
	templates, err := q.templates.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*SlotTemplateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, &SlotTemplateView{
			ID:          t.ID(),
			DayOfWeek:   int(t.DayOfWeek()),
			StartTime:   t.StartTime().String(),
			EndTime:     t.EndTime().String(),
			MaxBookings: t.MaxBookings(),
			IsAvailable: t.IsAvailable(),
			CreatedAt:   t.CreatedAt(),
			UpdatedAt:   t.UpdatedAt(),
		})
	}
	return views, nil
}

func (q *scheduleQueriesImpl) ListWindows(ctx context.Context) ([]*BlackoutWindowView, error) {
	windows, err := q.blackouts.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*BlackoutWindowView, 0, len(windows))
	for _, w := range windows {
		views = append(views, &BlackoutWindowView{
			ID:             w.ID(),
			StartDate:      w.StartDate().Format("2006-01-02"),
			EndDate:        w.EndDate().Format("2006-01-02"),
			Reason:         w.Reason(),
			IsRecurring:    w.IsRecurring(),
			RecurrenceRule: string(w.Recurrence()),
			CreatedAt:      w.CreatedAt(),
			UpdatedAt:      w.UpdatedAt(),
		})
	}
	return views, nil
}

func (q *scheduleQueriesImpl) ListOccurrences(ctx context.Context, from, to time.Time) ([]*BlackoutOccurrenceView, error) {
	windows, err := q.blackouts.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}

	views := make([]*BlackoutOccurrenceView, 0, len(windows))
	for _, w := range windows {
		for _, occ := range w.OccurrencesWithin(from, to) {
			views = append(views, &BlackoutOccurrenceView{
				WindowID:    w.ID(),
				StartDate:   occ.Start.Format("2006-01-02"),
				EndDate:     occ.End.Format("2006-01-02"),
				Reason:      w.Reason(),
				IsRecurring: w.IsRecurring(),
			})
		}
	}
	return views, nil
}

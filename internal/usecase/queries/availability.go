package queries

import (
	"context"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/errs"
)

var (
	ErrInvalidRange = errs.New("invalid availability range")
	ErrRangeTooWide = errs.New("availability range too wide")
)

// MaxResolveDays bounds one availability query; wider ranges belong to
// paginated clients, not a single projection.
const MaxResolveDays = 92

type TemplateReadSource interface {
	List(ctx context.Context) ([]*schedule.SlotTemplate, error)
}

type BlackoutReadSource interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*schedule.BlackoutWindow, error)
}

type ActiveCountSource interface {
	ActiveCounts(ctx context.Context, from, to time.Time) (map[time.Time]int, error)
}

type AvailabilityQueries interface {
	Resolve(ctx context.Context, from, to time.Time) ([]*SlotInstanceView, error)
}

// availabilityQueriesImpl is the read path: it projects the weekly
// template catalog onto concrete dates, removes blackout occurrences
// and annotates live counts. Pure reads, no locking; a stale count is
// acceptable because the ledger re-checks capacity at commit time.
type availabilityQueriesImpl struct {
	templates TemplateReadSource
	blackouts BlackoutReadSource
	counts    ActiveCountSource
	loc       *time.Location
}

func NewAvailabilityQueries(
	templates TemplateReadSource,
	blackouts BlackoutReadSource,
	counts ActiveCountSource,
	loc *time.Location,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		templates: templates,
		blackouts: blackouts,
		counts:    counts,
		loc:       loc,
	}
}

func (q *availabilityQueriesImpl) Resolve(ctx context.Context, from, to time.Time) ([]*SlotInstanceView, error) {
	from = dayStart(from.In(q.loc))
	to = dayStart(to.In(q.loc))
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	if to.Sub(from) > MaxResolveDays*24*time.Hour {
		return nil, ErrRangeTooWide
	}

	templates, err := q.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	blackouts, err := q.blackouts.ListOverlapping(ctx, schedule.CivilDate(from), schedule.CivilDate(to))
	if err != nil {
		return nil, err
	}

	instances := schedule.Project(from, to, templates, blackouts)
	if len(instances) == 0 {
		return []*SlotInstanceView{}, nil
	}

	counts, err := q.counts.ActiveCounts(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	views := make([]*SlotInstanceView, 0, len(instances))
	for _, inst := range instances {
		taken := counts[inst.StartAt(q.loc).UTC()]
		available := inst.Capacity - taken
		views = append(views, &SlotInstanceView{
			TemplateID:     inst.TemplateID,
			Date:           inst.Date.Format("2006-01-02"),
			StartTime:      inst.StartTime.String(),
			EndTime:        inst.EndTime.String(),
			Capacity:       inst.Capacity,
			AvailableCount: available,
			IsFull:         available <= 0,
		})
	}
	return views, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

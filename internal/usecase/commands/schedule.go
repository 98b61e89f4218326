package commands

import (
	"context"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTemplateNotFound = errs.New("slot template not found")
	ErrTemplateConflict = errs.New("template already exists for slot")
	ErrBlackoutNotFound = errs.New("blackout window not found")
)

type UpsertTemplateRequest struct {
	ID          *uuid.UUID
	DayOfWeek   int
	StartTime   string
	EndTime     string
	MaxBookings int
	IsAvailable bool
}

type UpsertBlackoutRequest struct {
	ID          *uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	IsRecurring bool
	Rule        string
}

type DeleteTemplateResult struct {
	// Disabled is true when the template still had active future
	// bookings and was soft-disabled instead of removed.
	Disabled bool
}

type ScheduleCommands interface {
	UpsertTemplate(ctx context.Context, req UpsertTemplateRequest) (*schedule.SlotTemplate, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) (*DeleteTemplateResult, error)
	UpsertBlackout(ctx context.Context, req UpsertBlackoutRequest) (*schedule.BlackoutWindow, error)
	DeleteBlackout(ctx context.Context, id uuid.UUID) error
}

type scheduleUseCaseImpl struct {
	templates SlotTemplateRepository
	blackouts BlackoutRepository
	clock     clock.Clock
}

func NewScheduleCommands(
	templates SlotTemplateRepository,
	blackouts BlackoutRepository,
	clk clock.Clock,
) ScheduleCommands {
	return &scheduleUseCaseImpl{
		templates: templates,
		blackouts: blackouts,
		clock:     clk,
	}
}

func (uc *scheduleUseCaseImpl) UpsertTemplate(ctx context.Context, req UpsertTemplateRequest) (*schedule.SlotTemplate, error) {
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	entity, err := schedule.NewSlotTemplate(req.DayOfWeek, start, end, req.MaxBookings, req.IsAvailable)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if req.ID != nil {
		// Updates keep the stored identity; validation already ran.
		existing, ferr := uc.templates.FindByID(ctx, *req.ID)
		if ferr != nil {
			if infra.IsKind(ferr, infra.KindNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, errs.Mark(ferr, ErrDatabaseOperationFailed)
		}
		entity = schedule.ReconstructSlotTemplate(
			existing.ID(), req.DayOfWeek, start, end,
			req.MaxBookings, req.IsAvailable,
			existing.CreatedAt(), uc.clock.Now(),
		)
	}

	if err := uc.templates.Upsert(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrTemplateConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

// DeleteTemplate soft-disables the template when future projections of
// it still carry active bookings; otherwise it is removed outright.
// Existing bookings are never touched either way.
func (uc *scheduleUseCaseImpl) DeleteTemplate(ctx context.Context, id uuid.UUID) (*DeleteTemplateResult, error) {
	tmpl, err := uc.templates.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	hasActive, err := uc.templates.HasFutureActiveBookings(ctx, tmpl, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if hasActive {
		tmpl.Disable()
		if err := uc.templates.Upsert(ctx, tmpl); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &DeleteTemplateResult{Disabled: true}, nil
	}

	if err := uc.templates.Delete(ctx, id); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &DeleteTemplateResult{Disabled: false}, nil
}

func (uc *scheduleUseCaseImpl) UpsertBlackout(ctx context.Context, req UpsertBlackoutRequest) (*schedule.BlackoutWindow, error) {
	rule := schedule.RecurrenceNone
	if req.IsRecurring {
		rule = schedule.RecurrenceRule(req.Rule)
		if rule == schedule.RecurrenceNone {
			rule = schedule.RecurrenceYearly
		}
	}

	entity, err := schedule.NewBlackoutWindow(req.StartDate, req.EndDate, req.Reason, rule)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if req.ID != nil {
		existing, ferr := uc.blackouts.FindByID(ctx, *req.ID)
		if ferr != nil {
			if infra.IsKind(ferr, infra.KindNotFound) {
				return nil, ErrBlackoutNotFound
			}
			return nil, errs.Mark(ferr, ErrDatabaseOperationFailed)
		}
		entity = schedule.ReconstructBlackoutWindow(
			existing.ID(), req.StartDate, req.EndDate, req.Reason, rule,
			existing.CreatedAt(), uc.clock.Now(),
		)
	}

	if err := uc.blackouts.Upsert(ctx, entity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (uc *scheduleUseCaseImpl) DeleteBlackout(ctx context.Context, id uuid.UUID) error {
	if err := uc.blackouts.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBlackoutNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

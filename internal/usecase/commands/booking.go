package commands

import (
	"context"
	"encoding/json"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/queries"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSlotNotOffered          = errs.New("requested time does not match any open slot")
	ErrBlackout                = errs.New("requested date is blacked out")
	ErrLeadTime                = errs.New("requested time is outside the booking window")
	ErrSlotFull                = errs.New("slot capacity exhausted")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingRequest struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	BusinessName  string
	BusinessType  string
	BusinessNotes string
	BookedAt      time.Time
}

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest) (*queries.BookingView, error)
	Transition(ctx context.Context, id uuid.UUID, next booking.Status) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	tx            shared.TxRunner
	bookings      BookingRepository
	templates     SlotTemplateRepository
	blackouts     BlackoutRepository
	notifications NotificationRepository
	bookingReads  queries.BookingReadStore
	sync          SyncRequester
	clock         clock.Clock
	cfg           config.BookingConfig
	loc           *time.Location
}

func NewBookingCommands(
	tx shared.TxRunner,
	bookings BookingRepository,
	templates SlotTemplateRepository,
	blackouts BlackoutRepository,
	notifications NotificationRepository,
	bookingReads queries.BookingReadStore,
	sync SyncRequester,
	clk clock.Clock,
	cfg config.BookingConfig,
	loc *time.Location,
) BookingCommands {
	return &bookingUseCaseImpl{
		tx:            tx,
		bookings:      bookings,
		templates:     templates,
		blackouts:     blackouts,
		notifications: notifications,
		bookingReads:  bookingReads,
		sync:          sync,
		clock:         clk,
		cfg:           cfg,
		loc:           loc,
	}
}

// Create validates the request against the catalog, blackouts and the
// lead-time window, then performs the capacity check-and-insert as one
// atomic unit: the matching template row is locked FOR UPDATE, active
// bookings at the exact slot start are counted, and the insert only
// happens under that lock. The lock ends at commit; calendar sync and
// notifications run strictly after.
func (uc *bookingUseCaseImpl) Create(ctx context.Context, req CreateBookingRequest) (*queries.BookingView, error) {
	name, err := booking.NewCustomerName(req.CustomerName)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	email, err := booking.NewEmail(req.CustomerEmail)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	bookedAt, err := uc.validateSlotTime(ctx, req.BookedAt)
	if err != nil {
		return nil, err
	}

	entity := booking.NewBooking(name, email, req.CustomerPhone, booking.BusinessProfile{
		Name:  req.BusinessName,
		Type:  req.BusinessType,
		Notes: req.BusinessNotes,
	}, bookedAt)

	err = uc.tx.InTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tmpl, terr := uc.templates.LockForSlot(ctx, tx, bookedAt.Weekday(), schedule.TimeOfDayFrom(bookedAt))
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrSlotNotOffered
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		count, cerr := uc.bookings.CountActiveAt(ctx, tx, bookedAt)
		if cerr != nil {
			return errs.Mark(cerr, ErrDatabaseOperationFailed)
		}
		if count >= tmpl.MaxBookings() {
			return ErrSlotFull
		}

		if _, ierr := uc.bookings.Insert(ctx, tx, entity); ierr != nil {
			return errs.Mark(ierr, ErrDatabaseOperationFailed)
		}

		return uc.enqueueCreationNotices(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	// Advisory side effects after commit, off the capacity lock.
	if uc.sync != nil {
		uc.sync.Request(entity.ID())
	}

	view, err := uc.bookingReads.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *bookingUseCaseImpl) Transition(ctx context.Context, id uuid.UUID, next booking.Status) (*queries.BookingView, error) {
	err := uc.tx.InTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		b, ferr := uc.bookings.FindByIDForUpdate(ctx, tx, id)
		if ferr != nil {
			if infra.IsKind(ferr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(ferr, ErrDatabaseOperationFailed)
		}

		if terr := b.TransitionTo(next, uc.clock.Now()); terr != nil {
			return errs.Mark(terr, ErrInvalidTransition)
		}

		if uerr := uc.bookings.UpdateStatus(ctx, tx, id, next); uerr != nil {
			return errs.Mark(uerr, ErrDatabaseOperationFailed)
		}

		if next == booking.StatusCancelled {
			return uc.enqueueJob(ctx, tx, booking.TopicBookingCancelled, b.ID())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.bookingReads.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Cancel frees the slot for future capacity counting; cancelled
// bookings stop consuming capacity the moment the transaction commits.
func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return uc.Transition(ctx, id, booking.StatusCancelled)
}

// Delete is the administrative hard delete. It bypasses the state
// machine and exists only to correct erroneous records.
func (uc *bookingUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.bookings.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *bookingUseCaseImpl) validateSlotTime(ctx context.Context, requested time.Time) (time.Time, error) {
	bookedAt := requested.In(uc.loc)
	if bookedAt.Second() != 0 || bookedAt.Nanosecond() != 0 {
		return time.Time{}, ErrSlotNotOffered
	}

	now := uc.clock.Now()
	if bookedAt.Before(now.Add(time.Duration(uc.cfg.MinAdvanceHours) * time.Hour)) {
		return time.Time{}, ErrLeadTime
	}
	if bookedAt.After(now.AddDate(0, 0, uc.cfg.MaxAdvanceDays)) {
		return time.Time{}, ErrLeadTime
	}

	// The repository filters on civil dates; hand it the calendar day
	// the customer sees, not the raw instant.
	day := schedule.CivilDate(bookedAt)
	windows, err := uc.blackouts.ListOverlapping(ctx, day, day)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	for _, w := range windows {
		if w.Covers(bookedAt) {
			return time.Time{}, ErrBlackout
		}
	}

	return bookedAt, nil
}

func (uc *bookingUseCaseImpl) enqueueCreationNotices(ctx context.Context, tx pgx.Tx, b *booking.Booking) error {
	now := uc.clock.Now()
	if err := uc.enqueueJobAt(ctx, tx, booking.TopicBookingConfirmation, b.ID(), now); err != nil {
		return err
	}
	if err := uc.enqueueJobAt(ctx, tx, booking.TopicAdminNotice, b.ID(), now); err != nil {
		return err
	}

	// Reminder goes out the day before the appointment. Short-notice
	// bookings inside that window get it right away.
	remindAt := b.BookedAt().Add(-24 * time.Hour)
	if remindAt.Before(now) {
		remindAt = now
	}
	return uc.enqueueJobAt(ctx, tx, booking.TopicBookingReminder, b.ID(), remindAt)
}

func (uc *bookingUseCaseImpl) enqueueJob(ctx context.Context, tx pgx.Tx, topic string, bookingID uuid.UUID) error {
	return uc.enqueueJobAt(ctx, tx, topic, bookingID, uc.clock.Now())
}

func (uc *bookingUseCaseImpl) enqueueJobAt(ctx context.Context, tx pgx.Tx, topic string, bookingID uuid.UUID, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"topic":      topic,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := uc.notifications.CreateJob(ctx, tx, booking.NotificationKindEmail, topic, payload, runAt); err != nil {
		// Notices are best-effort but share the booking transaction;
		// surface the failure rather than committing half the work.
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}


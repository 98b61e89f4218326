package commands

import (
	"context"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Write-side ports. A nil tx means "run on the pool outside any
// explicit transaction"; methods participating in the atomic capacity
// check always receive the live tx.

type BookingRepository interface {
	CountActiveAt(ctx context.Context, tx pgx.Tx, at time.Time) (int, error)
	Insert(ctx context.Context, tx pgx.Tx, b *booking.Booking) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status booking.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SlotTemplateRepository interface {
	List(ctx context.Context) ([]*schedule.SlotTemplate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*schedule.SlotTemplate, error)
	LockForSlot(ctx context.Context, tx pgx.Tx, dayOfWeek time.Weekday, start schedule.TimeOfDay) (*schedule.SlotTemplate, error)
	Upsert(ctx context.Context, t *schedule.SlotTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasFutureActiveBookings(ctx context.Context, t *schedule.SlotTemplate, now time.Time) (bool, error)
}

type BlackoutRepository interface {
	List(ctx context.Context) ([]*schedule.BlackoutWindow, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*schedule.BlackoutWindow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*schedule.BlackoutWindow, error)
	Upsert(ctx context.Context, w *schedule.BlackoutWindow) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx pgx.Tx, kind, topic string, payload []byte, runAt time.Time) error
}

// CalendarClient is the consumed interface of the external calendar
// service. It is never called while the capacity lock is held.
type CalendarClient interface {
	SyncBooking(ctx context.Context, b *booking.Booking) (booking.CalendarEvent, error)
}

// SyncRequester hands a committed booking to the background sync
// pipeline. Implementations must not block the caller.
type SyncRequester interface {
	Request(id uuid.UUID)
}

package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"
)

// SyncBookingStore is what the sync worker needs from persistence.
type SyncBookingStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Booking, error)
	UpdateCalendarSync(ctx context.Context, tx pgx.Tx, b *booking.Booking) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status booking.Status) error
	ListSyncRetryable(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// CalendarSyncWorker pushes committed bookings to the external calendar
// off the request path. A failed push marks the booking's sync state
// failed and leaves the booking itself untouched; the periodic retry
// loop picks such bookings up again. The external call always runs
// outside any database lock.
type CalendarSyncWorker struct {
	queue  chan uuid.UUID
	client commands.CalendarClient
	store  SyncBookingStore
	tx     shared.TxRunner
	clock  clock.Clock
	cfg    config.WorkerConfig
	logger *slog.Logger

	retryBase time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCalendarSyncWorker(
	client commands.CalendarClient,
	store SyncBookingStore,
	tx shared.TxRunner,
	clk clock.Clock,
	cfg config.WorkerConfig,
	logger *slog.Logger,
) *CalendarSyncWorker {
	return &CalendarSyncWorker{
		queue:  make(chan uuid.UUID, cfg.SyncQueueSize),
		client: client,
		store:  store,
		tx:     tx,
		clock:  clk,
		cfg:    cfg,
		logger: logger,

		retryBase: time.Second,
	}
}

// Request enqueues a booking for sync without ever blocking the caller.
// A full queue is not an error: the retry loop will find the booking by
// its pending sync state.
func (w *CalendarSyncWorker) Request(id uuid.UUID) {
	select {
	case w.queue <- id:
	default:
		w.logger.Warn("calendar sync queue full, deferring to retry loop", "booking_id", id)
	}
}

func (w *CalendarSyncWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(2)
	go w.consumeLoop(ctx)
	go w.retryLoop(ctx)
}

func (w *CalendarSyncWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *CalendarSyncWorker) consumeLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-w.queue:
			w.syncOne(ctx, id)
		}
	}
}

func (w *CalendarSyncWorker) retryLoop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.cfg.SyncRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ids, err := w.store.ListSyncRetryable(ctx, w.cfg.SyncQueueSize)
			if err != nil {
				w.logger.Error("failed to list retryable bookings", "error", err)
				continue
			}
			for _, id := range ids {
				w.Request(id)
			}
		}
	}
}

func (w *CalendarSyncWorker) syncOne(ctx context.Context, id uuid.UUID) {
	b, err := w.store.FindByID(ctx, id)
	if err != nil {
		w.logger.Error("failed to load booking for sync", "booking_id", id, "error", err)
		return
	}
	if b.SyncStatus() == booking.SyncSynced || !b.IsActive() {
		return
	}

	event, syncErr := w.pushWithBackoff(ctx, b)

	err = w.tx.InTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Re-read under lock: the booking may have been cancelled or
		// synced by someone else while the calendar call was in flight.
		current, ferr := w.store.FindByIDForUpdate(ctx, tx, id)
		if ferr != nil {
			return ferr
		}
		if current.SyncStatus() == booking.SyncSynced {
			return nil
		}

		if syncErr != nil {
			current.MarkSyncFailed(syncErr.Error())
			return w.store.UpdateCalendarSync(ctx, tx, current)
		}

		current.MarkSynced(event.EventID, event.MeetLink)
		if uerr := w.store.UpdateCalendarSync(ctx, tx, current); uerr != nil {
			return uerr
		}

		// Confirm only if the booking is still pending; a booking
		// cancelled mid-sync keeps its status, sync state is recorded
		// regardless.
		if current.Status() == booking.StatusPending {
			if terr := current.TransitionTo(booking.StatusConfirmed, w.clock.Now()); terr == nil {
				return w.store.UpdateStatus(ctx, tx, id, booking.StatusConfirmed)
			}
		}
		return nil
	})
	if err != nil {
		w.logger.Error("failed to record sync outcome", "booking_id", id, "error", err)
		return
	}

	if syncErr != nil {
		w.logger.Warn("calendar sync failed", "booking_id", id, "error", syncErr)
	} else {
		w.logger.Info("calendar sync completed", "booking_id", id, "event_id", event.EventID)
	}
}

func (w *CalendarSyncWorker) pushWithBackoff(ctx context.Context, b *booking.Booking) (booking.CalendarEvent, error) {
	var event booking.CalendarEvent

	backoff := retry.WithMaxRetries(3, retry.NewExponential(w.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ev, err := w.client.SyncBooking(ctx, b)
		if err != nil {
			return retry.RetryableError(err)
		}
		event = ev
		return nil
	})
	return event, err
}

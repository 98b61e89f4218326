package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"booking-engine/internal/infra/repository"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Sender delivers one notification job to its channel. Delivery is
// best-effort end to end; a sender error only affects the job row.
type Sender interface {
	Deliver(ctx context.Context, job repository.NotificationJob) error
}

// LogSender writes notifications to the structured log. It stands in
// for a real mail or chat integration and is the default sender.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Deliver(_ context.Context, job repository.NotificationJob) error {
	s.logger.Info("notification delivered",
		"job_id", job.ID,
		"kind", job.Kind,
		"topic", job.Topic,
		"payload", string(job.Payload),
	)
	return nil
}

type NotificationJobStore interface {
	ClaimDue(ctx context.Context, tx pgx.Tx, limit int, now time.Time) ([]repository.NotificationJob, error)
	MarkSent(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, reason string) error
}

// NotificationWorker drains due jobs on a fixed interval. Claiming uses
// SKIP LOCKED inside one transaction per batch, so several instances
// can run side by side without double delivery.
type NotificationWorker struct {
	store  NotificationJobStore
	sender Sender
	tx     shared.TxRunner
	clock  clock.Clock
	cfg    config.WorkerConfig
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewNotificationWorker(
	store NotificationJobStore,
	sender Sender,
	tx shared.TxRunner,
	clk clock.Clock,
	cfg config.WorkerConfig,
	logger *slog.Logger,
) *NotificationWorker {
	return &NotificationWorker{
		store:  store,
		sender: sender,
		tx:     tx,
		clock:  clk,
		cfg:    cfg,
		logger: logger,
	}
}

func (w *NotificationWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go w.pollLoop(ctx)
}

func (w *NotificationWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *NotificationWorker) pollLoop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.cfg.NotifyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.drainBatch(ctx); err != nil {
				w.logger.Error("notification batch failed", "error", err)
			}
		}
	}
}

func (w *NotificationWorker) drainBatch(ctx context.Context) error {
	return w.tx.InTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		jobs, err := w.store.ClaimDue(ctx, tx, w.cfg.NotifyBatchSize, w.clock.Now())
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if derr := w.sender.Deliver(ctx, job); derr != nil {
				w.logger.Warn("notification delivery failed",
					"job_id", job.ID, "topic", job.Topic, "error", derr)
				if merr := w.store.MarkFailed(ctx, tx, job.ID, derr.Error()); merr != nil {
					return merr
				}
				continue
			}
			if merr := w.store.MarkSent(ctx, tx, job.ID); merr != nil {
				return merr
			}
		}
		return nil
	})
}

package repository

import (
	"context"
	"time"

	"booking-engine/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) querier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int
}

// CreateJob enqueues a job inside the caller's transaction so the job
// becomes visible exactly when the booking commit does.
func (r *NotificationRepository) CreateJob(ctx context.Context, tx pgx.Tx, kind, topic string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.querier(tx).Exec(ctx, query, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue picks up due jobs with SKIP LOCKED so concurrent workers
// never deliver the same job twice.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx pgx.Tx, limit int, now time.Time) ([]NotificationJob, error) {
	const query = `
		SELECT id, kind, topic, payload, run_at, attempts
		FROM notification_jobs
		WHERE status = 'queued' AND run_at <= $1
		ORDER BY run_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`

	rows, err := r.querier(tx).Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	const query = `
		UPDATE notification_jobs
		SET status = 'sent', attempts = attempts + 1, updated_at = now()
		WHERE id = $1
	`

	if _, err := r.querier(tx).Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed requeues the job with a delay until three attempts have
// been spent, then parks it as failed for manual inspection.
func (r *NotificationRepository) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, reason string) error {
	const query = `
		UPDATE notification_jobs
		SET status = CASE WHEN attempts + 1 >= 3 THEN 'failed' ELSE 'queued' END,
		    run_at = now() + interval '1 minute',
		    attempts = attempts + 1,
		    last_error = $2,
		    updated_at = now()
		WHERE id = $1
	`

	if _, err := r.querier(tx).Exec(ctx, query, id, reason); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}

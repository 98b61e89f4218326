//go:build unit

package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"booking-engine/internal/infra/repository"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
)

type fakeJobStore struct {
	due      []repository.NotificationJob
	claimErr error

	sent   []uuid.UUID
	failed map[uuid.UUID]string
}

func (f *fakeJobStore) ClaimDue(_ context.Context, _ pgx.Tx, limit int, _ time.Time) ([]repository.NotificationJob, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	if len(f.due) > limit {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeJobStore) MarkSent(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeJobStore) MarkFailed(_ context.Context, _ pgx.Tx, id uuid.UUID, reason string) error {
	f.failed[id] = reason
	return nil
}

type fakeSender struct {
	failTopics map[string]error
	delivered  []repository.NotificationJob
}

func (f *fakeSender) Deliver(_ context.Context, job repository.NotificationJob) error {
	if err, ok := f.failTopics[job.Topic]; ok {
		return err
	}
	f.delivered = append(f.delivered, job)
	return nil
}

type NotificationWorkerTestSuite struct {
	suite.Suite
	store  *fakeJobStore
	sender *fakeSender
	w      *NotificationWorker
}

func (s *NotificationWorkerTestSuite) SetupTest() {
	s.store = &fakeJobStore{failed: map[uuid.UUID]string{}}
	s.sender = &fakeSender{failTopics: map[string]error{}}

	s.w = NewNotificationWorker(
		s.store,
		s.sender,
		fakeTxRunner{},
		clock.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)),
		config.WorkerConfig{SyncQueueSize: 4, SyncRetryInterval: time.Minute, NotifyInterval: time.Second, NotifyBatchSize: 2},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *NotificationWorkerTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestNotificationWorkerSuite(t *testing.T) {
	suite.Run(t, new(NotificationWorkerTestSuite))
}

func job(topic string) repository.NotificationJob {
	return repository.NotificationJob{
		ID:      uuid.New(),
		Kind:    "email",
		Topic:   topic,
		Payload: []byte(`{"booking_id":"x"}`),
	}
}

func (s *NotificationWorkerTestSuite) TestDrainBatch() {
	s.Run("delivers due jobs and marks them sent", func() {
		a, b := job("booking_confirmation"), job("booking_admin_notice")
		s.store.due = []repository.NotificationJob{a, b}

		s.Require().NoError(s.w.drainBatch(context.Background()))

		s.Len(s.sender.delivered, 2)
		s.ElementsMatch([]uuid.UUID{a.ID, b.ID}, s.store.sent)
		s.Empty(s.store.failed)
	})

	s.Run("a failed delivery marks the job and the rest still go out", func() {
		bad, good := job("booking_confirmation"), job("booking_admin_notice")
		s.store.due = []repository.NotificationJob{bad, good}
		s.sender.failTopics["booking_confirmation"] = errs.New("smtp timeout")

		s.Require().NoError(s.w.drainBatch(context.Background()))

		s.Equal([]uuid.UUID{good.ID}, s.store.sent)
		s.Equal("smtp timeout", s.store.failed[bad.ID])
	})

	s.Run("batch size caps how many jobs are claimed", func() {
		s.store.due = []repository.NotificationJob{job("a"), job("b"), job("c")}

		s.Require().NoError(s.w.drainBatch(context.Background()))

		s.Len(s.sender.delivered, 2)
	})

	s.Run("claim errors surface to the caller", func() {
		s.store.claimErr = errs.New("deadlock")

		err := s.w.drainBatch(context.Background())
		s.ErrorContains(err, "deadlock")
		s.Empty(s.sender.delivered)
	})

	s.Run("empty queue is a quiet no-op", func() {
		s.Require().NoError(s.w.drainBatch(context.Background()))
		s.Empty(s.sender.delivered)
		s.Empty(s.store.sent)
	})
}

func TestLogSenderAlwaysSucceeds(t *testing.T) {
	s := NewLogSender(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := s.Deliver(context.Background(), job("booking_cancelled")); err != nil {
		t.Fatalf("log delivery should never fail: %v", err)
	}
}

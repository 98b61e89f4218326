//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"
	"booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
)

// Fakes stand in for the persistence ports; the tx runner just invokes
// the body with a nil tx, which the repositories treat as pool access.

type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

type fakeBookingRepo struct {
	activeCount int
	inserted    []*booking.Booking
	stored      *booking.Booking
	updated     []booking.Status
	deleteErr   error
}

func (f *fakeBookingRepo) CountActiveAt(context.Context, pgx.Tx, time.Time) (int, error) {
	return f.activeCount, nil
}

func (f *fakeBookingRepo) Insert(_ context.Context, _ pgx.Tx, b *booking.Booking) (uuid.UUID, error) {
	f.inserted = append(f.inserted, b)
	return b.ID(), nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(context.Context, pgx.Tx, uuid.UUID) (*booking.Booking, error) {
	if f.stored == nil {
		return nil, infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
	}
	return f.stored, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ pgx.Tx, _ uuid.UUID, status booking.Status) error {
	f.updated = append(f.updated, status)
	return nil
}

func (f *fakeBookingRepo) Delete(context.Context, uuid.UUID) error {
	return f.deleteErr
}

type fakeTemplateRepo struct {
	locked  *schedule.SlotTemplate
	lockErr error
}

func (f *fakeTemplateRepo) List(context.Context) ([]*schedule.SlotTemplate, error) { return nil, nil }
func (f *fakeTemplateRepo) FindByID(context.Context, uuid.UUID) (*schedule.SlotTemplate, error) {
	return f.locked, nil
}
func (f *fakeTemplateRepo) LockForSlot(context.Context, pgx.Tx, time.Weekday, schedule.TimeOfDay) (*schedule.SlotTemplate, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	return f.locked, nil
}
func (f *fakeTemplateRepo) Upsert(context.Context, *schedule.SlotTemplate) error { return nil }
func (f *fakeTemplateRepo) Delete(context.Context, uuid.UUID) error              { return nil }
func (f *fakeTemplateRepo) HasFutureActiveBookings(context.Context, *schedule.SlotTemplate, time.Time) (bool, error) {
	return false, nil
}

type fakeBlackoutRepo struct {
	windows []*schedule.BlackoutWindow
}

func (f *fakeBlackoutRepo) List(context.Context) ([]*schedule.BlackoutWindow, error) {
	return f.windows, nil
}
func (f *fakeBlackoutRepo) ListOverlapping(context.Context, time.Time, time.Time) ([]*schedule.BlackoutWindow, error) {
	return f.windows, nil
}
func (f *fakeBlackoutRepo) FindByID(context.Context, uuid.UUID) (*schedule.BlackoutWindow, error) {
	return nil, infra.WrapRepoErr("blackout not found", errs.New("no rows"), infra.KindNotFound)
}
func (f *fakeBlackoutRepo) Upsert(context.Context, *schedule.BlackoutWindow) error { return nil }
func (f *fakeBlackoutRepo) Delete(context.Context, uuid.UUID) error                { return nil }

type fakeNotificationRepo struct {
	topics []string
}

func (f *fakeNotificationRepo) CreateJob(_ context.Context, _ pgx.Tx, _ string, topic string, _ []byte, _ time.Time) error {
	f.topics = append(f.topics, topic)
	return nil
}

type fakeReadStore struct {
	view *queries.BookingView
}

func (f *fakeReadStore) FindByID(context.Context, uuid.UUID) (*queries.BookingView, error) {
	return f.view, nil
}
func (f *fakeReadStore) ListByEmail(context.Context, string) ([]*queries.BookingView, error) {
	return nil, nil
}
func (f *fakeReadStore) ListRange(context.Context, time.Time, time.Time) ([]*queries.BookingView, error) {
	return nil, nil
}
func (f *fakeReadStore) ActiveCounts(context.Context, time.Time, time.Time) (map[time.Time]int, error) {
	return nil, nil
}

type fakeSyncRequester struct {
	requested []uuid.UUID
}

func (f *fakeSyncRequester) Request(id uuid.UUID) {
	f.requested = append(f.requested, id)
}

type BookingCommandsTestSuite struct {
	suite.Suite
	bookings      *fakeBookingRepo
	templates     *fakeTemplateRepo
	blackouts     *fakeBlackoutRepo
	notifications *fakeNotificationRepo
	reads         *fakeReadStore
	sync          *fakeSyncRequester
	clock         *clock.MockClock
	uc            commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	monday, err := builder.NewSlotTemplateBuilder().BuildDomain() // Mon 10:00-11:00, cap 2
	s.Require().NoError(err)

	s.bookings = &fakeBookingRepo{}
	s.templates = &fakeTemplateRepo{locked: monday}
	s.blackouts = &fakeBlackoutRepo{}
	s.notifications = &fakeNotificationRepo{}
	s.reads = &fakeReadStore{view: builder.NewBookingBuilder().BuildView()}
	s.sync = &fakeSyncRequester{}
	s.clock = clock.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	s.uc = commands.NewBookingCommands(
		fakeTxRunner{},
		s.bookings,
		s.templates,
		s.blackouts,
		s.notifications,
		s.reads,
		s.sync,
		s.clock,
		config.BookingConfig{MinAdvanceHours: 24, MaxAdvanceDays: 60, TimeZone: "UTC"},
		time.UTC,
	)
}

func (s *BookingCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) validRequest() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		CustomerName:  "Taro Yamada",
		CustomerEmail: "taro@example.com",
		BookedAt:      time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), // Monday 10:00
	}
}

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("success inserts booking, notices and requests sync", func() {
		view, err := s.uc.Create(context.Background(), s.validRequest())
		s.Require().NoError(err)
		s.NotNil(view)

		s.Require().Len(s.bookings.inserted, 1)
		inserted := s.bookings.inserted[0]
		s.Equal(booking.StatusPending, inserted.Status())
		s.Equal(booking.SyncPending, inserted.SyncStatus())

		s.Equal(
			[]string{booking.TopicBookingConfirmation, booking.TopicAdminNotice, booking.TopicBookingReminder},
			s.notifications.topics,
		)
		s.Equal([]uuid.UUID{inserted.ID()}, s.sync.requested)
	})

	s.Run("rejects invalid customer data", func() {
		req := s.validRequest()
		req.CustomerEmail = "not-an-email"
		_, err := s.uc.Create(context.Background(), req)
		s.ErrorIs(err, commands.ErrDomainValidation)
		s.Empty(s.bookings.inserted)
	})

	s.Run("rejects off-grid timestamps", func() {
		req := s.validRequest()
		req.BookedAt = req.BookedAt.Add(30 * time.Second)
		_, err := s.uc.Create(context.Background(), req)
		s.ErrorIs(err, commands.ErrSlotNotOffered)
	})

	s.Run("rejects bookings inside the lead-time window", func() {
		req := s.validRequest()
		req.BookedAt = s.clock.Now().Add(2 * time.Hour)
		_, err := s.uc.Create(context.Background(), req)
		s.ErrorIs(err, commands.ErrLeadTime)
	})

	s.Run("rejects bookings beyond the horizon", func() {
		req := s.validRequest()
		req.BookedAt = time.Date(2026, 12, 7, 10, 0, 0, 0, time.UTC) // > 60 days out
		_, err := s.uc.Create(context.Background(), req)
		s.ErrorIs(err, commands.ErrLeadTime)
	})

	s.Run("rejects blacked-out dates", func() {
		w, err := schedule.NewBlackoutWindow(
			time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			"", schedule.RecurrenceNone,
		)
		s.Require().NoError(err)
		s.blackouts.windows = []*schedule.BlackoutWindow{w}

		_, cerr := s.uc.Create(context.Background(), s.validRequest())
		s.ErrorIs(cerr, commands.ErrBlackout)
		s.Empty(s.bookings.inserted)
	})

	s.Run("rejects blacked-out dates in a non-UTC business timezone", func() {
		jst := time.FixedZone("JST", 9*60*60)
		uc := commands.NewBookingCommands(
			fakeTxRunner{},
			s.bookings,
			s.templates,
			s.blackouts,
			s.notifications,
			s.reads,
			s.sync,
			s.clock,
			config.BookingConfig{MinAdvanceHours: 24, MaxAdvanceDays: 60, TimeZone: "Asia/Tokyo"},
			jst,
		)

		// The window is hydrated with midnight-UTC dates, the customer
		// books a Tokyo morning on the same calendar day.
		w, err := schedule.NewBlackoutWindow(
			time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			"", schedule.RecurrenceNone,
		)
		s.Require().NoError(err)
		s.blackouts.windows = []*schedule.BlackoutWindow{w}

		req := s.validRequest()
		req.BookedAt = time.Date(2026, 9, 7, 10, 0, 0, 0, jst) // Monday 10:00 JST
		_, cerr := uc.Create(context.Background(), req)
		s.ErrorIs(cerr, commands.ErrBlackout)
		s.Empty(s.bookings.inserted)
	})

	s.Run("rejects times with no matching template", func() {
		s.templates.lockErr = infra.WrapRepoErr("no slot", errs.New("no rows"), infra.KindNotFound)
		_, err := s.uc.Create(context.Background(), s.validRequest())
		s.ErrorIs(err, commands.ErrSlotNotOffered)
	})

	s.Run("rejects when capacity is exhausted", func() {
		s.bookings.activeCount = 2 // template capacity
		_, err := s.uc.Create(context.Background(), s.validRequest())
		s.ErrorIs(err, commands.ErrSlotFull)
		s.Empty(s.bookings.inserted)
		s.Empty(s.notifications.topics)
		s.Empty(s.sync.requested)
	})
}

func (s *BookingCommandsTestSuite) TestTransition() {
	s.Run("not found", func() {
		_, err := s.uc.Transition(context.Background(), uuid.New(), booking.StatusConfirmed)
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("invalid transition surfaces as conflict", func() {
		s.bookings.stored = builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusCancelled
		}).BuildReconstructed()

		_, err := s.uc.Transition(context.Background(), s.bookings.stored.ID(), booking.StatusConfirmed)
		s.ErrorIs(err, commands.ErrInvalidTransition)
		s.Empty(s.bookings.updated)
	})

	s.Run("cancellation persists and enqueues the notice", func() {
		s.bookings.stored = builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
		}).BuildReconstructed()

		view, err := s.uc.Cancel(context.Background(), s.bookings.stored.ID())
		s.Require().NoError(err)
		s.NotNil(view)
		s.Equal([]booking.Status{booking.StatusCancelled}, s.bookings.updated)
		s.Equal([]string{booking.TopicBookingCancelled}, s.notifications.topics)
	})

	s.Run("completion before slot time is rejected", func() {
		s.bookings.stored = builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
			b.BookedAt = s.clock.Now().AddDate(0, 0, 3)
		}).BuildReconstructed()

		_, err := s.uc.Transition(context.Background(), s.bookings.stored.ID(), booking.StatusCompleted)
		s.ErrorIs(err, commands.ErrInvalidTransition)
	})
}

func (s *BookingCommandsTestSuite) TestDelete() {
	s.Run("not found maps to sentinel", func() {
		s.bookings.deleteErr = infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
		err := s.uc.Delete(context.Background(), uuid.New())
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("success", func() {
		s.bookings.deleteErr = nil
		s.NoError(s.uc.Delete(context.Background(), uuid.New()))
	})
}

package components

import (
	"booking-engine/internal/infra/readstore"
	"booking-engine/internal/infra/repository"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"
	"booking-engine/internal/usecase/shared"
	"booking-engine/internal/worker"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		shared.NewPgxTxRunner,

		// Booking write side also backs the sync worker.
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(worker.SyncBookingStore)),
		),
		fx.Annotate(
			repository.NewSlotTemplateRepository,
			fx.As(new(commands.SlotTemplateRepository)),
			fx.As(new(queries.TemplateReadSource)),
		),
		fx.Annotate(
			repository.NewBlackoutRepository,
			fx.As(new(commands.BlackoutRepository)),
			fx.As(new(queries.BlackoutReadSource)),
			fx.As(new(queries.BlackoutListSource)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
			fx.As(new(worker.NotificationJobStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(queries.ActiveCountSource)),
		),
	),
)

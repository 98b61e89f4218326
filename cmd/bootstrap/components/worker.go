package components

import (
	"context"

	"booking-engine/internal/infra/calendar"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			calendar.NewClient,
			fx.As(new(commands.CalendarClient)),
		),
		fx.Annotate(
			worker.NewLogSender,
			fx.As(new(worker.Sender)),
		),
		worker.NewCalendarSyncWorker,
		worker.NewNotificationWorker,
		func(w *worker.CalendarSyncWorker) commands.SyncRequester { return w },
	),
	fx.Invoke(registerWorkers),
)

func registerWorkers(lc fx.Lifecycle, sync *worker.CalendarSyncWorker, notify *worker.NotificationWorker) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sync.Start()
			notify.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			notify.Stop()
			sync.Stop()
			return nil
		},
	})
}

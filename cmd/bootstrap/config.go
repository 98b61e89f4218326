package bootstrap

import (
	"time"

	"booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		func(cfg config.Config) config.CalendarConfig { return cfg.Calendar },
		func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
		NewLocation,
	),
)

// NewLocation resolves the business timezone once; every slot
// projection and lead-time check uses this location.
func NewLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Booking.TimeZone)
}

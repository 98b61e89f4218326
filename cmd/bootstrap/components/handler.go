package components

import (
	"booking-engine/internal/handler"
	"booking-engine/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewScheduleHandler,
	),
	fx.Invoke(handler.NewRouter),
)

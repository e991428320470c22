package journal

import (
	"signal_bot/internal/modules/journal/service"

	"go.uber.org/fx"
)

// Module — журнал сигналов в postgres.
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(service.NewStore),
	)
}

package binbot

import (
	"signal_bot/internal/modules/binbot/service"

	"go.uber.org/fx"
)

// Module — клиент bot-management API и общий Governor для всех
// исходящих запросов.
func Module() fx.Option {
	return fx.Module("binbot",
		fx.Provide(
			service.NewGovernor,
			service.NewClient,
		),
	)
}

package autotrade

import (
	"signal_bot/internal/modules/autotrade/service"
	binbotsvc "signal_bot/internal/modules/binbot/service"

	"go.uber.org/fx"
)

// Module — движок автотрейда: превращает кандидатов в активные боты.
func Module() fx.Option {
	return fx.Module("autotrade",
		fx.Provide(
			func(c *binbotsvc.Client) service.BotAPI { return c },
			service.NewEngine,
		),
	)
}

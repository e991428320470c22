package bootstrap

import (
	binbotsvc "signal_bot/internal/modules/binbot/service"
	"signal_bot/internal/modules/bootstrap/service"
	journalsvc "signal_bot/internal/modules/journal/service"

	"go.uber.org/fx"
)

// Module — прогрев перед стартом фидов: настройки, блэклист,
// активные боты, вселенная подписки.
func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			func(c *binbotsvc.Client) service.WarmupAPI { return c },
			func(s *journalsvc.Store) service.UniverseJournal { return s },
			service.NewWarmuper,
		),
	)
}

package hodloo_websocket

import (
	"signal_bot/internal/modules/hodloo_websocket/service"

	"go.uber.org/fx"
)

// Module — сторонний алерт-фид (QFL base-break / panic).
func Module() fx.Option {
	return fx.Module("hodloo_websocket",
		fx.Provide(service.NewClient),
	)
}

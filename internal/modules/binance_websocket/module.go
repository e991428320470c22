package binance_websocket

import (
	"signal_bot/internal/modules/binance_websocket/service"

	"go.uber.org/fx"
)

// Module — первичный kline-фид биржи.
func Module() fx.Option {
	return fx.Module("binance_websocket",
		fx.Provide(service.NewClient),
	)
}

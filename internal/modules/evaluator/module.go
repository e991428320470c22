package evaluator

import (
	"signal_bot/internal/modules/evaluator/service"

	"go.uber.org/fx"
)

// Module — реестр эвалюаторов, порядок фиксирован в NewRegistry.
func Module() fx.Option {
	return fx.Module("evaluator",
		fx.Provide(service.NewRegistry),
	)
}

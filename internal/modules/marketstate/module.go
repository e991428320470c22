package marketstate

import (
	"context"
	"time"

	binbotsvc "signal_bot/internal/modules/binbot/service"
	"signal_bot/internal/modules/marketstate/service"

	"go.uber.org/fx"
)

// Module — трекер состояния рынка. Обновляется по своей кадентности,
// независимо от событий фидов.
func Module() fx.Option {
	return fx.Module("marketstate",
		fx.Provide(
			func(c *binbotsvc.Client) service.MarketData { return c },
			service.NewTracker,
		),
		fx.Invoke(func(lc fx.Lifecycle, t *service.Tracker, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						// первый снимок сразу, дальше по тикеру
						t.RefreshIfDue(ctx, time.Now())

						tick := time.NewTicker(time.Minute)
						defer tick.Stop()
						for {
							select {
							case <-ctx.Done():
								return
							case now := <-tick.C:
								t.RefreshIfDue(ctx, now)
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}

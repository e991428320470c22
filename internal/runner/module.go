package runner

import (
	"context"
	"time"

	"go.uber.org/fx"

	autotradesvc "signal_bot/internal/modules/autotrade/service"
	bnwssvc "signal_bot/internal/modules/binance_websocket/service"
	binbotsvc "signal_bot/internal/modules/binbot/service"
	bootstrapsvc "signal_bot/internal/modules/bootstrap/service"
	evalsvc "signal_bot/internal/modules/evaluator/service"
	healthsvc "signal_bot/internal/modules/health/service"
	hodloosvc "signal_bot/internal/modules/hodloo_websocket/service"
	journalsvc "signal_bot/internal/modules/journal/service"
	marketsvc "signal_bot/internal/modules/marketstate/service"
	"signal_bot/pkg/logger"
)

const activeRefreshEvery = 10 * time.Minute

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(c *binbotsvc.Client) MarketAPI { return c },
			func(r *evalsvc.Registry) Evaluators { return r },
			func(e *autotradesvc.Engine) Engine { return e },
			func(t *marketsvc.Tracker) MarketState { return t },
			func(s *journalsvc.Store) CandidateJournal { return s },
			NewDispatcher,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			d *Dispatcher,
			wu *bootstrapsvc.Warmuper,
			klines *bnwssvc.Client,
			alerts *hodloosvc.Client,
			health *healthsvc.State,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						warm, err := wu.Run(ctx)
						if err != nil {
							logger.Fatal("warmup failed: %v", err)
							return
						}
						d.SeedActive(warm.Active)
						health.SetReady(true)

						// по горутине на фид: медленный снапшот одного
						// фида не тормозит другой
						go func() {
							health.SetKlineConnected(true)
							defer health.SetKlineConnected(false)
							for tick := range klines.StreamKlines(ctx, warm.Universe) {
								d.HandleKline(ctx, tick)
							}
						}()

						go func() {
							health.SetAlertConnected(true)
							defer health.SetAlertConnected(false)
							for ev := range alerts.StreamAlerts(ctx) {
								d.HandleAlert(ctx, ev)
							}
						}()

						refresh := time.NewTicker(activeRefreshEvery)
						defer refresh.Stop()
						for {
							select {
							case <-ctx.Done():
								return
							case <-refresh.C:
								d.RefreshActive(ctx)
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}

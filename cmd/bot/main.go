package main

import (
	"context"
	"log"

	"signal_bot/internal/modules/autotrade"
	binancews "signal_bot/internal/modules/binance_websocket"
	"signal_bot/internal/modules/binbot"
	"signal_bot/internal/modules/bootstrap"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/evaluator"
	"signal_bot/internal/modules/health"
	hodloows "signal_bot/internal/modules/hodloo_websocket"
	"signal_bot/internal/modules/journal"
	"signal_bot/internal/modules/marketstate"
	"signal_bot/internal/modules/postgres"
	telegram "signal_bot/internal/modules/telegram_bot"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
		postgres.Module(),
		telegram.Module(),
		binbot.Module(),
		journal.Module(),
		health.Module(),
		marketstate.Module(),
		evaluator.Module(),
		autotrade.Module(),
		binancews.Module(),
		hodloows.Module(),
		bootstrap.Module(),
		runner.Module(),
	)
	if err := app.Start(context.Background()); err != nil {
		logger.Fatal("%v", err)
	}
}

package telegram

import (
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/telegram_bot/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			// без токена деградируем в stdout, пайплайн от этого не зависит
			func(cfg *config.Config) (service.Notifier, error) {
				if cfg.Telegram.Token == "" {
					return service.NewStdout(), nil
				}
				return service.NewTelegram(cfg)
			},
		),
	)
}

package service

import (
	"context"
	"fmt"
	"sort"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	tgsvc "signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/pkg/logger"
)

// WarmupAPI — срез bot-management API для прогрева.
type WarmupAPI interface {
	GetAutotradeSettings(ctx context.Context, mode models.TradingMode) (models.AutotradeSettings, error)
	GetBlacklist(ctx context.Context) ([]models.BlacklistEntry, error)
	ActiveBots(ctx context.Context, mode models.TradingMode) ([]string, error)
	TradableSymbols(ctx context.Context, quote string) ([]string, error)
}

type UniverseJournal interface {
	SaveUniverse(ctx context.Context, subs []models.SubscribedSymbol) error
}

// Warmup — всё, что нужно знать до старта фидов.
type Warmup struct {
	Settings  map[models.TradingMode]models.AutotradeSettings
	Blacklist map[string]string // pair -> reason
	Active    map[models.TradingMode][]string
	Universe  []string // торгуемые пары минус блэклист, подписка kline-фида
}

type Warmuper struct {
	cfg     *config.Config
	api     WarmupAPI
	journal UniverseJournal
	n       tgsvc.Notifier
}

func NewWarmuper(cfg *config.Config, api WarmupAPI, journal UniverseJournal, n tgsvc.Notifier) *Warmuper {
	return &Warmuper{cfg: cfg, api: api, journal: journal, n: n}
}

// Run загружает настройки обоих режимов, блэклист и активные боты,
// собирает вселенную подписки и журналирует её снимок.
func (w *Warmuper) Run(ctx context.Context) (*Warmup, error) {
	out := &Warmup{
		Settings:  make(map[models.TradingMode]models.AutotradeSettings, 2),
		Blacklist: make(map[string]string),
		Active:    make(map[models.TradingMode][]string, 2),
	}

	for _, mode := range []models.TradingMode{models.ModeLive, models.ModePaper} {
		settings, err := w.api.GetAutotradeSettings(ctx, mode)
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		out.Settings[mode] = settings

		active, err := w.api.ActiveBots(ctx, mode)
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		out.Active[mode] = active
	}

	blacklist, err := w.api.GetBlacklist(ctx)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	for _, b := range blacklist {
		out.Blacklist[b.Pair] = b.Reason
	}

	tradable, err := w.api.TradableSymbols(ctx, w.cfg.Exchange.QuoteAsset)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	subs := make([]models.SubscribedSymbol, 0, len(tradable))
	for _, pair := range tradable {
		_, blacklisted := out.Blacklist[pair]
		subs = append(subs, models.SubscribedSymbol{Pair: pair, Blacklisted: blacklisted})
		if !blacklisted {
			out.Universe = append(out.Universe, pair)
		}
	}
	sort.Strings(out.Universe)

	if err := w.journal.SaveUniverse(ctx, subs); err != nil {
		// журнал не критичен для старта
		logger.Warn("warmup: universe journal failed: %v", err)
	}

	w.n.Sendf("🚀 Signal bot started\n• Universe: %d pairs\n• Blacklisted: %d\n• Active bots: live %d / paper %d",
		len(out.Universe), len(out.Blacklist),
		len(out.Active[models.ModeLive]), len(out.Active[models.ModePaper]))

	logger.Info("warmup done: %d pairs, %d blacklisted", len(out.Universe), len(out.Blacklist))
	return out, nil
}

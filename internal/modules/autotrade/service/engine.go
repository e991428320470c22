package service

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"

	"signal_bot/internal/models"
	binbotsvc "signal_bot/internal/modules/binbot/service"
	"signal_bot/internal/modules/config"
	tgsvc "signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/pkg/logger"
)

// Outcome — терминальное состояние обработки кандидата.
type Outcome string

const (
	OutcomeActivated  Outcome = "activated"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeRolledBack Outcome = "rolled_back"
)

// BotAPI — срез клиента bot-management API, нужный движку.
type BotAPI interface {
	GetAutotradeSettings(ctx context.Context, mode models.TradingMode) (models.AutotradeSettings, error)
	GetBlacklist(ctx context.Context) ([]models.BlacklistEntry, error)
	AddToBlacklist(ctx context.Context, pair, reason string) error
	ActiveBots(ctx context.Context, mode models.TradingMode) ([]string, error)
	GetBalance(ctx context.Context) ([]binbotsvc.AssetBalance, error)
	BalanceEstimate(ctx context.Context) (float64, error)
	TickerPrice(ctx context.Context, symbol string) (float64, error)
	CreateBot(ctx context.Context, mode models.TradingMode, bot models.BotConfig) (string, error)
	ActivateBot(ctx context.Context, mode models.TradingMode, botID string) error
	DeleteBot(ctx context.Context, mode models.TradingMode, botID string) error
	SubmitEventLog(ctx context.Context, botID, message string) error
}

type Engine struct {
	cfg *config.Config
	api BotAPI
	n   tgsvc.Notifier
}

func NewEngine(cfg *config.Config, api BotAPI, n tgsvc.Notifier) *Engine {
	return &Engine{cfg: cfg, api: api, n: n}
}

// Process проводит кандидата через весь конвейер:
// блэклист -> лимит ботов -> баланс -> конфиг -> лесенка -> create -> activate.
// Шаги 1-3 завершаются OutcomeSkipped без ошибки, это штатные исходы.
func (e *Engine) Process(ctx context.Context, cand models.TradeCandidate, mode models.TradingMode) (outcome Outcome, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "autotrade.process")
	span.SetTag("pair", cand.Symbol)
	span.SetTag("algorithm", cand.Algorithm)
	span.SetTag("mode", string(mode))
	defer func() {
		span.SetTag("outcome", string(outcome))
		span.Finish()
	}()

	settings, err := e.api.GetAutotradeSettings(ctx, mode)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("Process %s: %w", cand.Symbol, err)
	}
	if !settings.Enabled {
		return OutcomeSkipped, nil
	}

	blacklist, err := e.api.GetBlacklist(ctx)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("Process %s: %w", cand.Symbol, err)
	}
	for _, b := range blacklist {
		if b.Pair == cand.Symbol {
			logger.Info("autotrade %s: pair is blacklisted (%s)", cand.Symbol, b.Reason)
			return OutcomeSkipped, nil
		}
	}

	active, err := e.api.ActiveBots(ctx, mode)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("Process %s: %w", cand.Symbol, err)
	}
	if settings.MaxActiveBots > 0 && len(active) >= settings.MaxActiveBots {
		logger.Info("autotrade %s: reached max active bots (%d)", cand.Symbol, settings.MaxActiveBots)
		return OutcomeSkipped, nil
	}
	for _, pair := range active {
		// один активный бот на пару в режиме
		if pair == cand.Symbol {
			logger.Info("autotrade %s: bot already active", cand.Symbol)
			return OutcomeSkipped, nil
		}
	}

	if mode == models.ModeLive {
		estimate, err := e.api.BalanceEstimate(ctx)
		if err != nil {
			return OutcomeSkipped, fmt.Errorf("Process %s: %w", cand.Symbol, err)
		}
		if estimate < settings.BaseOrderSize {
			logger.Info("autotrade %s: not enough funds (%.2f < %.2f)",
				cand.Symbol, estimate, settings.BaseOrderSize)
			return OutcomeSkipped, nil
		}
	}

	bot := e.buildConfig(cand, settings, mode)

	ok, err := e.applySizing(ctx, &bot, cand, settings, mode)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("Process %s: %w", cand.Symbol, err)
	}
	if !ok {
		return OutcomeSkipped, nil
	}

	if cand.Strategy == models.StrategyLong {
		balances, err := e.api.GetBalance(ctx)
		if err != nil {
			return OutcomeSkipped, fmt.Errorf("Process %s: %w", cand.Symbol, err)
		}
		e.applyLadder(&bot, cand, balances)
	} else {
		e.applyShortBounds(&bot, cand)
	}

	botID, err := e.api.CreateBot(ctx, mode, bot)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("Process %s: %w", cand.Symbol, err)
	}

	if err := e.api.ActivateBot(ctx, mode, botID); err != nil {
		return e.rollback(ctx, mode, botID, cand, err)
	}

	msg := fmt.Sprintf("Succesful %s autotrade, opened with %s!", mode, cand.Symbol)
	if logErr := e.api.SubmitEventLog(ctx, botID, msg); logErr != nil {
		logger.Warn("autotrade %s: event log failed: %v", cand.Symbol, logErr)
	}
	logger.Info("autotrade %s: %s bot %s activated (%s)", cand.Symbol, mode, botID, cand.Algorithm)
	return OutcomeActivated, nil
}

// rollback разбирает последствия неудачной активации: сообщение в
// event log бота, пара в блэклист, запись бота под снос. Иначе UI
// зарастает мёртвыми ботами, а сигналы продолжают долбить пару.
func (e *Engine) rollback(ctx context.Context, mode models.TradingMode, botID string, cand models.TradeCandidate, cause error) (Outcome, error) {
	msg := cause.Error()

	if err := e.api.SubmitEventLog(ctx, botID, msg); err != nil {
		logger.Warn("rollback %s: event log failed: %v", cand.Symbol, err)
	}
	if err := e.api.AddToBlacklist(ctx, cand.Symbol, msg); err != nil {
		logger.Warn("rollback %s: blacklist failed: %v", cand.Symbol, err)
	}
	if err := e.api.DeleteBot(ctx, mode, botID); err != nil {
		logger.Warn("rollback %s: delete bot failed: %v", cand.Symbol, err)
	}

	e.n.Sendf("⚠️ Autotrade rolled back #%s (%s): %s", cand.Symbol, cand.Algorithm, msg)
	return OutcomeRolledBack, fmt.Errorf("Process %s: activation failed: %w", cand.Symbol, cause)
}

// buildConfig — заготовка бота из настроек контроллера и кандидата.
func (e *Engine) buildConfig(cand models.TradeCandidate, settings models.AutotradeSettings, mode models.TradingMode) models.BotConfig {
	bot := models.BotConfig{
		Pair:                cand.Symbol,
		Name:                fmt.Sprintf("%s_%s", cand.Algorithm, time.Now().Format("2006-01-02T15:04")),
		Status:              "inactive",
		Mode:                "autotrade",
		Strategy:            cand.Strategy,
		BaseOrderSize:       formatAmount(settings.BaseOrderSize),
		BalanceToUse:        settings.BalanceToUse,
		BalanceSizeToUse:    settings.BalanceSizeToUse,
		CandlestickInterval: settings.CandlestickInterval,
		TakeProfit:          settings.TakeProfit,
		StopLoss:            settings.StopLoss,
		Trailling:           settings.Trailling,
		TraillingDeviation:  settings.TraillingDeviation,
		CooldownMin:         e.cfg.LongCooldownMin,
		MarginShortReversal: true,
		SafetyOrders:        []models.SafetyOrder{},
	}

	e.applySpread(&bot, cand)
	if cand.Strategy == models.StrategyMarginShort {
		// после спреда: override top_gainers_drop сильнее полос
		e.setMarginShortValues(&bot, cand)
	}
	return bot
}

// setMarginShortValues: биржа держит isolated-пару сутки после трейда,
// поэтому кулдаун длинный.
func (e *Engine) setMarginShortValues(bot *models.BotConfig, cand models.TradeCandidate) {
	bot.CooldownMin = e.cfg.MarginShortCooldown
	bot.MarginShortReversal = true

	if cand.Algorithm == "top_gainers_drop" {
		bot.StopLoss = 5
		bot.TraillingDeviation = 3.2
	}
}

// applySpread переопределяет TP/SL из полос волатильности, если
// эвалюатор их отдал.
func (e *Engine) applySpread(bot *models.BotConfig, cand models.TradeCandidate) {
	if cand.Spread == nil {
		return
	}
	bot.TakeProfit = cand.Spread.Band1 * 100
	bot.StopLoss = cand.Spread.Band1 + cand.Spread.Band2
	bot.Trailling = true
	bot.TraillingDeviation = cand.Spread.Band1 * 100
}

package runner

import (
	"context"
	"strings"
	"sync"
	"time"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	autotradesvc "signal_bot/internal/modules/autotrade/service"
	"signal_bot/internal/modules/config"
	evalsvc "signal_bot/internal/modules/evaluator/service"
	healthsvc "signal_bot/internal/modules/health/service"
	tgsvc "signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/pkg/logger"
)

const alertStatsInterval = "15m"

// MarketAPI — срез bot-management API для диспетчера.
type MarketAPI interface {
	GetSnapshot(ctx context.Context, symbol, interval string) (*models.MarketSnapshot, error)
	Ticker24(ctx context.Context, symbol string) (models.Day24, error)
	ActiveBots(ctx context.Context, mode models.TradingMode) ([]string, error)
	ExistsOnExchange(ctx context.Context, asset string) (bool, error)
}

type Engine interface {
	Process(ctx context.Context, cand models.TradeCandidate, mode models.TradingMode) (autotradesvc.Outcome, error)
}

type Evaluators interface {
	Evaluate(ctx context.Context, ec evalsvc.EvaluationContext) []models.TradeCandidate
}

type MarketState interface {
	Snapshot() models.MarketState
}

type CandidateJournal interface {
	RecordCandidate(ctx context.Context, cand models.TradeCandidate, mode models.TradingMode, outcome string) error
}

// Dispatcher — сердце пайплайна: события фидов -> снапшот -> реестр
// эвалюаторов -> автотрейд. Состояние (активные боты, дедуп)
// переживает реконнекты фидов в пределах жизни процесса.
type Dispatcher struct {
	cfg    *config.Config
	api    MarketAPI
	evals  Evaluators
	engine Engine
	state  MarketState

	journal CandidateJournal
	health  *healthsvc.State
	n       tgsvc.Notifier

	dedupKline *DedupWindow
	dedupAlert *DedupWindow

	mu     sync.Mutex
	active map[models.TradingMode]map[string]bool
}

func NewDispatcher(
	cfg *config.Config,
	api MarketAPI,
	evals Evaluators,
	engine Engine,
	state MarketState,
	journal CandidateJournal,
	health *healthsvc.State,
	n tgsvc.Notifier,
) *Dispatcher {
	return &Dispatcher{
		cfg:        cfg,
		api:        api,
		evals:      evals,
		engine:     engine,
		state:      state,
		journal:    journal,
		health:     health,
		n:          n,
		dedupKline: NewDedupWindow(cfg.KlineCooldown),
		dedupAlert: NewDedupWindow(cfg.AlertCooldown),
		active: map[models.TradingMode]map[string]bool{
			models.ModeLive:  {},
			models.ModePaper: {},
		},
	}
}

// SeedActive — стартовые наборы активных ботов из прогрева.
func (d *Dispatcher) SeedActive(active map[models.TradingMode][]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for mode, pairs := range active {
		set := make(map[string]bool, len(pairs))
		for _, p := range pairs {
			set[p] = true
		}
		d.active[mode] = set
	}
}

func (d *Dispatcher) isActive(pair string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active[models.ModeLive][pair] || d.active[models.ModePaper][pair]
}

func (d *Dispatcher) markActive(pair string, mode models.TradingMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active[mode][pair] = true
}

// RefreshActive перечитывает наборы активных ботов. Боты закрываются
// сами по TP/SL, локальный набор без этого только растёт.
func (d *Dispatcher) RefreshActive(ctx context.Context) {
	for _, mode := range []models.TradingMode{models.ModeLive, models.ModePaper} {
		pairs, err := d.api.ActiveBots(ctx, mode)
		if err != nil {
			logger.Error("refresh active bots %s: %v", mode, err)
			continue
		}
		set := make(map[string]bool, len(pairs))
		for _, p := range pairs {
			set[p] = true
		}
		d.mu.Lock()
		d.active[mode] = set
		d.mu.Unlock()
	}
}

// HandleKline — один закрытый интервал по символу из первичного фида.
func (d *Dispatcher) HandleKline(ctx context.Context, tick models.KlineTick) {
	d.health.TouchEvent(time.Now())

	symbol := tick.Symbol
	if d.isActive(symbol) {
		return
	}
	if d.skippedAsset(symbol) {
		return
	}
	if !d.dedupKline.TryAcquire(symbol, time.Now()) {
		return
	}

	state := d.state.Snapshot()

	snap, err := d.api.GetSnapshot(ctx, symbol, d.cfg.Exchange.Interval)
	if err != nil {
		logger.Error("snapshot %s: %v", symbol, err)
		return
	}

	// суточная статистика нужна только rally/pullback, и только когда
	// открыт bullish-гейт. Не дёргаем ручку зря.
	var day models.Day24
	if state.Dominance == models.DominanceGainers && state.Reversal == models.ReversalPositive {
		if day, err = d.api.Ticker24(ctx, symbol); err != nil {
			logger.Error("ticker24 %s: %v", symbol, err)
			day = models.Day24{}
		}
	}

	ec := evalsvc.EvaluationContext{
		Symbol:   symbol,
		Open:     tick.Open,
		Close:    tick.Close,
		Snapshot: snap,
		Day:      day,
		State:    state,
	}

	for _, cand := range d.evals.Evaluate(ctx, ec) {
		d.route(ctx, cand)
	}
}

// HandleAlert — событие стороннего алерт-фида. Сигнал привязан к
// базовому активу, пара пересобирается на основном quote.
func (d *Dispatcher) HandleAlert(ctx context.Context, ev models.AlertEvent) {
	d.health.TouchEvent(time.Now())

	if helper.IsLeveragedToken(ev.Asset) {
		return
	}
	if !d.dedupAlert.TryAcquire(ev.Asset, time.Now()) {
		return
	}

	exists, err := d.api.ExistsOnExchange(ctx, ev.Asset)
	if err != nil {
		logger.Error("alert %s: existence check: %v", ev.Asset, err)
		return
	}
	if !exists {
		return
	}

	// сигналы других рынков влияют и на основной quote-рынок
	pair := ev.Asset + d.cfg.Exchange.QuoteAsset
	if d.isActive(pair) {
		return
	}

	snap, err := d.api.GetSnapshot(ctx, pair, alertStatsInterval)
	if err != nil {
		logger.Error("alert snapshot %s: %v", pair, err)
		return
	}

	state := d.state.Snapshot()
	d.n.Sendf(`- <strong>#QFL Hodloo</strong> signal algorithm #%s [%s]
- Alert price: %v
- Base price: %v
- Volume: %v
- Lowest price: %v
- SD: %v
- Market domination: %s
- <a href='https://www.binance.com/en/trade/%s'>Binance</a>
- <a href='http://terminal.binbot.in/admin/bots/new/%s'>Dashboard trade</a>`,
		pair, ev.Type, ev.Price, ev.BasePrice, ev.Volume24,
		snap.LowestPrice, snap.SD, state.Dominance, pair, pair)

	// паника и пробой базы торгуются только на падающем рынке:
	// по опыту доминация предсказывает продолжение лучше наклона
	if state.Dominance != models.DominanceLosers {
		return
	}

	cand := models.TradeCandidate{
		Symbol:      pair,
		Algorithm:   "hodloo_qfl_signals_" + string(ev.Type),
		Strategy:    models.StrategyMarginShort,
		Price:       ev.Price,
		SD:          snap.SD,
		LowestPrice: snap.LowestPrice,
	}

	// алерт-путь всегда бумажный: чужой фид не управляет живыми деньгами
	if !d.cfg.PaperEnabled {
		return
	}
	d.process(ctx, cand, models.ModePaper)
}

// route отправляет кандидата в оба режима. Бумажный идёт первым и
// не блокирует живой.
func (d *Dispatcher) route(ctx context.Context, cand models.TradeCandidate) {
	if d.cfg.PaperEnabled {
		d.process(ctx, cand, models.ModePaper)
	}
	if d.cfg.LiveEnabled {
		d.process(ctx, cand, models.ModeLive)
	}
}

func (d *Dispatcher) process(ctx context.Context, cand models.TradeCandidate, mode models.TradingMode) {
	outcome, err := d.engine.Process(ctx, cand, mode)
	if err != nil {
		logger.Error("autotrade %s %s: %v", cand.Symbol, mode, err)
	}
	if outcome == autotradesvc.OutcomeActivated {
		d.markActive(cand.Symbol, mode)
	}
	if jErr := d.journal.RecordCandidate(ctx, cand, mode, string(outcome)); jErr != nil {
		logger.Warn("journal %s: %v", cand.Symbol, jErr)
	}
}

// skippedAsset — грубый фильтр поверх блэклиста (левередж-токены,
// нежелательные quote).
func (d *Dispatcher) skippedAsset(symbol string) bool {
	for _, frag := range d.cfg.SkippedAssets {
		if strings.Contains(symbol, frag) {
			return true
		}
	}
	return false
}

package service

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	tgsvc "signal_bot/internal/modules/telegram_bot/service"
)

const (
	binanceTradeURL = "https://www.binance.com/en/trade/"
	dashboardURL    = "http://terminal.binbot.in/admin/bots/new/"
)

// EvaluationContext — всё, что видит эвалюатор. Собирается заново под
// каждое событие и после оценки выбрасывается.
type EvaluationContext struct {
	Symbol string
	Open   float64
	Close  float64

	Snapshot *models.MarketSnapshot
	Day      models.Day24
	State    models.MarketState
}

// Evaluator — чистая функция контекста. nil — нет кандидата, это
// нормальный исход, не ошибка. Единственный допустимый side effect —
// алерт человеку через нотифайер.
type Evaluator struct {
	Name string
	Eval func(ctx context.Context, ec EvaluationContext) *models.TradeCandidate
}

type Registry struct {
	cfg   *config.Config
	n     tgsvc.Notifier
	evals []Evaluator
}

// NewRegistry — фиксированный порядок регистрации. Несколько
// эвалюаторов могут сработать на одном событии, каждый кандидат
// уходит в автотрейд независимо.
func NewRegistry(cfg *config.Config, n tgsvc.Notifier) *Registry {
	r := &Registry{cfg: cfg, n: n}
	r.evals = []Evaluator{
		{Name: "coinrule_buy_low_sell_high", Eval: r.buyLowSellHigh},
		{Name: "rally_pullback", Eval: r.rallyOrPullback},
		{Name: "price_rise_15", Eval: r.priceChange},
		{Name: "coinrule_fast_and_slow_macd", Eval: r.fastAndSlowMACD},
		{Name: "ma_candlestick_jump", Eval: r.maCandlestickJump},
		{Name: "ma_candlestick_drop", Eval: r.maCandlestickDrop},
		{Name: "top_gainers_drop", Eval: r.topGainersDrop},
	}
	return r
}

// Evaluate прогоняет контекст по всем эвалюаторам по порядку.
func (r *Registry) Evaluate(ctx context.Context, ec EvaluationContext) []models.TradeCandidate {
	var out []models.TradeCandidate
	for _, e := range r.evals {
		if c := e.Eval(ctx, ec); c != nil {
			c.Algorithm = e.Name
			out = append(out, *c)
		}
	}
	return out
}

// bullishGate: часть алгоритмов имеет смысл только на развороте рынка
// вверх, иначе сигналов слишком много и они убыточны.
func bullishGate(st models.MarketState) bool {
	return st.Dominance == models.DominanceGainers && st.Reversal == models.ReversalPositive
}

func last(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return xs[len(xs)-1], true
}

func lastTwo(xs []float64) (prev, cur float64, ok bool) {
	if len(xs) < 2 {
		return 0, 0, false
	}
	return xs[len(xs)-2], xs[len(xs)-1], true
}

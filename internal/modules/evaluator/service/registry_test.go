package service

import (
	"context"
	"fmt"
	"testing"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type fakeNotifier struct {
	msgs []string
}

func (f *fakeNotifier) Send(msg string) { f.msgs = append(f.msgs, msg) }
func (f *fakeNotifier) Sendf(format string, args ...any) {
	f.Send(fmt.Sprintf(format, args...))
}

func bullishState() models.MarketState {
	return models.MarketState{
		Dominance:    models.DominanceGainers,
		Reversal:     models.ReversalPositive,
		BTCChangePct: 2.0,
	}
}

// снапшот, на котором срабатывает jump: всё выше всех MA, MA7 растёт
func jumpSnapshot() *models.MarketSnapshot {
	return &models.MarketSnapshot{
		Closes:         []float64{9.0, 10.5},
		MA7:            []float64{9.0, 9.5},
		MA25:           []float64{8.5, 9.0},
		MA100:          []float64{8.0, 8.2},
		MACD:           []float64{0.1, -0.2},
		MACDSignal:     []float64{0.2, 0.1},
		RSI:            []float64{50, 55},
		SD:             0.5,
		LowestPrice:    7.5,
		BTCCorrelation: 0.9,
	}
}

func newTestRegistry() (*Registry, *fakeNotifier) {
	n := &fakeNotifier{}
	return NewRegistry(&config.Config{}, n), n
}

func TestMACandlestickJumpFires(t *testing.T) {
	r, n := newTestRegistry()
	ec := EvaluationContext{
		Symbol:   "ADAUSDT",
		Open:     10.0,
		Close:    10.5,
		Snapshot: jumpSnapshot(),
		State:    bullishState(),
	}

	c := r.maCandlestickJump(context.Background(), ec)
	if c == nil {
		t.Fatal("expected jump candidate")
	}
	if c.Strategy != models.StrategyLong {
		t.Fatalf("btc up with strong correlation must be long, got %q", c.Strategy)
	}
	if c.Price != 10.5 || c.SD != 0.5 || c.LowestPrice != 7.5 {
		t.Fatalf("candidate must carry snapshot metrics, got %+v", c)
	}
	if len(n.msgs) != 1 {
		t.Fatalf("expected one alert message, got %d", len(n.msgs))
	}
}

func TestMACandlestickJumpFlatSD(t *testing.T) {
	r, _ := newTestRegistry()
	s := jumpSnapshot()
	s.SD = 0.01
	ec := EvaluationContext{
		Symbol: "ADAUSDT", Open: 10.0, Close: 10.5,
		Snapshot: s, State: bullishState(),
	}
	if c := r.maCandlestickJump(context.Background(), ec); c != nil {
		t.Fatalf("flat pair must not fire, got %+v", c)
	}
}

func TestMACandlestickJumpMiddleCorrelation(t *testing.T) {
	// условие по свечам выполнено, но корреляция в серой зоне:
	// направление не выводится, кандидата нет
	r, n := newTestRegistry()
	s := jumpSnapshot()
	s.BTCCorrelation = 0.3
	ec := EvaluationContext{
		Symbol: "ADAUSDT", Open: 10.0, Close: 10.5,
		Snapshot: s, State: bullishState(),
	}
	if c := r.maCandlestickJump(context.Background(), ec); c != nil {
		t.Fatalf("middle correlation must yield no candidate, got %+v", c)
	}
	if len(n.msgs) != 0 {
		t.Fatalf("no candidate means no alert, got %d msgs", len(n.msgs))
	}
}

func TestMACandlestickDropFires(t *testing.T) {
	r, _ := newTestRegistry()
	s := &models.MarketSnapshot{
		Closes:         []float64{11.0, 9.0},
		MA7:            []float64{10.5, 10.0},
		MA25:           []float64{10.8, 10.6},
		MA100:          []float64{11.5, 11.2},
		SD:             0.5,
		LowestPrice:    8.0,
		BTCCorrelation: 0.9,
	}
	st := bullishState()
	st.BTCChangePct = -2.0
	ec := EvaluationContext{
		Symbol: "ADAUSDT", Open: 9.5, Close: 9.0,
		Snapshot: s, State: st,
	}

	c := r.maCandlestickDrop(context.Background(), ec)
	if c == nil {
		t.Fatal("expected drop candidate")
	}
	if c.Strategy != models.StrategyMarginShort {
		t.Fatalf("btc down with strong correlation must be margin_short, got %q", c.Strategy)
	}
}

func TestMACandlestickDropSmallCandle(t *testing.T) {
	// падение есть, но свеча меньше 2% тела
	r, _ := newTestRegistry()
	s := &models.MarketSnapshot{
		MA7:            []float64{10.5, 10.0},
		MA25:           []float64{10.8, 10.6},
		MA100:          []float64{11.5, 11.2},
		SD:             0.5,
		BTCCorrelation: 0.9,
	}
	ec := EvaluationContext{
		Symbol: "ADAUSDT", Open: 9.05, Close: 9.0,
		Snapshot: s, State: bullishState(),
	}
	if c := r.maCandlestickDrop(context.Background(), ec); c != nil {
		t.Fatalf("small candle must not fire, got %+v", c)
	}
}

func TestFastAndSlowMACD(t *testing.T) {
	r, _ := newTestRegistry()
	ec := EvaluationContext{
		Symbol: "XRPUSDT", Open: 1.0, Close: 1.01,
		Snapshot: &models.MarketSnapshot{
			MACD:       []float64{-0.1, 0.3},
			MACDSignal: []float64{0.0, 0.1},
			MA7:        []float64{1.02},
			MA25:       []float64{0.99},
		},
		State: models.MarketState{},
	}

	c := r.fastAndSlowMACD(context.Background(), ec)
	if c == nil {
		t.Fatal("expected macd candidate")
	}
	if c.Strategy != models.StrategyLong {
		t.Fatalf("macd crossover is always long, got %q", c.Strategy)
	}

	// сигнальная линия выше: нет кандидата
	ec.Snapshot.MACDSignal = []float64{0.0, 0.5}
	if c := r.fastAndSlowMACD(context.Background(), ec); c != nil {
		t.Fatalf("macd below signal must not fire, got %+v", c)
	}
}

func TestBuyLowSellHighGated(t *testing.T) {
	r, _ := newTestRegistry()
	ec := EvaluationContext{
		Symbol: "XRPUSDT", Open: 1.0, Close: 1.01,
		Snapshot: &models.MarketSnapshot{
			RSI:  []float64{40, 30},
			MA25: []float64{0.99},
		},
		State: bullishState(),
	}

	if c := r.buyLowSellHigh(context.Background(), ec); c == nil {
		t.Fatal("oversold above ma25 on bullish reversal must fire")
	}

	// без разворота рынка алгоритм молчит
	ec.State.Reversal = models.ReversalNone
	if c := r.buyLowSellHigh(context.Background(), ec); c != nil {
		t.Fatalf("no reversal must gate the algorithm, got %+v", c)
	}
}

func TestRallyOrPullback(t *testing.T) {
	r, _ := newTestRegistry()
	base := EvaluationContext{
		Symbol:   "SOLUSDT",
		Snapshot: &models.MarketSnapshot{SD: 0.2, LowestPrice: 90},
		State:    bullishState(),
	}

	// pullback: день +10%, цена на 6% ниже хая
	ec := base
	ec.Close = 103.4
	ec.Day = models.Day24{Open: 100, High: 110, Low: 99}
	c := r.rallyOrPullback(context.Background(), ec)
	if c == nil {
		t.Fatal("expected pullback candidate")
	}
	if c.Strategy != models.StrategyMarginShort {
		t.Fatalf("pullback trades margin_short, got %q", c.Strategy)
	}

	// rally: алерт есть, кандидата нет
	n := &fakeNotifier{}
	r = NewRegistry(&config.Config{}, n)
	ec = base
	ec.Close = 106
	ec.Day = models.Day24{Open: 100, High: 106, Low: 100}
	if c := r.rallyOrPullback(context.Background(), ec); c != nil {
		t.Fatalf("rally is alert-only, got %+v", c)
	}
	if len(n.msgs) != 1 {
		t.Fatalf("rally must still alert, got %d msgs", len(n.msgs))
	}
}

func TestPriceChange(t *testing.T) {
	r, _ := newTestRegistry()
	ec := EvaluationContext{
		Symbol: "DOGEUSDT",
		Close:  10.8,
		Snapshot: &models.MarketSnapshot{
			Closes: []float64{10.0, 10.8},
			SD:     0.3,
		},
		State: bullishState(),
	}

	c := r.priceChange(context.Background(), ec)
	if c == nil {
		t.Fatal("7.4% rise must fire")
	}
	if c.Strategy != models.StrategyLong {
		t.Fatalf("gainers dominance means long, got %q", c.Strategy)
	}

	// скачок больше 11% не торгуем
	ec.Close = 11.5
	ec.Snapshot.Closes = []float64{10.0, 11.5}
	if c := r.priceChange(context.Background(), ec); c != nil {
		t.Fatalf("pump above 11%% must not fire, got %+v", c)
	}
}

func TestTopGainersDrop(t *testing.T) {
	r, _ := newTestRegistry()
	st := bullishState()
	st.TopGainers = []string{"PEPEUSDT"}
	ec := EvaluationContext{
		Symbol: "PEPEUSDT", Open: 2.0, Close: 1.9,
		Snapshot: &models.MarketSnapshot{
			SD: 0.1, LowestPrice: 1.5, BTCCorrelation: 0.2,
		},
		State: st,
	}

	c := r.topGainersDrop(context.Background(), ec)
	if c == nil {
		t.Fatal("red candle on a top gainer must fire")
	}
	if c.Strategy != models.StrategyMarginShort {
		t.Fatalf("top gainers drop is margin_short, got %q", c.Strategy)
	}

	// не из топа: молчим
	ec.Symbol = "ADAUSDT"
	if c := r.topGainersDrop(context.Background(), ec); c != nil {
		t.Fatalf("symbol outside top gainers must not fire, got %+v", c)
	}
}

func TestEvaluateSetsAlgorithmNames(t *testing.T) {
	r, _ := newTestRegistry()
	st := bullishState()
	ec := EvaluationContext{
		Symbol: "ADAUSDT", Open: 10.0, Close: 10.5,
		Snapshot: jumpSnapshot(),
		State:    st,
	}

	out := r.Evaluate(context.Background(), ec)
	if len(out) == 0 {
		t.Fatal("expected at least one candidate")
	}
	seen := map[string]bool{}
	for _, c := range out {
		if c.Algorithm == "" {
			t.Fatalf("candidate without algorithm name: %+v", c)
		}
		if seen[c.Algorithm] {
			t.Fatalf("duplicate algorithm %q in one pass", c.Algorithm)
		}
		seen[c.Algorithm] = true
	}
	if !seen["ma_candlestick_jump"] {
		t.Fatalf("jump snapshot must produce ma_candlestick_jump, got %v", out)
	}
}

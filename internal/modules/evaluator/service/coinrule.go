package service

import (
	"context"

	"signal_bot/internal/models"
)

// Правила с coinrule, показавшие лучший перформанс на их бэктестах.

// fastAndSlowMACD: MACD над сигнальной линией и быстрая MA над
// медленной. Классическое подтверждение восходящего тренда.
func (r *Registry) fastAndSlowMACD(ctx context.Context, ec EvaluationContext) *models.TradeCandidate {
	s := ec.Snapshot
	if s == nil {
		return nil
	}
	macd, okM := last(s.MACD)
	sig, okS := last(s.MACDSignal)
	ma7, ok7 := last(s.MA7)
	ma25, ok25 := last(s.MA25)
	if !okM || !okS || !ok7 || !ok25 {
		return nil
	}

	if !(macd > sig && ma7 > ma25) {
		return nil
	}

	r.n.Sendf(`- <strong>fast_and_slow_macd #algorithm</strong> #%s
- Current price: %v
- BTC 24hr change: %v
- Strategy: uptrend
- %s%s
- <a href='%s%s'>Dashboard trade</a>`,
		ec.Symbol, ec.Close, ec.State.BTCChangePct,
		binanceTradeURL, ec.Symbol, dashboardURL, ec.Symbol)

	return &models.TradeCandidate{
		Symbol:      ec.Symbol,
		Strategy:    models.StrategyLong,
		Price:       ec.Close,
		SD:          s.SD,
		LowestPrice: s.LowestPrice,
	}
}

// buyLowSellHigh: RSI в зоне перепроданности при цене выше MA25.
func (r *Registry) buyLowSellHigh(ctx context.Context, ec EvaluationContext) *models.TradeCandidate {
	if !bullishGate(ec.State) {
		return nil
	}
	s := ec.Snapshot
	if s == nil {
		return nil
	}
	rsi, okR := last(s.RSI)
	ma25, ok25 := last(s.MA25)
	if !okR || !ok25 {
		return nil
	}

	if !(rsi < 35 && ec.Close > ma25) {
		return nil
	}

	r.n.Sendf(`- <strong>buy_low_sell_high #algorithm</strong> #%s
- Current price: %v
- RSI: %v
- BTC 24hr change: %v
- Strategy: uptrend
- %s%s
- <a href='%s%s'>Dashboard trade</a>`,
		ec.Symbol, ec.Close, rsi, ec.State.BTCChangePct,
		binanceTradeURL, ec.Symbol, dashboardURL, ec.Symbol)

	return &models.TradeCandidate{
		Symbol:      ec.Symbol,
		Strategy:    models.StrategyLong,
		Price:       ec.Close,
		SD:          s.SD,
		LowestPrice: s.LowestPrice,
	}
}

package service

import (
	"context"
	"math"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

// sdFloor отсекает плоские пары: при sd ниже порога движение не
// покрывает комиссию и трейлинг.
const sdFloor = 0.09

// maCandlestickJump: свеча и цена открытия выше MA7/MA25/MA100, MA7
// растёт. Несколько периодов восходящего движения подряд.
func (r *Registry) maCandlestickJump(ctx context.Context, ec EvaluationContext) *models.TradeCandidate {
	s := ec.Snapshot
	if s == nil {
		return nil
	}
	ma7Prev, ma7, ok := lastTwo(s.MA7)
	if !ok {
		return nil
	}
	ma25, ok25 := last(s.MA25)
	ma100, ok100 := last(s.MA100)
	if !ok25 || !ok100 {
		return nil
	}

	if !(ec.Close > ec.Open &&
		s.SD > sdFloor &&
		ec.Close > ma7 && ec.Open > ma7 &&
		ec.Close > ma25 && ec.Open > ma25 &&
		ma7 > ma7Prev &&
		ec.Close > ma7Prev && ec.Open > ma7Prev &&
		ec.Close > ma100 && ec.Open > ma100) {
		return nil
	}

	strategy, ok := InferStrategy(ec.State.BTCChangePct, s.BTCCorrelation)
	if !ok {
		return nil
	}

	r.n.Sendf(`- Candlestick <strong>#jump algorithm</strong> #%s
- Current price: %v
- %%threshold based on volatility: %v%%
- Percentage volatility: %v
- Percentage volatility x2: %v
- Linear regression: slope %vx + %v, correlation %v, p-value %v, stderr %v
- Pearson correlation with BTC: %v
- Strategy: %s
- BTC 24hr change: %v
- %s%s
- <a href='%s%s'>Dashboard trade</a>`,
		ec.Symbol, ec.Close,
		helper.RoundNumbers(s.Volatility*100, 6),
		s.SD/ec.Close, s.SD*2/ec.Close,
		s.Slope, s.Intercept, s.RValue, s.PValue, s.StdErr,
		s.BTCCorrelation, strategy, ec.State.BTCChangePct,
		binanceTradeURL, ec.Symbol, dashboardURL, ec.Symbol)

	return &models.TradeCandidate{
		Symbol:      ec.Symbol,
		Strategy:    strategy,
		Price:       ec.Close,
		SD:          s.SD,
		LowestPrice: s.LowestPrice,
	}
}

// maCandlestickDrop — зеркальный алгоритм: несколько периодов падения,
// кандидат под margin_short. Маленькие свечи режем: слишком много
// сигналов с околонулевой прибылью.
func (r *Registry) maCandlestickDrop(ctx context.Context, ec EvaluationContext) *models.TradeCandidate {
	s := ec.Snapshot
	if s == nil {
		return nil
	}
	ma7Prev, ma7, ok := lastTwo(s.MA7)
	if !ok {
		return nil
	}
	ma25, ok25 := last(s.MA25)
	ma100, ok100 := last(s.MA100)
	if !ok25 || !ok100 {
		return nil
	}

	if !(ec.Close < ec.Open &&
		s.SD > sdFloor &&
		ec.Close < ma7 && ec.Open < ma7 &&
		ec.Close < ma25 && ec.Open < ma25 &&
		ma7 < ma7Prev &&
		ec.Close < ma7Prev && ec.Open < ma7Prev &&
		ec.Close < ma100 && ec.Open < ma100 &&
		math.Abs(ec.Close-ec.Open)/ec.Close > 0.02) {
		return nil
	}

	strategy, ok := InferStrategy(ec.State.BTCChangePct, s.BTCCorrelation)
	if !ok {
		return nil
	}

	r.n.Sendf(`- Candlestick <strong>#drop algorithm</strong> #%s
- Current price: %v
- Standard deviation: %v, Log volatility (log SD): %v
- Slope: %v
- P-value: %v
- Pearson correlation with BTC: %v
- BTC 24hr change: %v
- Strategy: %s
- %s%s
- <a href='%s%s'>Dashboard trade</a>`,
		ec.Symbol, ec.Close, s.SD, s.Volatility,
		s.Slope, s.PValue, s.BTCCorrelation,
		ec.State.BTCChangePct, strategy,
		binanceTradeURL, ec.Symbol, dashboardURL, ec.Symbol)

	return &models.TradeCandidate{
		Symbol:      ec.Symbol,
		Strategy:    strategy,
		Price:       ec.Close,
		SD:          s.SD,
		LowestPrice: s.LowestPrice,
	}
}

package service

import (
	"context"

	"signal_bot/internal/models"
)

// priceChange ловит резкий скачок между двумя последними закрытиями.
// Выше 11% не торгуем: такие движения обычно листинги и памп-дампы.
func (r *Registry) priceChange(ctx context.Context, ec EvaluationContext) *models.TradeCandidate {
	if !bullishGate(ec.State) {
		return nil
	}
	s := ec.Snapshot
	if s == nil || ec.Close == 0 {
		return nil
	}
	prev, _, ok := lastTwo(s.Closes)
	if !ok {
		return nil
	}

	diff := (ec.Close - prev) / ec.Close

	var firstLine string
	switch {
	case diff >= 0.07 && diff < 0.11:
		firstLine = "<strong>Price increase</strong> over 7%"
	case diff <= -0.07 && diff > -0.11:
		firstLine = "<strong>Price decrease #algorithm</strong> over 7%"
	default:
		return nil
	}

	strategy := models.StrategyLong
	if ec.State.Dominance == models.DominanceLosers {
		strategy = models.StrategyMarginShort
	}

	r.n.Sendf(`- %s #%s
- Current price: %v
- Standard deviation: %v, Log volatility (log SD): %v
- P-value: %v
- Pearson correlation with BTC: %v
- BTC 24hr change: %v
- %s%s
- <a href='%s%s'>Dashboard trade</a>`,
		firstLine, ec.Symbol, ec.Close, s.SD, s.Volatility,
		s.PValue, s.BTCCorrelation, ec.State.BTCChangePct,
		binanceTradeURL, ec.Symbol, dashboardURL, ec.Symbol)

	return &models.TradeCandidate{
		Symbol:      ec.Symbol,
		Strategy:    strategy,
		Price:       ec.Close,
		SD:          s.SD,
		LowestPrice: s.LowestPrice,
	}
}

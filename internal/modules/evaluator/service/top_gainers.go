package service

import (
	"context"
	"slices"

	"signal_bot/internal/models"
)

// topGainersDrop: монета из топа суточных гейнеров падает на красной
// свече при слабой корреляции с BTC. Ожидаем продолжение отката,
// открываем margin_short.
func (r *Registry) topGainersDrop(ctx context.Context, ec EvaluationContext) *models.TradeCandidate {
	s := ec.Snapshot
	if s == nil {
		return nil
	}

	if !(ec.Close < ec.Open &&
		s.BTCCorrelation < 0.5 &&
		slices.Contains(ec.State.TopGainers, ec.Symbol)) {
		return nil
	}

	r.n.Sendf(`- Top gainers' drop <strong>#top_gainers_drop algorithm</strong> #%s
- Current price: %v
- SD %v
- Percentage volatility: %v
- Percentage volatility x2: %v
- Slope: %v
- Pearson correlation with BTC: %v
- %s%s
- <a href='%s%s'>Dashboard trade</a>`,
		ec.Symbol, ec.Close, s.SD,
		s.SD/ec.Close, s.SD*2/ec.Close,
		s.Slope, s.BTCCorrelation,
		binanceTradeURL, ec.Symbol, dashboardURL, ec.Symbol)

	return &models.TradeCandidate{
		Symbol:      ec.Symbol,
		Strategy:    models.StrategyMarginShort,
		Price:       ec.Close,
		SD:          s.SD,
		LowestPrice: s.LowestPrice,
	}
}

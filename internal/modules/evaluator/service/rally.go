package service

import (
	"context"

	"signal_bot/internal/models"
)

// rallyOrPullback сравнивает суточный диапазон с внутричасовым движением.
// Rally: день стоял, цена резко пошла от лоу. Pullback: день вырос,
// цена откатывается от хая. Торгуем только pullback (margin_short),
// rally остаётся алертом без кандидата.
func (r *Registry) rallyOrPullback(ctx context.Context, ec EvaluationContext) *models.TradeCandidate {
	if !bullishGate(ec.State) {
		return nil
	}
	s := ec.Snapshot
	if s == nil || ec.Day.Open == 0 || ec.Day.Low == 0 || ec.Day.High == 0 {
		return nil
	}

	dayDiff := (ec.Day.Low - ec.Day.Open) / ec.Day.Open
	minuteDiff := (ec.Close - ec.Day.Low) / ec.Day.Low

	dayDiffPB := (ec.Day.High - ec.Day.Open) / ec.Day.Open
	minuteDiffPB := (ec.Close - ec.Day.High) / ec.Day.High

	var algoType string
	switch {
	case dayDiff <= 0.08 && minuteDiff >= 0.05:
		algoType = "Rally"
	case dayDiffPB >= 0.08 && minuteDiffPB <= 0.05:
		algoType = "Pullback"
	default:
		return nil
	}

	r.n.Sendf(`- <strong>%s #algorithm</strong> #%s
- Current price: %v
- Percentage volatility: %v
- Percentage volatility x2: %v
- P-value: %v
- Pearson correlation: %v
- %s%s
- <a href='%s%s'>Dashboard trade</a>`,
		algoType, ec.Symbol, ec.Close,
		s.SD/ec.Close, s.SD*2/ec.Close,
		s.PValue, s.RValue,
		binanceTradeURL, ec.Symbol, dashboardURL, ec.Symbol)

	if algoType != "Pullback" {
		return nil
	}

	return &models.TradeCandidate{
		Symbol:      ec.Symbol,
		Strategy:    models.StrategyMarginShort,
		Price:       ec.Close,
		SD:          s.SD,
		LowestPrice: s.LowestPrice,
	}
}

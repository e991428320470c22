package service

import "signal_bot/internal/models"

// InferStrategy выводит направление бота из суточного движения BTC и
// корреляции монеты с BTC. Сильная корреляция: монета идёт за BTC.
// Слабая: исторически монета ходит против рынка, берём обратное
// направление. Середина (0.1..0.6) не даёт уверенности, сигнала нет.
func InferStrategy(btcChangePct, correlation float64) (models.Strategy, bool) {
	switch {
	case btcChangePct > 0 && correlation > 0.6:
		return models.StrategyLong, true
	case btcChangePct < 0 && correlation > 0.6:
		return models.StrategyMarginShort, true
	case btcChangePct > 0 && correlation < 0.1:
		return models.StrategyMarginShort, true
	case btcChangePct < 0 && correlation < 0.1:
		return models.StrategyLong, true
	}
	return "", false
}

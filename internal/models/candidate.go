package models

type Strategy string

const (
	StrategyLong        Strategy = "long"
	StrategyMarginShort Strategy = "margin_short"
)

type TradingMode string

const (
	ModeLive  TradingMode = "live"
	ModePaper TradingMode = "paper"
)

// BollingerSpread — границы спреда из волатильности, эвалюатор может
// отдать их чтобы переопределить TP/SL у бота.
type BollingerSpread struct {
	Band1 float64
	Band2 float64
}

// TradeCandidate — результат сработавшего эвалюатора.
type TradeCandidate struct {
	Symbol    string
	Algorithm string
	Strategy  Strategy
	Price     float64 // референсная цена на момент сигнала

	SD          float64
	LowestPrice float64
	Spread      *BollingerSpread // опционально
}

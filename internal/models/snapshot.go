package models

// MarketSnapshot — срез данных по символу на момент оценки.
// Собирается заново под каждое событие, никуда не сохраняется.
type MarketSnapshot struct {
	Symbol string

	Open  float64
	Close float64

	// история закрытий, последний элемент — самый свежий
	Closes []float64
	Dates  []float64 // unix ms, ось X для регрессии

	MA7   []float64
	MA25  []float64
	MA100 []float64

	MACD       []float64
	MACDSignal []float64
	RSI        []float64

	// производные статистики
	Volatility  float64 // sd лог-доходностей, %
	SD          float64 // sd цен закрытия
	LowestPrice float64

	Slope     float64
	Intercept float64
	RValue    float64
	PValue    float64
	StdErr    float64

	// корреляция доходностей символа с референсным активом (BTC)
	BTCCorrelation float64
}

package service

// Типы ответов bot-management API. Конверт общий (см. client.go),
// тут только полезная нагрузка.

type candlestickTrace struct {
	X     []float64 `json:"x"`
	Close []string  `json:"close"`
	Y     []float64 `json:"y"`
}

type candlestickResponse struct {
	Trace      []candlestickTrace `json:"trace"`
	MACD       []float64          `json:"macd"`
	MACDSignal []float64          `json:"macd_signal"`
	RSI        []float64          `json:"rsi"`

	BTCCorrelation struct {
		ClosePrice float64 `json:"close_price"`
	} `json:"btc_correlation"`
}

type AssetBalance struct {
	Asset string  `json:"asset"`
	Free  float64 `json:"free"`
}

type ticker24Response struct {
	PriceChangePercent string `json:"priceChangePercent"`
	OpenPrice          string `json:"openPrice"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	LastPrice          string `json:"lastPrice"`
}

type tickerPriceResponse struct {
	Price string `json:"price"`
}

type botRecord struct {
	ID   string `json:"id"`
	Pair string `json:"pair"`
}

type createBotResponse struct {
	BotID string `json:"botId"`
}

type autotradeSettingsResponse struct {
	Autotrade           int     `json:"autotrade"`
	BaseOrderSize       float64 `json:"base_order_size"`
	BalanceToUse        string  `json:"balance_to_use"`
	BalanceSizeToUse    float64 `json:"balance_size_to_use"`
	CandlestickInterval string  `json:"candlestick_interval"`
	TakeProfit          float64 `json:"take_profit"`
	StopLoss            float64 `json:"stop_loss"`
	Trailling           bool    `json:"trailling"`
	TraillingDeviation  float64 `json:"trailling_deviation"`
	MaxActiveBots       int     `json:"max_active_autotrade_bots"`
}

type dominationSeries struct {
	GainersCount []int `json:"gainers_count"`
	LosersCount  []int `json:"losers_count"`
}

type gainerEntry struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent string `json:"priceChangePercent"`
}

type exchangeSymbol struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
}

type exchangeInfoResponse struct {
	Symbols []exchangeSymbol `json:"symbols"`
}

package models

// SafetyOrder — один уровень лесенки докупок.
type SafetyOrder struct {
	Name     string  `json:"name"`
	Status   int     `json:"status"`
	BuyPrice float64 `json:"buy_price"`
	Size     float64 `json:"so_size"`
	Asset    string  `json:"so_asset"`
}

// BotConfig — полный набор параметров бота для bot-management API.
// Ключи повторяют контракт бэкенда.
type BotConfig struct {
	Pair                string        `json:"pair"`
	Name                string        `json:"name"`
	Status              string        `json:"status"`
	Mode                string        `json:"mode"`
	Strategy            Strategy      `json:"strategy"`
	BaseOrderSize       string        `json:"base_order_size"`
	BalanceToUse        string        `json:"balance_to_use"`
	BalanceSizeToUse    float64       `json:"balance_size_to_use"`
	CandlestickInterval string        `json:"candlestick_interval"`
	TakeProfit          float64       `json:"take_profit"`
	StopLoss            float64       `json:"stop_loss"`
	Trailling           bool          `json:"trailling"`
	TraillingDeviation  float64       `json:"trailling_deviation"`
	TraillingProfit     float64       `json:"trailling_profit"`
	DynamicTrailling    bool          `json:"dynamic_trailling"`
	CooldownMin         int           `json:"cooldown"`
	MarginShortReversal bool          `json:"margin_short_reversal"`
	SafetyOrders        []SafetyOrder `json:"safety_orders"`
	ShortSellPrice      float64       `json:"short_sell_price"`
	ShortBuyPrice       float64       `json:"short_buy_price"`
}

// SubscribedSymbol — элемент вселенной подписки kline-фида.
type SubscribedSymbol struct {
	Pair        string
	Blacklisted bool
}

// BlacklistEntry — пара, исключённая из автотрейда.
type BlacklistEntry struct {
	Pair   string `json:"pair"`
	Reason string `json:"reason"`
}

// AutotradeSettings — настройки автотрейда для одного режима (live/paper),
// живут в bot-management сервисе.
type AutotradeSettings struct {
	Enabled             bool
	BaseOrderSize       float64
	BalanceToUse        string // quote-актив, обычно USDT
	BalanceSizeToUse    float64
	CandlestickInterval string
	TakeProfit          float64
	StopLoss            float64
	Trailling           bool
	TraillingDeviation  float64
	MaxActiveBots       int
}

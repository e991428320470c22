package models

import "time"

// KlineTick — закрытая свеча из первичного стрима биржи.
type KlineTick struct {
	Symbol   string
	Interval string
	Open     float64
	Close    float64
	Closed   bool
	Start    time.Time
}

type AlertType string

const (
	AlertBaseBreak AlertType = "base-break"
	AlertPanic     AlertType = "panic"
)

// AlertEvent — событие из стороннего алерт-фида (hodloo).
// Ticker приходит в формате "<exchange>:<asset>-<quote>".
type AlertEvent struct {
	Type         AlertType
	Exchange     string
	Asset        string
	Quote        string
	Symbol       string // asset+quote без разделителя
	Price        float64
	Volume24     float64
	BasePrice    float64
	BelowBasePct float64
	Strength     string
}

type Dominance string

const (
	DominanceUnknown Dominance = ""
	DominanceGainers Dominance = "gainers"
	DominanceLosers  Dominance = "losers"
)

type Reversal int

const (
	ReversalNone Reversal = iota
	ReversalPositive
	ReversalNegative
)

// Day24 — суточная статистика символа.
type Day24 struct {
	ChangePct float64
	Open      float64
	High      float64
	Low       float64
}

// MarketState — общее состояние рынка. Пишет его только трекер,
// все остальные читают копию.
type MarketState struct {
	Dominance    Dominance
	Reversal     Reversal
	BTCChangePct float64 // 24h изменение референсного актива, %
	TopGainers   []string
	RefreshedAt  time.Time
}

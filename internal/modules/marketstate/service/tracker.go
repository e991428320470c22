package service

import (
	"context"
	"sync"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

// dominanceThreshold: рынок считается за gainers/losers только когда
// сторона держит больше 70% активов. Всё между — шум, состояние не трогаем.
const dominanceThreshold = 0.7

const topGainersCount = 4

type MarketData interface {
	MarketDominationSeries(ctx context.Context) (gainers, losers []int, err error)
	Ticker24(ctx context.Context, symbol string) (models.Day24, error)
	TopGainers(ctx context.Context, n int) ([]string, error)
}

// Tracker — единственный писатель MarketState. Все остальные модули
// читают копию через Snapshot.
type Tracker struct {
	cfg *config.Config
	api MarketData

	mu          sync.RWMutex
	state       models.MarketState
	nextRefresh time.Time
}

func NewTracker(cfg *config.Config, api MarketData) *Tracker {
	return &Tracker{cfg: cfg, api: api}
}

// Snapshot — копия текущего состояния, безопасная для долгого чтения.
func (t *Tracker) Snapshot() models.MarketState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st := t.state
	st.TopGainers = append([]string(nil), t.state.TopGainers...)
	return st
}

// RefreshIfDue — обновление по кадентности. Запрос доминации сканирует
// весь рынок и стоит дорого, поэтому чаще интервала не ходим.
// При любой сетевой ошибке прошлое состояние остаётся как есть.
func (t *Tracker) RefreshIfDue(ctx context.Context, now time.Time) models.MarketState {
	t.mu.Lock()
	if now.Before(t.nextRefresh) {
		defer t.mu.Unlock()
		st := t.state
		st.TopGainers = append([]string(nil), t.state.TopGainers...)
		return st
	}
	// бронируем слот до сетевых вызовов, чтобы второй вызывающий не
	// устроил параллельный refresh
	t.nextRefresh = now.Truncate(t.cfg.MarketRefreshEvery).Add(t.cfg.MarketRefreshEvery)
	prev := t.state
	t.mu.Unlock()

	gainers, losers, err := t.api.MarketDominationSeries(ctx)
	if err != nil {
		logger.Error("market domination fetch failed, keeping previous state: %v", err)
		return prev
	}

	next := applyDomination(prev, gainers, losers)

	if day, err := t.api.Ticker24(ctx, t.cfg.Exchange.Reference); err != nil {
		logger.Error("reference ticker fetch failed: %v", err)
		next.BTCChangePct = prev.BTCChangePct
	} else {
		next.BTCChangePct = day.ChangePct
	}

	if top, err := t.api.TopGainers(ctx, topGainersCount); err != nil {
		logger.Error("top gainers fetch failed: %v", err)
		next.TopGainers = prev.TopGainers
	} else {
		next.TopGainers = top
	}

	next.RefreshedAt = now

	t.mu.Lock()
	t.state = next
	t.mu.Unlock()

	logger.Info("market state: dominance=%q reversal=%d btc24h=%.2f%%",
		next.Dominance, next.Reversal, next.BTCChangePct)

	st := next
	st.TopGainers = append([]string(nil), next.TopGainers...)
	return st
}

// applyDomination — чистый расчёт доминации и разворота по двум
// последним сэмплам серии (серия идёт от старых к новым).
func applyDomination(prev models.MarketState, gainers, losers []int) models.MarketState {
	next := prev
	next.Reversal = models.ReversalNone

	n := len(gainers)
	if n == 0 || n != len(losers) {
		return next
	}

	g, l := gainers[n-1], losers[n-1]
	total := g + l
	if total == 0 {
		return next
	}

	switch {
	case float64(g)/float64(total) > dominanceThreshold:
		next.Dominance = models.DominanceGainers
	case float64(l)/float64(total) > dominanceThreshold:
		next.Dominance = models.DominanceLosers
	default:
		// порог не взят — доминация остаётся прошлой
		return next
	}

	// разворот: меньшинство прошлого сэмпла стало большинством текущего
	if n >= 2 {
		pg, pl := gainers[n-2], losers[n-2]
		if next.Dominance == models.DominanceGainers && pg < pl {
			next.Reversal = models.ReversalPositive
		}
		if next.Dominance == models.DominanceLosers && pg > pl {
			next.Reversal = models.ReversalNegative
		}
	}
	return next
}

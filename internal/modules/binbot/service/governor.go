package service

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"

	"golang.org/x/time/rate"
)

// Governor — общий лимитер для всех исходящих запросов к бирже и
// bot-management API. Ретраев нет принципиально: упавший вызов — это
// "нет результата", событие просто пропускается.
type Governor struct {
	http *http.Client
	lim  *rate.Limiter

	banPause     time.Duration
	weightPause  time.Duration
	weightLimit  int
	weightHeader string

	mu          sync.Mutex
	pausedUntil time.Time
}

func NewGovernor(cfg *config.Config) *Governor {
	return &Governor{
		http:         &http.Client{Timeout: cfg.GovernorRequestTimeout},
		lim:          rate.NewLimiter(rate.Limit(cfg.GovernorRPS), 1),
		banPause:     cfg.GovernorBanPause,
		weightPause:  cfg.GovernorWeightPause,
		weightLimit:  cfg.GovernorWeightLimit,
		weightHeader: cfg.GovernorWeightHeader,
	}
}

// Do — единственная точка выхода в сеть. Сначала пережидаем активную
// паузу (бан или вес), потом обычный rate limit.
func (g *Governor) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	for {
		until := g.pauseDeadline()
		if until.IsZero() {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Until(until)):
		}
	}

	if err := g.lim.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	g.observe(resp)
	return resp, nil
}

func (g *Governor) pauseDeadline() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	if time.Now().After(g.pausedUntil) {
		return time.Time{}
	}
	return g.pausedUntil
}

func (g *Governor) pause(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	until := time.Now().Add(d)
	if until.After(g.pausedUntil) {
		g.pausedUntil = until
	}
}

// observe смотрит на статус и заголовки ответа.
// 418 — бан за rate limit, тормозим все вызовы.
// Использованный вес выше порога — превентивная пауза, не доводим до бана.
func (g *Governor) observe(resp *http.Response) {
	if resp.StatusCode == http.StatusTeapot {
		logger.Warn("rate limit ban (418), pausing outbound calls for %s", g.banPause)
		g.pause(g.banPause)
		return
	}

	if w := resp.Header.Get(g.weightHeader); w != "" {
		used, err := strconv.Atoi(w)
		if err == nil && used > g.weightLimit {
			logger.Warn("request weight %d over limit %d, pausing for %s", used, g.weightLimit, g.weightPause)
			g.pause(g.weightPause)
		}
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type fakeMarketData struct {
	gainers []int
	losers  []int
	err     error
	calls   int
}

func (f *fakeMarketData) MarketDominationSeries(ctx context.Context) ([]int, []int, error) {
	f.calls++
	return f.gainers, f.losers, f.err
}

func (f *fakeMarketData) Ticker24(ctx context.Context, symbol string) (models.Day24, error) {
	return models.Day24{ChangePct: 5}, nil
}

func (f *fakeMarketData) TopGainers(ctx context.Context, n int) ([]string, error) {
	return []string{"AAAUSDT"}, nil
}

func testCfg() *config.Config {
	cfg := &config.Config{MarketRefreshEvery: time.Hour}
	cfg.Exchange.Reference = "BTCUSDT"
	return cfg
}

func TestDominanceThreshold(t *testing.T) {
	// 71/29 — порог 70% взят
	st := applyDomination(models.MarketState{}, []int{50, 71}, []int{50, 29})
	if st.Dominance != models.DominanceGainers {
		t.Fatalf("71%% gainers must dominate, got %q", st.Dominance)
	}

	// 60/40 — порог не взят, доминация не меняется
	prev := models.MarketState{Dominance: models.DominanceLosers}
	st = applyDomination(prev, []int{50, 60}, []int{50, 40})
	if st.Dominance != models.DominanceLosers {
		t.Fatalf("60%% must keep previous dominance, got %q", st.Dominance)
	}
}

func TestReversalFlip(t *testing.T) {
	// прошлый сэмпл за losers, текущий за gainers -> позитивный разворот
	st := applyDomination(models.MarketState{}, []int{20, 80}, []int{80, 20})
	if st.Reversal != models.ReversalPositive {
		t.Fatalf("expected positive reversal, got %d", st.Reversal)
	}

	st = applyDomination(models.MarketState{}, []int{80, 20}, []int{20, 80})
	if st.Reversal != models.ReversalNegative {
		t.Fatalf("expected negative reversal, got %d", st.Reversal)
	}

	// без смены большинства разворота нет
	st = applyDomination(models.MarketState{}, []int{80, 80}, []int{20, 20})
	if st.Reversal != models.ReversalNone {
		t.Fatalf("expected no reversal, got %d", st.Reversal)
	}
}

func TestRefreshCadence(t *testing.T) {
	api := &fakeMarketData{gainers: []int{71}, losers: []int{29}}
	tr := NewTracker(testCfg(), api)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tr.RefreshIfDue(context.Background(), now)
	// в пределах часа повторный вызов не ходит в сеть
	tr.RefreshIfDue(context.Background(), now.Add(10*time.Minute))
	if api.calls != 1 {
		t.Fatalf("expected 1 fetch within cadence window, got %d", api.calls)
	}

	tr.RefreshIfDue(context.Background(), now.Add(time.Hour+time.Minute))
	if api.calls != 2 {
		t.Fatalf("expected refetch after cadence, got %d calls", api.calls)
	}
}

func TestRefreshKeepsStateOnFailure(t *testing.T) {
	api := &fakeMarketData{gainers: []int{71}, losers: []int{29}}
	tr := NewTracker(testCfg(), api)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st := tr.RefreshIfDue(context.Background(), now)
	if st.Dominance != models.DominanceGainers {
		t.Fatalf("setup: expected gainers, got %q", st.Dominance)
	}

	api.err = errors.New("boom")
	st = tr.RefreshIfDue(context.Background(), now.Add(2*time.Hour))
	if st.Dominance != models.DominanceGainers {
		t.Fatalf("transient failure must keep previous state, got %q", st.Dominance)
	}
	if got := tr.Snapshot().Dominance; got != models.DominanceGainers {
		t.Fatalf("stored state must survive failure, got %q", got)
	}
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func testGovernor(t *testing.T) *Governor {
	t.Helper()
	cfg := &config.Config{
		GovernorRPS:            1000,
		GovernorBanPause:       time.Minute,
		GovernorWeightLimit:    600,
		GovernorWeightPause:    30 * time.Second,
		GovernorWeightHeader:   "x-mbx-used-weight-1m",
		GovernorRequestTimeout: time.Second,
	}
	return NewGovernor(cfg)
}

func doGet(t *testing.T, g *Governor, url string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := g.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
}

func TestGovernorPausesOnBan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	g := testGovernor(t)
	doGet(t, g, srv.URL)

	if g.pauseDeadline().IsZero() {
		t.Fatal("418 must pause outbound calls")
	}
	remaining := time.Until(g.pauseDeadline())
	if remaining <= 0 || remaining > time.Minute {
		t.Fatalf("unexpected pause window: %s", remaining)
	}
}

func TestGovernorPausesOnWeight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-mbx-used-weight-1m", "700")
	}))
	defer srv.Close()

	g := testGovernor(t)
	doGet(t, g, srv.URL)

	if g.pauseDeadline().IsZero() {
		t.Fatal("weight over limit must pause outbound calls")
	}
}

func TestGovernorNoPauseUnderWeight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-mbx-used-weight-1m", "100")
	}))
	defer srv.Close()

	g := testGovernor(t)
	doGet(t, g, srv.URL)

	if !g.pauseDeadline().IsZero() {
		t.Fatal("weight under limit must not pause")
	}
}

func TestGovernorPauseBlocksNextCall(t *testing.T) {
	g := testGovernor(t)
	g.pause(50 * time.Millisecond)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	start := time.Now()
	doGet(t, g, srv.URL)
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("call went through during pause, elapsed=%s", elapsed)
	}
}

func TestGovernorPauseRespectsContext(t *testing.T) {
	g := testGovernor(t)
	g.pause(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:1", nil)
	if _, err := g.Do(ctx, req); err == nil {
		t.Fatal("expected context error while paused")
	}
}

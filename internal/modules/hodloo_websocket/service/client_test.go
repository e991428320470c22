package service

import (
	"testing"

	"signal_bot/internal/models"
)

func TestParseAlertFrameBaseBreak(t *testing.T) {
	msg := []byte(`{"type":"base-break","marketInfo":{"ticker":"Binance:ADA-USDT","price":"0.371","volume24":123456.7},"basePrice":0.40,"belowBasePct":7.2}`)

	ev, ok := parseAlertFrame(msg)
	if !ok {
		t.Fatal("expected valid base-break frame")
	}
	if ev.Type != models.AlertBaseBreak {
		t.Fatalf("type mismatch: %q", ev.Type)
	}
	if ev.Exchange != "Binance" || ev.Asset != "ADA" || ev.Quote != "USDT" {
		t.Fatalf("ticker parse mismatch: %+v", ev)
	}
	if ev.Symbol != "ADAUSDT" {
		t.Fatalf("symbol must drop the separator, got %q", ev.Symbol)
	}
	if ev.Price != 0.371 || ev.BasePrice != 0.40 || ev.BelowBasePct != 7.2 {
		t.Fatalf("numeric fields mismatch: %+v", ev)
	}
}

func TestParseAlertFramePanic(t *testing.T) {
	msg := []byte(`{"type":"panic","marketInfo":{"ticker":"Binance:SOL-BTC","price":0.0021,"volume24":"98765"},"strength":"high"}`)

	ev, ok := parseAlertFrame(msg)
	if !ok {
		t.Fatal("expected valid panic frame")
	}
	if ev.Type != models.AlertPanic || ev.Strength != "high" {
		t.Fatalf("frame mismatch: %+v", ev)
	}
	if ev.Quote != "BTC" {
		t.Fatalf("non-USDT quote must survive parsing, got %q", ev.Quote)
	}
}

func TestParseAlertFrameIgnoresUnknownType(t *testing.T) {
	cases := []string{
		`{"type":"heartbeat"}`,
		`{"type":"base-break","marketInfo":{"ticker":"garbage"}}`,
		`not json`,
	}
	for _, msg := range cases {
		if _, ok := parseAlertFrame([]byte(msg)); ok {
			t.Fatalf("frame must be ignored: %s", msg)
		}
	}
}

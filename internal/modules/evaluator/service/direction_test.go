package service

import (
	"testing"

	"signal_bot/internal/models"
)

func TestInferStrategy(t *testing.T) {
	cases := []struct {
		name      string
		btcChange float64
		corr      float64
		want      models.Strategy
		ok        bool
	}{
		{"strong corr, btc up", 2.5, 0.8, models.StrategyLong, true},
		{"strong corr, btc down", -1.2, 0.75, models.StrategyMarginShort, true},
		{"weak corr, btc up", 2.5, 0.05, models.StrategyMarginShort, true},
		{"weak corr, btc down", -3.0, 0.02, models.StrategyLong, true},
		{"middle corr gives nothing", 2.5, 0.4, "", false},
		{"boundary 0.6 gives nothing", 1.0, 0.6, "", false},
		{"boundary 0.1 gives nothing", 1.0, 0.1, "", false},
		{"flat btc gives nothing", 0, 0.9, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := InferStrategy(tc.btcChange, tc.corr)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("InferStrategy(%v, %v) = (%q, %v), want (%q, %v)",
					tc.btcChange, tc.corr, got, ok, tc.want, tc.ok)
			}
		})
	}
}

package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

// GetSnapshot — свечи с индикаторами от бэкенда + локальные статистики.
// Trace: [0] свечи (x, close), [1] MA100, [2] MA25, [3] MA7 — контракт
// графиков дашборда.
func (c *Client) GetSnapshot(ctx context.Context, symbol, interval string) (*models.MarketSnapshot, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("stats", "true")

	var raw candlestickResponse
	if err := c.get(ctx, "/charts/candlestick", params, &raw); err != nil {
		return nil, fmt.Errorf("GetSnapshot %s: %w", symbol, err)
	}
	if len(raw.Trace) < 4 {
		return nil, fmt.Errorf("GetSnapshot %s: trace is incomplete, got %d series", symbol, len(raw.Trace))
	}

	closes := make([]float64, 0, len(raw.Trace[0].Close))
	for _, s := range raw.Trace[0].Close {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		closes = append(closes, v)
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("GetSnapshot %s: no close prices", symbol)
	}

	dates := raw.Trace[0].X
	if len(dates) > len(closes) {
		dates = dates[len(dates)-len(closes):]
	}

	slope, intercept, rvalue, pvalue, stderr := helper.Linregress(dates, closes)

	snap := &models.MarketSnapshot{
		Symbol: symbol,
		Close:  closes[len(closes)-1],

		Closes: closes,
		Dates:  dates,

		MA100: raw.Trace[1].Y,
		MA25:  raw.Trace[2].Y,
		MA7:   raw.Trace[3].Y,

		MACD:       raw.MACD,
		MACDSignal: raw.MACDSignal,
		RSI:        raw.RSI,

		Volatility:  helper.LogVolatility(closes),
		SD:          helper.RoundNumbers(helper.StdDev(closes), 4),
		LowestPrice: helper.Min(closes),

		Slope:     slope,
		Intercept: intercept,
		RValue:    rvalue,
		PValue:    pvalue,
		StdErr:    stderr,

		BTCCorrelation: raw.BTCCorrelation.ClosePrice,
	}
	return snap, nil
}

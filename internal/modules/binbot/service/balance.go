package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"signal_bot/internal/models"
)

// GetBalance — свободные остатки по всем активам.
func (c *Client) GetBalance(ctx context.Context) ([]AssetBalance, error) {
	var out []AssetBalance
	if err := c.get(ctx, "/account/balance", nil, &out); err != nil {
		return nil, fmt.Errorf("GetBalance: %w", err)
	}
	return out, nil
}

// BalanceEstimate — суммарная оценка счёта в quote-активе.
func (c *Client) BalanceEstimate(ctx context.Context) (float64, error) {
	var out struct {
		Total float64 `json:"total_fiat"`
	}
	if err := c.get(ctx, "/account/balance/estimate", nil, &out); err != nil {
		return 0, fmt.Errorf("BalanceEstimate: %w", err)
	}
	return out.Total, nil
}

// TickerPrice — текущая цена пары, для конвертации не-основного quote.
// Неизвестная пара -> ErrInvalidSymbol.
func (c *Client) TickerPrice(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var out tickerPriceResponse
	if err := c.get(ctx, "/charts/ticker", params, &out); err != nil {
		return 0, fmt.Errorf("TickerPrice %s: %w", symbol, err)
	}
	p, err := strconv.ParseFloat(out.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("TickerPrice %s parse %q: %w", symbol, out.Price, err)
	}
	return p, nil
}

// Ticker24 — суточная статистика символа.
func (c *Client) Ticker24(ctx context.Context, symbol string) (models.Day24, error) {
	params := url.Values{}
	if symbol != "" {
		params.Set("symbol", symbol)
	}

	var raw ticker24Response
	if err := c.get(ctx, "/charts/ticker-24", params, &raw); err != nil {
		return models.Day24{}, fmt.Errorf("Ticker24 %s: %w", symbol, err)
	}

	change, _ := strconv.ParseFloat(raw.PriceChangePercent, 64)
	open, _ := strconv.ParseFloat(raw.OpenPrice, 64)
	high, _ := strconv.ParseFloat(raw.HighPrice, 64)
	low, _ := strconv.ParseFloat(raw.LowPrice, 64)
	return models.Day24{ChangePct: change, Open: open, High: high, Low: low}, nil
}

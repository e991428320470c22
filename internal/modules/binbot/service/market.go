package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// MarketDominationSeries — счётчики растущих/падающих активов по
// quote-рынку. Дорогой запрос, дёргается только трекером по кадентности.
func (c *Client) MarketDominationSeries(ctx context.Context) (gainers, losers []int, err error) {
	var out dominationSeries
	if err := c.get(ctx, "/charts/market-domination", nil, &out); err != nil {
		return nil, nil, fmt.Errorf("MarketDominationSeries: %w", err)
	}
	return out.GainersCount, out.LosersCount, nil
}

// TopGainers — первые n символов из суточного топа роста.
func (c *Client) TopGainers(ctx context.Context, n int) ([]string, error) {
	var raw []gainerEntry
	if err := c.get(ctx, "/charts/gainers-losers", nil, &raw); err != nil {
		return nil, fmt.Errorf("TopGainers: %w", err)
	}

	out := make([]string, 0, n)
	for _, e := range raw {
		change, err := strconv.ParseFloat(e.PriceChangePercent, 64)
		if err != nil || change <= 0 {
			continue
		}
		out = append(out, e.Symbol)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// TradableSymbols — торгуемые пары биржи с нужным quote-активом.
func (c *Client) TradableSymbols(ctx context.Context, quote string) ([]string, error) {
	var out exchangeInfoResponse
	if err := c.get(ctx, "/charts/exchange-info", nil, &out); err != nil {
		return nil, fmt.Errorf("TradableSymbols: %w", err)
	}

	symbols := make([]string, 0, len(out.Symbols))
	for _, s := range out.Symbols {
		if s.Status == "TRADING" && strings.HasSuffix(s.Symbol, quote) {
			symbols = append(symbols, s.Symbol)
		}
	}
	return symbols, nil
}

// ExistsOnExchange — проверка, что актив вообще торгуется на бирже.
// Алерт-фид шлёт тикеры с чужих рынков, им нельзя верить на слово.
func (c *Client) ExistsOnExchange(ctx context.Context, asset string) (bool, error) {
	u := c.cfg.Exchange.ExistURL + "?fsym=" + url.QueryEscape(asset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("ExistsOnExchange %s: %w", asset, err)
	}

	resp, err := c.gov.Do(ctx, req)
	if err != nil {
		return false, fmt.Errorf("ExistsOnExchange %s: %w", asset, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode/100 == 2, nil
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"signal_bot/internal/models"
)

// modePath: live-боты и бумажные живут на разных ручках.
func modePath(mode models.TradingMode) string {
	if mode == models.ModePaper {
		return "/paper-trading"
	}
	return "/bots"
}

// ActiveBots — пары, по которым уже крутится бот в данном режиме.
func (c *Client) ActiveBots(ctx context.Context, mode models.TradingMode) ([]string, error) {
	params := url.Values{}
	params.Set("status", "active")
	params.Set("no_cooldown", "true")

	var bots []botRecord
	if err := c.get(ctx, modePath(mode), params, &bots); err != nil {
		return nil, fmt.Errorf("ActiveBots %s: %w", mode, err)
	}
	pairs := make([]string, 0, len(bots))
	for _, b := range bots {
		pairs = append(pairs, b.Pair)
	}
	return pairs, nil
}

// CreateBot — создаёт неактивную запись бота, возвращает id.
func (c *Client) CreateBot(ctx context.Context, mode models.TradingMode, bot models.BotConfig) (string, error) {
	var out createBotResponse
	if err := c.send(ctx, http.MethodPost, modePath(mode), bot, &out); err != nil {
		return "", fmt.Errorf("CreateBot %s: %w", bot.Pair, err)
	}
	if out.BotID == "" {
		return "", fmt.Errorf("CreateBot %s: empty botId", bot.Pair)
	}
	return out.BotID, nil
}

// ActivateBot — запускает сделку. Текст ошибки важен: он уходит
// в блэклист и в event log при откате.
func (c *Client) ActivateBot(ctx context.Context, mode models.TradingMode, botID string) error {
	if err := c.get(ctx, modePath(mode)+"/activate/"+botID, nil, nil); err != nil {
		return fmt.Errorf("ActivateBot %s: %w", botID, err)
	}
	return nil
}

// DeleteBot — удаляет неактивную запись, чтобы не копить мусор в UI.
func (c *Client) DeleteBot(ctx context.Context, mode models.TradingMode, botID string) error {
	params := url.Values{}
	params.Set("id", botID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+modePath(mode)+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("DeleteBot %s: %w", botID, err)
	}
	if err := c.do(req, modePath(mode), nil); err != nil {
		return fmt.Errorf("DeleteBot %s: %w", botID, err)
	}
	return nil
}

// SubmitEventLog — записать сообщение в журнал событий бота.
func (c *Client) SubmitEventLog(ctx context.Context, botID, message string) error {
	if err := c.send(ctx, http.MethodPost, "/bots/submit-errors/"+botID, message, nil); err != nil {
		return fmt.Errorf("SubmitEventLog %s: %w", botID, err)
	}
	return nil
}

// GetAutotradeSettings — настройки автотрейда режима из контроллера.
func (c *Client) GetAutotradeSettings(ctx context.Context, mode models.TradingMode) (models.AutotradeSettings, error) {
	path := "/autotrade-settings"
	if mode == models.ModePaper {
		path += "/paper"
	}

	var raw autotradeSettingsResponse
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return models.AutotradeSettings{}, fmt.Errorf("GetAutotradeSettings %s: %w", mode, err)
	}
	return models.AutotradeSettings{
		Enabled:             raw.Autotrade == 1,
		BaseOrderSize:       raw.BaseOrderSize,
		BalanceToUse:        raw.BalanceToUse,
		BalanceSizeToUse:    raw.BalanceSizeToUse,
		CandlestickInterval: raw.CandlestickInterval,
		TakeProfit:          raw.TakeProfit,
		StopLoss:            raw.StopLoss,
		Trailling:           raw.Trailling,
		TraillingDeviation:  raw.TraillingDeviation,
		MaxActiveBots:       raw.MaxActiveBots,
	}, nil
}

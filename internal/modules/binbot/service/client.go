package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"signal_bot/internal/modules/config"

	"github.com/bytedance/sonic"
)

// ErrInvalidSymbol — биржа не знает такую пару. Пара навсегда
// выбывает из автотрейда, это не transient-ошибка.
var ErrInvalidSymbol = errors.New("invalid symbol")

const invalidSymbolCode = -1121

// Client — клиент bot-management API (binbot) поверх Governor.
type Client struct {
	cfg *config.Config
	gov *Governor

	baseURL string
}

func NewClient(cfg *config.Config, gov *Governor) *Client {
	return &Client{
		cfg:     cfg,
		gov:     gov,
		baseURL: cfg.Binbot.BaseURL,
	}
}

// envelope — стандартный конверт ответов бэкенда.
type envelope struct {
	Error   int             `json:"error"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s marshal: %w", method, path, err)
		}
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.gov.Do(req.Context(), req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s http %d: %s", path, resp.StatusCode, string(data))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%s decode: %w; body=%s", path, err, string(data))
	}
	if env.Code == invalidSymbolCode {
		return fmt.Errorf("%s: %w", path, ErrInvalidSymbol)
	}
	if env.Error == 1 {
		return fmt.Errorf("%s api error: %s", path, env.Message)
	}

	if out == nil {
		return nil
	}
	// часть ручек заворачивает полезную нагрузку в data, часть отдаёт плоско
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s decode data: %w", path, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s decode body: %w", path, err)
	}
	return nil
}

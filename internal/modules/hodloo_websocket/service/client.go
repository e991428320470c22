package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

type Client struct {
	cfg      *config.Config
	wsDialer *websocket.Dialer
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:      cfg,
		wsDialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// StreamAlerts — сторонний QFL-фид (hodloo). Кадры с незнакомым
// типом молча пропускаем, реконнект внутри.
func (c *Client) StreamAlerts(ctx context.Context) <-chan models.AlertEvent {
	ch := make(chan models.AlertEvent)

	go func() {
		defer close(ch)

		for {
			logger.Info("[WS] alert feed connect %s", c.cfg.Exchange.AlertWSURL)
			conn, _, err := c.wsDialer.DialContext(ctx, c.cfg.Exchange.AlertWSURL, nil)
			if err != nil {
				logger.Error("[WS] alert dial error: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}

			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					logger.Error("[WS] alert read error: %v", err)
					_ = conn.Close()
					break
				}

				ev, ok := parseAlertFrame(msg)
				if !ok {
					continue
				}

				select {
				case ch <- ev:
				case <-ctx.Done():
					_ = conn.Close()
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(time.Second)
			}
		}
	}()

	return ch
}

// looseFloat терпит и число, и число в кавычках: фид непостоянен
// в типах полей.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	if len(b) >= 2 && b[0] == '"' {
		b = b[1 : len(b)-1]
	}
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = looseFloat(v)
	return nil
}

func parseAlertFrame(msg []byte) (models.AlertEvent, bool) {
	var frame struct {
		Type       string `json:"type"`
		MarketInfo struct {
			Ticker   string     `json:"ticker"`
			Price    looseFloat `json:"price"`
			Volume24 looseFloat `json:"volume24"`
		} `json:"marketInfo"`
		BasePrice    looseFloat `json:"basePrice"`
		BelowBasePct looseFloat `json:"belowBasePct"`
		Strength     string     `json:"strength"`
	}
	if err := json.Unmarshal(msg, &frame); err != nil {
		return models.AlertEvent{}, false
	}

	t := models.AlertType(frame.Type)
	if t != models.AlertBaseBreak && t != models.AlertPanic {
		return models.AlertEvent{}, false
	}

	exchange, asset, quote, ok := helper.SplitTicker(frame.MarketInfo.Ticker)
	if !ok {
		return models.AlertEvent{}, false
	}

	return models.AlertEvent{
		Type:         t,
		Exchange:     exchange,
		Asset:        asset,
		Quote:        quote,
		Symbol:       asset + quote,
		Price:        float64(frame.MarketInfo.Price),
		Volume24:     float64(frame.MarketInfo.Volume24),
		BasePrice:    float64(frame.BasePrice),
		BelowBasePct: float64(frame.BelowBasePct),
		Strength:     frame.Strength,
	}, true
}

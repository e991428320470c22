package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

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

// StreamKlines — один WebSocket на весь список пар. Возвращает поток
// KlineTick, реконнект внутри с паузой в секунду, канал закрывается
// только по ctx.
func (c *Client) StreamKlines(ctx context.Context, symbols []string) <-chan models.KlineTick {
	ch := make(chan models.KlineTick)

	go func() {
		defer close(ch)

		if len(symbols) == 0 {
			return
		}

		interval := c.cfg.Exchange.Interval
		params := make([]string, 0, len(symbols))
		for _, s := range symbols {
			params = append(params, strings.ToLower(s)+"@kline_"+interval)
		}

		for {
			logger.Info("[WS] kline connect, %d symbols interval %s", len(symbols), interval)
			conn, _, err := c.wsDialer.DialContext(ctx, c.cfg.Exchange.WSURL, nil)
			if err != nil {
				logger.Error("[WS] kline dial error: %v", err)
				if !sleepOrDone(ctx, time.Second) {
					return
				}
				continue
			}

			sub := map[string]any{
				"method": "SUBSCRIBE",
				"params": params,
				"id":     1,
			}
			if err := conn.WriteJSON(sub); err != nil {
				logger.Error("[WS] kline subscribe error: %v", err)
				_ = conn.Close()
				continue
			}

			// keepalive, иначе сервер рвёт тихие соединения
			stopPing := make(chan struct{})
			go func() {
				defer close(stopPing)
				t := time.NewTicker(3 * time.Minute)
				defer t.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-stopPing:
						return
					case <-t.C:
						_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
					}
				}
			}()

			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					logger.Error("[WS] kline read error: %v", err)
					_ = conn.Close()
					break
				}

				tick, ok := parseKlineFrame(msg)
				if !ok {
					continue
				}

				select {
				case ch <- tick:
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

// parseKlineFrame — кадр kline-стрима биржи:
// {"e":"kline","k":{"s":...,"i":...,"o":...,"c":...,"x":...,"t":...}}.
func parseKlineFrame(msg []byte) (models.KlineTick, bool) {
	var frame struct {
		Event string `json:"e"`
		Kline struct {
			Symbol   string `json:"s"`
			Interval string `json:"i"`
			Open     string `json:"o"`
			Close    string `json:"c"`
			Closed   bool   `json:"x"`
			StartMs  int64  `json:"t"`
		} `json:"k"`
	}
	if err := json.Unmarshal(msg, &frame); err != nil {
		return models.KlineTick{}, false
	}
	if frame.Event != "kline" || frame.Kline.Symbol == "" {
		return models.KlineTick{}, false
	}

	open, err1 := strconv.ParseFloat(frame.Kline.Open, 64)
	closep, err2 := strconv.ParseFloat(frame.Kline.Close, 64)
	if err1 != nil || err2 != nil || closep <= 0 {
		return models.KlineTick{}, false
	}

	return models.KlineTick{
		Symbol:   frame.Kline.Symbol,
		Interval: frame.Kline.Interval,
		Open:     open,
		Close:    closep,
		Closed:   frame.Kline.Closed,
		Start:    time.UnixMilli(frame.Kline.StartMs),
	}, true
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

package service

import (
	"fmt"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier — пассивный канал алертов. Ошибки отправки глотаем:
// сообщение человеку не критично для пайплайна.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(cfg *config.Config) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("NewTelegram: %w", err)
	}
	return &Telegram{
		bot:    b,
		chatID: cfg.Telegram.ChatID,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	m := tgbot.NewMessage(t.chatID, msg)
	// в сообщениях ссылки на биржу и дашборд
	m.ParseMode = tgbot.ModeHTML
	m.DisableWebPagePreview = true
	if _, err := t.bot.Send(m); err != nil {
		logger.Warn("telegram send failed: %v", err)
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// Stdout — заглушка на случай работы без токена.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("%s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { logger.Info(format, args...) }

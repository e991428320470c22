package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	binbotsvc "signal_bot/internal/modules/binbot/service"
	"signal_bot/pkg/logger"
)

var quoteAssets = []string{"USDT", "BUSD", "BTC", "ETH", "BNB", "GBP", "EUR"}

// quoteOf — quote-актив пары по известным суффиксам.
func quoteOf(pair string) string {
	for _, q := range quoteAssets {
		if strings.HasSuffix(pair, q) && len(pair) > len(q) {
			return q
		}
	}
	return ""
}

// pricePrecision — знаков после запятой в зависимости от масштаба цены.
func pricePrecision(price float64) int {
	switch {
	case price >= 100:
		return 2
	case price >= 1:
		return 4
	case price >= 0.01:
		return 6
	default:
		return 8
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// applySizing подбирает base_order_size под режим и стратегию.
// false без ошибки — штатный скип (нет средств, пара неконвертируема).
func (e *Engine) applySizing(ctx context.Context, bot *models.BotConfig, cand models.TradeCandidate, settings models.AutotradeSettings, mode models.TradingMode) (bool, error) {
	if mode == models.ModePaper {
		if cand.Strategy == models.StrategyMarginShort {
			// бумажный шорт не требует реального баланса
			return true, nil
		}
		return e.setPaperValues(ctx, bot, settings)
	}

	if cand.Strategy == models.StrategyMarginShort {
		return e.checkTransferQty(ctx, bot, cand)
	}

	// live long: баланс занят активными ботами, реальный размер
	// подставит deal-движок при открытии
	bot.BalanceToUse = e.cfg.Exchange.QuoteAsset
	return true, nil
}

// setPaperValues: минимальный ордер биржи по умолчанию, либо баланс
// подходящего актива с учётом balance_size_to_use. GBP-балансы
// конвертируются по живому курсу.
func (e *Engine) setPaperValues(ctx context.Context, bot *models.BotConfig, settings models.AutotradeSettings) (bool, error) {
	bot.BaseOrderSize = formatAmount(e.cfg.MinBaseOrder)

	balances, err := e.api.GetBalance(ctx)
	if err != nil {
		return false, fmt.Errorf("setPaperValues %s: %w", bot.Pair, err)
	}

	decimals := pricePrecision(e.cfg.MinBaseOrder)
	for _, b := range balances {
		if strings.HasSuffix(bot.Pair, b.Asset) {
			if b.Free < e.cfg.MinBaseOrder {
				continue
			}
			qty := b.Free
			if settings.BalanceSizeToUse != 0 {
				if b.Free < settings.BalanceSizeToUse {
					// баланс меньше лимита: предупреждаем и берём весь
					logger.Warn("setPaperValues %s: balance %.8f below balance_size_to_use %.2f, using full balance",
						bot.Pair, b.Free, settings.BalanceSizeToUse)
				} else {
					qty = settings.BalanceSizeToUse
				}
			}
			bot.BaseOrderSize = helper.SupressNotation(qty, decimals)
			return true, nil
		}

		// GBP-путь: достаточно крупного GBP-баланса, конвертируем
		// в quote пары по тикеру. Меньше 40 GBP торговать невыгодно.
		if settings.BalanceToUse == "GBP" && b.Asset == "GBP" && b.Free > 40 {
			quote := quoteOf(bot.Pair)
			if quote == "GBP" {
				bot.BaseOrderSize = helper.SupressNotation(b.Free, decimals)
				return true, nil
			}

			rate, err := e.api.TickerPrice(ctx, quote+"GBP")
			if err != nil {
				if errors.Is(err, binbotsvc.ErrInvalidSymbol) {
					msg := fmt.Sprintf("Cannot trade %s with GBP. Adding to blacklist", bot.Pair)
					if blErr := e.api.AddToBlacklist(ctx, bot.Pair, msg); blErr != nil {
						logger.Warn("setPaperValues %s: blacklist failed: %v", bot.Pair, blErr)
					}
					logger.Info("%s", msg)
					return false, nil
				}
				return false, fmt.Errorf("setPaperValues %s: %w", bot.Pair, err)
			}

			// округление вниз до 7 знаков, чтобы не упереться в not enough funds
			size := math.Floor((b.Free/rate)*1e7) / 1e7
			bot.BaseOrderSize = helper.SupressNotation(size, decimals)
			return true, nil
		}
	}
	return true, nil
}

// checkTransferQty: перед live margin_short проверяем, что счёт
// покрывает перевод с запасом на стоп-лосс.
func (e *Engine) checkTransferQty(ctx context.Context, bot *models.BotConfig, cand models.TradeCandidate) (bool, error) {
	price, err := e.api.TickerPrice(ctx, bot.Pair)
	if err != nil {
		return false, fmt.Errorf("checkTransferQty %s: %w", bot.Pair, err)
	}
	if price <= 0 {
		return false, fmt.Errorf("checkTransferQty %s: bad ticker price %v", bot.Pair, price)
	}

	base, err := strconv.ParseFloat(bot.BaseOrderSize, 64)
	if err != nil {
		return false, fmt.Errorf("checkTransferQty %s: base order %q: %w", bot.Pair, bot.BaseOrderSize, err)
	}

	estimateQty := base / price
	stopLossPrice := price * (1 + bot.StopLoss/100)
	transferQty := stopLossPrice * estimateQty

	estimate, err := e.api.BalanceEstimate(ctx)
	if err != nil {
		return false, fmt.Errorf("checkTransferQty %s: %w", bot.Pair, err)
	}
	if estimate < transferQty {
		logger.Error("checkTransferQty %s: not enough funds to cover losses, estimate %.2f < transfer %.2f",
			bot.Pair, estimate, transferQty)
		return false, nil
	}
	return true, nil
}

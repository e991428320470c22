package service

import (
	"fmt"
	"math"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	binbotsvc "signal_bot/internal/modules/binbot/service"
	"signal_bot/pkg/logger"
)

const ladderDecimals = 6

// applyLadder строит лесенку докупок под long-стратегию: каждый тир
// на deviation% ниже цены предыдущего, размер растёт экспоненциально.
// Последний тир вместо докупки задаёт short_sell/short_buy границы:
// полная продажа на глубоком провале и откуп после отскока.
func (e *Engine) applyLadder(bot *models.BotConfig, cand models.TradeCandidate, balances []binbotsvc.AssetBalance) {
	available := 0.0
	for _, b := range balances {
		if b.Asset == bot.BalanceToUse {
			available = b.Free
			break
		}
	}
	if available == 0 {
		logger.Info("applyLadder %s: no %s for safety orders", bot.Pair, bot.BalanceToUse)
		return
	}

	total := e.cfg.SafetyOrderCount
	dev := e.cfg.SafetyOrderDeviation
	price := cand.Price
	soSize := e.cfg.InitialSafetyOrder

	for i := 0; i < total; i++ {
		count := i + 1
		threshold := float64(count) * (dev / 100)

		if i > 0 {
			price = bot.SafetyOrders[i-1].BuyPrice
		}

		buyPrice := helper.RoundNumbers(price-price*threshold, ladderDecimals)
		soSize = helper.RoundNumbers(math.Pow(soSize, e.cfg.SafetyOrderGrowth), ladderDecimals)

		if count == total {
			shortSell := helper.RoundNumbers(price-price*threshold, ladderDecimals)
			shortBuy := helper.RoundNumbers(shortSell-shortSell*threshold, ladderDecimals)

			// клампим по историческому минимуму: откуп не выше
			// наблюдавшегося дна
			if cand.LowestPrice > 0 {
				sdBuy := helper.RoundNumbers(shortSell-cand.SD*2, ladderDecimals)
				if cand.LowestPrice < sdBuy || cand.SD == 0 {
					shortBuy = cand.LowestPrice
				} else {
					shortBuy = sdBuy
				}
			}

			bot.ShortSellPrice = shortSell
			bot.ShortBuyPrice = shortBuy
			continue
		}

		bot.SafetyOrders = append(bot.SafetyOrders, models.SafetyOrder{
			Name:     fmt.Sprintf("so_%d", count),
			Status:   0,
			BuyPrice: buyPrice,
			Size:     soSize,
			Asset:    bot.BalanceToUse,
		})
	}
}

// applyShortBounds — даунтренд-вариант: цена скорее всего продолжит
// падать, докупки не нужны. Продаём чуть ниже рынка и откупаем после
// суммарного спреда всех тиров.
func (e *Engine) applyShortBounds(bot *models.BotConfig, cand models.TradeCandidate) {
	spread := float64(e.cfg.SafetyOrderCount) * (e.cfg.SafetyOrderDeviation / 100)

	shortSell := helper.RoundNumbers(cand.Price-cand.Price*0.05, ladderDecimals)
	shortBuy := helper.RoundNumbers(shortSell-shortSell*spread, ladderDecimals)

	bot.ShortSellPrice = shortSell
	if cand.LowestPrice > 0 && cand.LowestPrice <= shortBuy {
		bot.ShortBuyPrice = cand.LowestPrice
	} else {
		bot.ShortBuyPrice = shortBuy
	}
}

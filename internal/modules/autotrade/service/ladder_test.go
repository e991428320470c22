package service

import (
	"testing"

	"signal_bot/internal/models"
	binbotsvc "signal_bot/internal/modules/binbot/service"
)

func TestApplyLadderMonotonic(t *testing.T) {
	e := newEngine(&fakeBotAPI{})
	bot := models.BotConfig{Pair: "ADAUSDT", BalanceToUse: "USDT"}
	cand := longCandidate()
	balances := []binbotsvc.AssetBalance{{Asset: "USDT", Free: 500}}

	e.applyLadder(&bot, cand, balances)

	if len(bot.SafetyOrders) != 2 {
		t.Fatalf("expected 2 safety orders before final tier, got %d", len(bot.SafetyOrders))
	}

	prev := cand.Price
	for i, so := range bot.SafetyOrders {
		if so.BuyPrice >= prev {
			t.Fatalf("tier %d buy price %v not below previous %v", i+1, so.BuyPrice, prev)
		}
		prev = so.BuyPrice
	}

	// размер растёт экспоненциально: 10^1.2, затем (10^1.2)^1.2
	if bot.SafetyOrders[1].Size <= bot.SafetyOrders[0].Size {
		t.Fatalf("safety order size must grow: %v then %v",
			bot.SafetyOrders[0].Size, bot.SafetyOrders[1].Size)
	}

	if bot.ShortSellPrice == 0 || bot.ShortBuyPrice == 0 {
		t.Fatal("final tier must set short sell/buy bounds")
	}
	if bot.ShortBuyPrice >= bot.ShortSellPrice {
		t.Fatalf("short buy %v must be below short sell %v", bot.ShortBuyPrice, bot.ShortSellPrice)
	}
}

func TestApplyLadderClampByLowestPrice(t *testing.T) {
	e := newEngine(&fakeBotAPI{})
	bot := models.BotConfig{Pair: "ADAUSDT", BalanceToUse: "USDT"}
	balances := []binbotsvc.AssetBalance{{Asset: "USDT", Free: 500}}

	// дно сильно ниже sd-оффсета: откупаем по дну
	cand := longCandidate()
	cand.LowestPrice = 5
	e.applyLadder(&bot, cand, balances)
	if bot.ShortBuyPrice != 5 {
		t.Fatalf("short buy must clamp to lowest price, got %v", bot.ShortBuyPrice)
	}

	// дно выше sd-оффсета: берём sd-оффсет
	bot = models.BotConfig{Pair: "ADAUSDT", BalanceToUse: "USDT"}
	cand.LowestPrice = 9.9
	cand.SD = 0.5
	e.applyLadder(&bot, cand, balances)
	if bot.ShortBuyPrice == 9.9 {
		t.Fatal("lowest above sd offset must not be used as short buy")
	}
}

func TestApplyLadderNoBalance(t *testing.T) {
	e := newEngine(&fakeBotAPI{})
	bot := models.BotConfig{Pair: "ADAUSDT", BalanceToUse: "USDT"}

	e.applyLadder(&bot, longCandidate(), nil)

	if len(bot.SafetyOrders) != 0 {
		t.Fatalf("no quote balance means no safety orders, got %d", len(bot.SafetyOrders))
	}
}

func TestApplyShortBoundsSpread(t *testing.T) {
	e := newEngine(&fakeBotAPI{})
	bot := models.BotConfig{Pair: "ADAUSDT"}
	cand := longCandidate()
	cand.LowestPrice = 0 // без дна берём расчётный спред

	e.applyShortBounds(&bot, cand)

	if bot.ShortSellPrice != 9.5 {
		t.Fatalf("short sell must be 5%% below price, got %v", bot.ShortSellPrice)
	}
	// спред 3 * 1.2% = 3.6% от short sell
	want := 9.5 - 9.5*0.036
	if diff := bot.ShortBuyPrice - want; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("short buy %v, want around %v", bot.ShortBuyPrice, want)
	}
}

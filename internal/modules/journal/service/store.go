package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"signal_bot/internal/models"
	"signal_bot/pkg/db"
)

// Store пишет журнал сигналов: кандидаты с исходом автотрейда и
// снимок вселенной подписки. Схема в migrations/init.sql.
type Store struct {
	tm db.TxManager
}

func NewStore(tm db.TxManager) *Store {
	return &Store{tm: tm}
}

func (s *Store) RecordCandidate(ctx context.Context, cand models.TradeCandidate, mode models.TradingMode, outcome string) error {
	err := s.tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO trade_candidates (pair, algorithm, strategy, mode, outcome, price, sd, lowest_price, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
			cand.Symbol, cand.Algorithm, string(cand.Strategy), string(mode), outcome,
			cand.Price, cand.SD, cand.LowestPrice,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("RecordCandidate %s: %w", cand.Symbol, err)
	}
	return nil
}

// SaveUniverse замещает снимок целиком: вселенная пересобирается на
// каждом старте и частичные апдейты не нужны.
func (s *Store) SaveUniverse(ctx context.Context, subs []models.SubscribedSymbol) error {
	err := s.tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE subscribed_symbols`); err != nil {
			return err
		}
		for _, sub := range subs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO subscribed_symbols (pair, blacklisted, updated_at) VALUES ($1, $2, now())`,
				sub.Pair, sub.Blacklisted,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("SaveUniverse: %w", err)
	}
	return nil
}

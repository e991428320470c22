package service

import (
	"context"
	"fmt"
	"net/http"

	"signal_bot/internal/models"
)

const blacklistPath = "/research/blacklist"

func (c *Client) GetBlacklist(ctx context.Context) ([]models.BlacklistEntry, error) {
	var out []models.BlacklistEntry
	if err := c.get(ctx, blacklistPath, nil, &out); err != nil {
		return nil, fmt.Errorf("GetBlacklist: %w", err)
	}
	return out, nil
}

func (c *Client) AddToBlacklist(ctx context.Context, pair, reason string) error {
	entry := models.BlacklistEntry{Pair: pair, Reason: reason}
	if err := c.send(ctx, http.MethodPost, blacklistPath, entry, nil); err != nil {
		return fmt.Errorf("AddToBlacklist %s: %w", pair, err)
	}
	return nil
}

func (c *Client) RemoveFromBlacklist(ctx context.Context, pair string) error {
	if err := c.send(ctx, http.MethodDelete, blacklistPath+"/"+pair, nil, nil); err != nil {
		return fmt.Errorf("RemoveFromBlacklist %s: %w", pair, err)
	}
	return nil
}

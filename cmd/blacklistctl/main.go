package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	binbotsvc "signal_bot/internal/modules/binbot/service"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

// blacklistctl — ручное управление блэклистом автотрейда:
//
//	blacklistctl list
//	blacklistctl add <pair> <reason...>
//	blacklistctl remove <pair>
//
// Читает тот же configs/, что и бот, base_url можно перекрыть
// через BINBOT_BASE_URL.

func loadClient() (*binbotsvc.Client, error) {
	configName := os.Getenv("CONFIG_FILE")
	if configName == "" {
		configName = "values_local.yaml"
	}
	viper.SetConfigFile("configs/" + configName)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	_ = viper.BindEnv("binbot.base_url", "BINBOT_BASE_URL")

	baseURL := viper.GetString("binbot.base_url")
	if baseURL == "" {
		return nil, errors.New("binbot.base_url is empty")
	}

	cfg := &config.Config{
		GovernorRPS:            4,
		GovernorBanPause:       time.Minute,
		GovernorWeightLimit:    600,
		GovernorWeightPause:    time.Minute,
		GovernorWeightHeader:   "x-mbx-used-weight-1m",
		GovernorRequestTimeout: 10 * time.Second,
	}
	cfg.Binbot.BaseURL = baseURL

	return binbotsvc.NewClient(cfg, binbotsvc.NewGovernor(cfg)), nil
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New("usage: blacklistctl list | add <pair> <reason> | remove <pair>")
	}

	client, err := loadClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "list":
		entries, err := client.GetBlacklist(ctx)
		if err != nil {
			return errors.Wrap(err, "get blacklist")
		}
		for _, e := range entries {
			fmt.Printf("%-14s %s\n", e.Pair, e.Reason)
		}
		fmt.Printf("%d pairs\n", len(entries))
		return nil

	case "add":
		if len(os.Args) < 3 {
			return errors.New("add: pair is required")
		}
		pair := os.Args[2]
		reason := "manual"
		if len(os.Args) > 3 {
			reason = os.Args[3]
		}
		if err := client.AddToBlacklist(ctx, pair, reason); err != nil {
			return errors.Wrapf(err, "add %s", pair)
		}
		fmt.Printf("%s blacklisted\n", pair)
		return nil

	case "remove":
		if len(os.Args) < 3 {
			return errors.New("remove: pair is required")
		}
		pair := os.Args[2]
		if err := client.RemoveFromBlacklist(ctx, pair); err != nil {
			return errors.Wrapf(err, "remove %s", pair)
		}
		fmt.Printf("%s removed from blacklist\n", pair)
		return nil

	default:
		return errors.Errorf("unknown command %q", os.Args[1])
	}
}

func main() {
	if err := logger.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

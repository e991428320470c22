package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB string `yaml:"db_dsn"`

	Binbot struct {
		BaseURL string `yaml:"base_url"` // bot-management API
	} `yaml:"binbot"`

	Exchange struct {
		WSURL       string `yaml:"ws_url"`       // kline стрим
		ExistURL    string `yaml:"exist_url"`    // проверка существования актива
		AlertWSURL  string `yaml:"alert_ws_url"` // hodloo
		Interval    string `yaml:"interval"`     // таймфрейм свечей
		QuoteAsset  string `yaml:"quote_asset"`  // основной quote, USDT
		Reference   string `yaml:"reference"`    // референсный актив, BTCUSDT
		HTTPTimeout time.Duration
	} `yaml:"exchange"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	HealthAddr string `yaml:"health_addr"`

	// Дедуп/кулдауны по символам. Запись обязана протухать,
	// иначе символ застрянет навсегда.
	KlineCooldown time.Duration
	AlertCooldown time.Duration

	// Кадентность обновления состояния рынка: дорогой wide-scan запрос,
	// чаще раза в интервал не дёргаем.
	MarketRefreshEvery time.Duration

	// RateGovernor
	GovernorRPS            float64
	GovernorBanPause       time.Duration
	GovernorWeightLimit    int
	GovernorWeightPause    time.Duration
	GovernorWeightHeader   string
	GovernorRequestTimeout time.Duration

	// Автотрейд
	LiveEnabled  bool
	PaperEnabled bool

	SafetyOrderCount     int
	SafetyOrderDeviation float64 // % на тир
	SafetyOrderGrowth    float64 // экспонента роста размера
	InitialSafetyOrder   float64 // USDT
	MinBaseOrder         float64 // минимальный ордер биржи, USDT
	LongCooldownMin      int
	MarginShortCooldown  int // биржа держит isolated-пару сутки после трейда

	SkippedAssets []string `yaml:"skipped_assets"` // поверх блэклиста
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		KlineCooldown:      durationFromEnv("KLINE_COOLDOWN", "100m"),
		AlertCooldown:      durationFromEnv("ALERT_COOLDOWN", "1h"),
		MarketRefreshEvery: durationFromEnv("MARKET_REFRESH_EVERY", "1h"),

		GovernorRPS:            floatFromEnv("GOVERNOR_RPS", 8),
		GovernorBanPause:       durationFromEnv("GOVERNOR_BAN_PAUSE", "2m"),
		GovernorWeightLimit:    intFromEnv("GOVERNOR_WEIGHT_LIMIT", 600),
		GovernorWeightPause:    durationFromEnv("GOVERNOR_WEIGHT_PAUSE", "2m"),
		GovernorWeightHeader:   getenvDefault("GOVERNOR_WEIGHT_HEADER", "x-mbx-used-weight-1m"),
		GovernorRequestTimeout: durationFromEnv("GOVERNOR_REQUEST_TIMEOUT", "10s"),

		LiveEnabled:  boolFromEnv("AUTOTRADE_LIVE", true),
		PaperEnabled: boolFromEnv("AUTOTRADE_PAPER", true),

		SafetyOrderCount:     intFromEnv("SO_COUNT", 3),
		SafetyOrderDeviation: floatFromEnv("SO_DEVIATION", 1.2),
		SafetyOrderGrowth:    floatFromEnv("SO_GROWTH", 1.2),
		InitialSafetyOrder:   floatFromEnv("SO_INITIAL", 10),
		MinBaseOrder:         floatFromEnv("MIN_BASE_ORDER", 15),
		LongCooldownMin:      intFromEnv("LONG_COOLDOWN_MIN", 360),
		MarginShortCooldown:  intFromEnv("MARGIN_SHORT_COOLDOWN_MIN", 1440),
	}
	err = decoder.Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	if config.Exchange.Interval == "" {
		config.Exchange.Interval = "1h"
	}
	if config.Exchange.QuoteAsset == "" {
		config.Exchange.QuoteAsset = "USDT"
	}
	if config.Exchange.Reference == "" {
		config.Exchange.Reference = "BTCUSDT"
	}
	if config.Exchange.HTTPTimeout == 0 {
		config.Exchange.HTTPTimeout = durationFromEnv("EXCHANGE_HTTP_TIMEOUT", "10s")
	}
	if config.HealthAddr == "" {
		config.HealthAddr = ":8080"
	}
	if len(config.SkippedAssets) == 0 {
		config.SkippedAssets = []string{"UP", "DOWN", "AUD"}
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}

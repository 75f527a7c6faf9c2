package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Telegram
	TelegramToken string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DevConnect API
	APIBaseURL string
	APITimeout time.Duration

	// Bot settings
	FeedPageSize   int
	ResyncInterval time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// .env is optional; environment variables alone are fine
	_ = v.ReadInConfig()

	v.SetDefault("API_TIMEOUT", "30s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FEED_PAGE_SIZE", 10)
	v.SetDefault("RESYNC_INTERVAL", "5m")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		TelegramToken: v.GetString("TELEGRAM_TOKEN"),
		PostgresDSN:   v.GetString("POSTGRES_DSN"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		APIBaseURL:    v.GetString("API_BASE_URL"),
		FeedPageSize:  v.GetInt("FEED_PAGE_SIZE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	timeout, err := time.ParseDuration(v.GetString("API_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}
	cfg.APITimeout = timeout

	interval, err := time.ParseDuration(v.GetString("RESYNC_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESYNC_INTERVAL: %w", err)
	}
	cfg.ResyncInterval = interval

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is empty")
	}

	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is empty")
	}

	if c.APITimeout < time.Second {
		return fmt.Errorf("API timeout too small: %v", c.APITimeout)
	}

	if c.FeedPageSize < 1 || c.FeedPageSize > 100 {
		return fmt.Errorf("feed page size must be between 1 and 100")
	}

	if c.ResyncInterval < time.Minute {
		return fmt.Errorf("resync interval too small: %v", c.ResyncInterval)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TelegramToken:  "token",
		PostgresDSN:    "postgres://localhost/devconnect",
		RedisAddr:      "localhost:6379",
		APIBaseURL:     "http://localhost:7777",
		APITimeout:     30 * time.Second,
		FeedPageSize:   10,
		ResyncInterval: 5 * time.Minute,
		LogLevel:       "info",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing token", mutate: func(c *Config) { c.TelegramToken = "" }},
		{name: "missing dsn", mutate: func(c *Config) { c.PostgresDSN = "" }},
		{name: "missing api url", mutate: func(c *Config) { c.APIBaseURL = "" }},
		{name: "tiny timeout", mutate: func(c *Config) { c.APITimeout = 10 * time.Millisecond }},
		{name: "zero page size", mutate: func(c *Config) { c.FeedPageSize = 0 }},
		{name: "huge page size", mutate: func(c *Config) { c.FeedPageSize = 500 }},
		{name: "tiny resync interval", mutate: func(c *Config) { c.ResyncInterval = time.Second }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/devconnect")
	t.Setenv("API_BASE_URL", "http://localhost:7777")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, 10, cfg.FeedPageSize, "default page size")
	assert.Equal(t, 30*time.Second, cfg.APITimeout, "default timeout")
	assert.Equal(t, 5*time.Minute, cfg.ResyncInterval, "default resync interval")
	assert.Equal(t, "info", cfg.LogLevel)
}

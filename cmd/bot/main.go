package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"devconnect-bot/internal/bot"
	"devconnect-bot/internal/bot/notifier"
	"devconnect-bot/internal/config"
	"devconnect-bot/internal/logger"
	"devconnect-bot/internal/session"
	"devconnect-bot/internal/storage/postgres"
	"devconnect-bot/internal/storage/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting DevConnect bot",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("resync_interval", cfg.ResyncInterval),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	sessions := session.NewManager(store, cfg, log)
	log.Info("session manager created")

	log.Info("initializing Telegram bot...")
	tgBot, err := bot.New(cfg, store, cache, sessions, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	log.Info("Telegram bot initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("starting request checker...")
	checker := notifier.New(
		tgBot.GetBot(),
		store,
		cache,
		sessions,
		cfg,
		log,
	)

	go checker.Start(ctx)

	log.Info("bot is running...")
	log.Info("press Ctrl+C to stop")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")

	log.Info("bot stopped")
}

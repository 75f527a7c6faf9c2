package bot

import (
	"context"
	"fmt"
	"time"

	"devconnect-bot/internal/bot/handlers"
	"devconnect-bot/internal/bot/middleware"
	"devconnect-bot/internal/config"
	"devconnect-bot/internal/session"
	"devconnect-bot/internal/storage/postgres"
	"devconnect-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot      *tele.Bot
	store    *postgres.Store
	cache    *redis.Cache
	sessions *session.Manager
	config   *config.Config
	logger   *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	sessions *session.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		store:    store,
		cache:    cache,
		sessions: sessions,
		config:   cfg,
		logger:   logger,
	}

	bot.setupMiddleware()

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.RateLimit(b.cache, b.logger))
}

func (b *Bot) registerHandlers() {
	ctx := &handlers.Context{
		Sessions: b.sessions,
		Store:    b.store,
		Cache:    b.cache,
		Config:   b.config,
		Logger:   b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/login", handlers.HandleLogin(ctx))
	b.bot.Handle("/signup", handlers.HandleSignup(ctx))
	b.bot.Handle("/feed", handlers.HandleFeed(ctx))
	b.bot.Handle("/connections", handlers.HandleConnections(ctx))
	b.bot.Handle("/requests", handlers.HandleRequests(ctx))
	b.bot.Handle("/profile", handlers.HandleProfile(ctx))
	b.bot.Handle("/logout", handlers.HandleLogout(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))

	b.bot.Handle(tele.OnPhoto, handlers.HandlePhoto(ctx))
	b.bot.Handle(tele.OnDocument, handlers.HandlePhoto(ctx))

	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) Stop() {
	b.logger.Info("bot stopped")
	b.bot.Stop()
}

func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}

package notifier

import (
	"context"
	"fmt"
	"time"

	"devconnect-bot/internal/config"
	"devconnect-bot/internal/models"
	"devconnect-bot/internal/session"
	"devconnect-bot/internal/storage/postgres"
	"devconnect-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RequestChecker periodically resyncs the pending-request count for every
// linked account and pushes a chat notification when new requests arrived.
type RequestChecker struct {
	bot      *tele.Bot
	store    *postgres.Store
	cache    *redis.Cache
	sessions *session.Manager
	config   *config.Config
	logger   *zap.Logger
}

func New(
	bot *tele.Bot,
	store *postgres.Store,
	cache *redis.Cache,
	sessions *session.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) *RequestChecker {
	return &RequestChecker{
		bot:      bot,
		store:    store,
		cache:    cache,
		sessions: sessions,
		config:   cfg,
		logger:   logger,
	}
}

func (rc *RequestChecker) Start(ctx context.Context) {
	ticker := time.NewTicker(rc.config.ResyncInterval)
	defer ticker.Stop()

	rc.logger.Info("request checker started",
		zap.Duration("interval", rc.config.ResyncInterval),
	)

	time.Sleep(30 * time.Second)
	rc.checkAllAccounts(ctx)

	for {
		select {
		case <-ctx.Done():
			rc.logger.Info("request checker stopped")
			return
		case <-ticker.C:
			rc.checkAllAccounts(ctx)
		}
	}
}

func (rc *RequestChecker) checkAllAccounts(ctx context.Context) {
	rc.logger.Debug("starting pending-request resync")

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	accounts, err := rc.store.GetNotifiableAccounts(dbCtx)
	if err != nil {
		rc.logger.Error("failed to get notifiable accounts", zap.Error(err))
		return
	}

	if len(accounts) == 0 {
		rc.logger.Debug("no accounts to resync")
		return
	}

	rc.logger.Info("resyncing pending requests", zap.Int("count", len(accounts)))

	for _, account := range accounts {
		if err := rc.checkAccount(dbCtx, &account); err != nil {
			rc.logger.Error("failed to resync account",
				zap.Int64("chat_id", account.ChatID),
				zap.Error(err),
			)
			continue
		}

		time.Sleep(2 * time.Second)
	}

	rc.logger.Debug("finished pending-request resync")
}

func (rc *RequestChecker) checkAccount(ctx context.Context, account *models.LinkedAccount) error {
	sess, err := rc.sessions.Get(ctx, account.ChatID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	if !sess.Authenticated() {
		rc.logger.Debug("session not authenticated, skipping",
			zap.Int64("chat_id", account.ChatID),
		)
		return nil
	}

	requests, err := sess.API().ReceivedRequests(ctx)
	if err != nil {
		return fmt.Errorf("fetch received requests: %w", err)
	}

	count := int64(len(requests))

	// the server count wins over any locally tracked value
	sess.Pending().Set(len(requests))

	previous, err := rc.cache.GetPendingMirror(ctx, account.ChatID)
	if err != nil {
		rc.logger.Debug("no pending mirror yet",
			zap.Int64("chat_id", account.ChatID),
			zap.Error(err),
		)
		previous = 0
	}

	if count > previous {
		rc.notify(account.ChatID, int(count-previous))
	}

	if err := rc.cache.SetPendingMirror(ctx, account.ChatID, count); err != nil {
		rc.logger.Warn("failed to update pending mirror",
			zap.Int64("chat_id", account.ChatID),
			zap.Error(err),
		)
	}

	return nil
}

func (rc *RequestChecker) notify(chatID int64, fresh int) {
	text := fmt.Sprintf("📬 You have %d new connection request(s)! Check 📬 Requests.", fresh)
	if fresh == 1 {
		text = "📬 You have a new connection request! Check 📬 Requests."
	}

	if _, err := rc.bot.Send(&tele.Chat{ID: chatID}, text); err != nil {
		rc.logger.Error("failed to send notification",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

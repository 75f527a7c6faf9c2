package handlers

import (
	"context"
	"time"

	"devconnect-bot/internal/config"
	"devconnect-bot/internal/session"
	"devconnect-bot/internal/storage/postgres"
	"devconnect-bot/internal/storage/redis"

	"go.uber.org/zap"
)

// Context contains deps for all handlers
type Context struct {
	Sessions *session.Manager
	Store    *postgres.Store
	Cache    *redis.Cache
	Config   *config.Config
	Logger   *zap.Logger
}

// opCtx bounds one handler-initiated operation.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

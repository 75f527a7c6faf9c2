package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	RateLimitWindowTTL = 1 * time.Minute
	UserStateTTL       = 30 * time.Minute
	DraftTTL           = 30 * time.Minute
	PendingMirrorTTL   = 24 * time.Hour
)

func UserStateKey(chatID int64) string {
	return fmt.Sprintf("state:chat:%d", chatID)
}

func RateLimitKey(chatID int64) string {
	return fmt.Sprintf("ratelimit:chat:%d", chatID)
}

func PendingMirrorKey(chatID int64) string {
	return fmt.Sprintf("pending:chat:%d", chatID)
}

func draftKey(chatID int64, name string) string {
	return fmt.Sprintf("draft:chat:%d:%s", chatID, name)
}

// Conversation state for the multi-step input flows (login, signup,
// profile edit, feed filters).

func (c *Cache) SetUserState(ctx context.Context, chatID int64, state string) error {
	return c.SetString(ctx, UserStateKey(chatID), state, UserStateTTL)
}

func (c *Cache) GetUserState(ctx context.Context, chatID int64) (string, error) {
	return c.GetString(ctx, UserStateKey(chatID))
}

func (c *Cache) DeleteUserState(ctx context.Context, chatID int64) error {
	return c.Delete(ctx, UserStateKey(chatID))
}

// Drafts hold partially collected forms between messages.

func (c *Cache) SetDraft(ctx context.Context, chatID int64, name string, value interface{}) error {
	return c.Set(ctx, draftKey(chatID, name), value, DraftTTL)
}

func (c *Cache) GetDraft(ctx context.Context, chatID int64, name string, dest interface{}) error {
	return c.Get(ctx, draftKey(chatID, name), dest)
}

func (c *Cache) DeleteDraft(ctx context.Context, chatID int64, name string) error {
	return c.Delete(ctx, draftKey(chatID, name))
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, chatID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(chatID), RateLimitWindowTTL)
}

// The pending mirror is the last count the notifier pushed for a chat; it
// lets the resync loop tell "new requests arrived" from "count unchanged".

func (c *Cache) GetPendingMirror(ctx context.Context, chatID int64) (int64, error) {
	return c.GetInt(ctx, PendingMirrorKey(chatID))
}

func (c *Cache) SetPendingMirror(ctx context.Context, chatID int64, count int64) error {
	return c.SetInt(ctx, PendingMirrorKey(chatID), count, PendingMirrorTTL)
}

func (c *Cache) DeletePendingMirror(ctx context.Context, chatID int64) error {
	return c.Delete(ctx, PendingMirrorKey(chatID))
}

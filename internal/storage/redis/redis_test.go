package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	cache, err := New(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return cache, mr
}

func TestUserStateLifecycle(t *testing.T) {
	cache, mr := setupTest(t)
	ctx := context.Background()

	_, err := cache.GetUserState(ctx, 42)
	require.Error(t, err, "no state stored yet")

	require.NoError(t, cache.SetUserState(ctx, 42, "signup_email"))

	state, err := cache.GetUserState(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "signup_email", state)

	// states expire rather than lingering forever
	mr.FastForward(UserStateTTL + 1)
	_, err = cache.GetUserState(ctx, 42)
	assert.Error(t, err)

	require.NoError(t, cache.SetUserState(ctx, 42, "signup_age"))
	require.NoError(t, cache.DeleteUserState(ctx, 42))
	_, err = cache.GetUserState(ctx, 42)
	assert.Error(t, err)
}

func TestDraftRoundTrip(t *testing.T) {
	cache, _ := setupTest(t)
	ctx := context.Background()

	type draft struct {
		Email  string   `json:"email"`
		Skills []string `json:"skills"`
	}

	in := draft{Email: "anna@example.com", Skills: []string{"Go", "Docker"}}
	require.NoError(t, cache.SetDraft(ctx, 42, "signup", in))

	var out draft
	require.NoError(t, cache.GetDraft(ctx, 42, "signup", &out))
	assert.Equal(t, in, out)

	// drafts are scoped per chat and per name
	var other draft
	assert.Error(t, cache.GetDraft(ctx, 43, "signup", &other))
	assert.Error(t, cache.GetDraft(ctx, 42, "login", &other))

	require.NoError(t, cache.DeleteDraft(ctx, 42, "signup"))
	assert.Error(t, cache.GetDraft(ctx, 42, "signup", &out))
}

func TestRateLimitCounter(t *testing.T) {
	cache, mr := setupTest(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := cache.IncrementUserRateLimit(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	// separate chats count independently
	n, err := cache.IncrementUserRateLimit(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// the window resets after the TTL
	mr.FastForward(RateLimitWindowTTL + 1)
	n, err = cache.IncrementUserRateLimit(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPendingMirror(t *testing.T) {
	cache, _ := setupTest(t)
	ctx := context.Background()

	// missing mirror reads as zero, not an error
	n, err := cache.GetPendingMirror(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, cache.SetPendingMirror(ctx, 42, 7))
	n, err = cache.GetPendingMirror(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	require.NoError(t, cache.DeletePendingMirror(ctx, 42))
	n, err = cache.GetPendingMirror(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "state:chat:42", UserStateKey(42))
	assert.Equal(t, "ratelimit:chat:42", RateLimitKey(42))
	assert.Equal(t, "pending:chat:42", PendingMirrorKey(42))
	assert.Equal(t, "draft:chat:42:signup", draftKey(42, "signup"))
}

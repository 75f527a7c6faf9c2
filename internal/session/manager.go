package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/config"
	"devconnect-bot/internal/storage/postgres"

	"go.uber.org/zap"
)

// Manager hands out one Session per chat, restoring persisted backend
// cookies on first touch so logins survive bot restarts.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	store  *postgres.Store
	cfg    *config.Config
	logger *zap.Logger
}

func NewManager(store *postgres.Store, cfg *config.Config, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// Get returns the chat's session, building and restoring it if needed.
func (m *Manager) Get(ctx context.Context, chatID int64) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[chatID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	client, err := devconnect.New(m.cfg.APIBaseURL, m.cfg.APITimeout, m.logger)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	s := New(chatID, client, m.cfg.FeedPageSize, m.logger)
	s.persist = func(ctx context.Context, email string) {
		m.persistSession(ctx, chatID, email, client)
	}
	s.forget = func(ctx context.Context) {
		if err := m.store.ClearSessionCookies(ctx, chatID); err != nil {
			m.logger.Warn("failed to clear persisted session",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}

	m.restore(ctx, chatID, s)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[chatID]; ok {
		return existing, nil
	}
	m.sessions[chatID] = s

	return s, nil
}

// Peek returns an already-built session without creating one.
func (m *Manager) Peek(chatID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	return s, ok
}

// restore seeds the session with persisted cookies and probes the backend.
func (m *Manager) restore(ctx context.Context, chatID int64, s *Session) {
	account, err := m.store.GetAccount(ctx, chatID)
	if err != nil || account == nil || !account.LoggedIn() {
		return
	}

	cookies, err := decodeCookies(*account.SessionCookies)
	if err != nil {
		m.logger.Warn("failed to decode persisted cookies",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}

	s.api.RestoreCookies(cookies)
	s.CheckAuthStatus(ctx)

	if s.Authenticated() {
		m.logger.Info("session restored",
			zap.Int64("chat_id", chatID),
			zap.String("user_id", s.User().ID),
		)
	}
}

func (m *Manager) persistSession(ctx context.Context, chatID int64, email string, client *devconnect.Client) {
	encoded, err := encodeCookies(client.SessionCookies())
	if err != nil {
		m.logger.Warn("failed to encode session cookies",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}

	if err := m.store.SaveSessionCookies(ctx, chatID, email, encoded); err != nil {
		m.logger.Warn("failed to persist session",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// persistedCookie is the stored subset of http.Cookie.
type persistedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

func encodeCookies(cookies []*http.Cookie) (string, error) {
	stored := make([]persistedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, persistedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("marshal cookies: %w", err)
	}
	return string(data), nil
}

func decodeCookies(encoded string) ([]*http.Cookie, error) {
	var stored []persistedCookie
	if err := json.Unmarshal([]byte(encoded), &stored); err != nil {
		return nil, fmt.Errorf("unmarshal cookies: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}
	return cookies, nil
}

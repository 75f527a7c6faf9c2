package postgres

import (
	"context"
	"fmt"
	"time"

	"devconnect-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateAccount(ctx context.Context, account *models.LinkedAccount) error {
	_, err := s.sess.
		InsertInto("linked_accounts").
		Columns("chat_id", "username", "email", "session_cookies", "notify_enabled", "created_at").
		Values(account.ChatID, account.Username, account.Email, account.SessionCookies, account.NotifyEnabled, time.Now()).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create account",
			zap.Int64("chat_id", account.ChatID),
			zap.Error(err),
		)
		return fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account linked",
		zap.Int64("chat_id", account.ChatID),
		zap.Stringp("username", account.Username),
	)

	return nil
}

func (s *Store) GetAccount(ctx context.Context, chatID int64) (*models.LinkedAccount, error) {
	var account models.LinkedAccount

	err := s.sess.
		Select("*").
		From("linked_accounts").
		Where("chat_id = ?", chatID).
		LoadOneContext(ctx, &account)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get account",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

func (s *Store) GetOrCreateAccount(ctx context.Context, account *models.LinkedAccount) (*models.LinkedAccount, error) {
	existing, err := s.GetAccount(ctx, account.ChatID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	if err := s.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// SaveSessionCookies persists the backend session for a chat so the login
// survives restarts.
func (s *Store) SaveSessionCookies(ctx context.Context, chatID int64, email, cookies string) error {
	_, err := s.sess.
		Update("linked_accounts").
		Set("email", email).
		Set("session_cookies", cookies).
		Set("last_seen", time.Now()).
		Where("chat_id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save session cookies",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return fmt.Errorf("save session cookies: %w", err)
	}

	s.logger.Info("session persisted", zap.Int64("chat_id", chatID))
	return nil
}

// ClearSessionCookies drops the persisted session on logout.
func (s *Store) ClearSessionCookies(ctx context.Context, chatID int64) error {
	_, err := s.sess.
		Update("linked_accounts").
		Set("session_cookies", nil).
		Where("chat_id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to clear session cookies",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return fmt.Errorf("clear session cookies: %w", err)
	}

	s.logger.Info("session cleared", zap.Int64("chat_id", chatID))
	return nil
}

func (s *Store) UpdateLastSeen(ctx context.Context, chatID int64) error {
	_, err := s.sess.
		Update("linked_accounts").
		Set("last_seen", time.Now()).
		Where("chat_id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update last seen",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return fmt.Errorf("update last seen: %w", err)
	}

	return nil
}

func (s *Store) SetNotifyEnabled(ctx context.Context, chatID int64, enabled bool) error {
	_, err := s.sess.
		Update("linked_accounts").
		Set("notify_enabled", enabled).
		Where("chat_id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set notify enabled",
			zap.Int64("chat_id", chatID),
			zap.Bool("enabled", enabled),
			zap.Error(err),
		)
		return fmt.Errorf("set notify enabled: %w", err)
	}

	s.logger.Info("notify enabled updated",
		zap.Int64("chat_id", chatID),
		zap.Bool("enabled", enabled),
	)

	return nil
}

// GetNotifiableAccounts returns linked accounts with a persisted session and
// notifications on, for the periodic pending-request resync.
func (s *Store) GetNotifiableAccounts(ctx context.Context) ([]models.LinkedAccount, error) {
	var accounts []models.LinkedAccount

	_, err := s.sess.
		Select("*").
		From("linked_accounts").
		Where("notify_enabled = ? AND session_cookies IS NOT NULL", true).
		LoadContext(ctx, &accounts)

	if err != nil {
		s.logger.Error("failed to get notifiable accounts", zap.Error(err))
		return nil, fmt.Errorf("get notifiable accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) DeleteAccount(ctx context.Context, chatID int64) error {
	_, err := s.sess.
		DeleteFrom("linked_accounts").
		Where("chat_id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete account",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info("account deleted", zap.Int64("chat_id", chatID))
	return nil
}

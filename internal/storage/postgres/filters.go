package postgres

import (
	"context"
	"fmt"

	"devconnect-bot/internal/models"

	"go.uber.org/zap"
)

// SaveFilter upserts one saved feed filter per (chat, type).
func (s *Store) SaveFilter(ctx context.Context, filter *models.FeedFilter) error {
	query := `
		INSERT INTO feed_filters (chat_id, filter_type, filter_value, created_at)
		VALUES (?, ?, ?, NOW())
		ON CONFLICT (chat_id, filter_type)
		DO UPDATE SET
			filter_value = EXCLUDED.filter_value,
			created_at   = NOW()
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query, filter.ChatID, filter.FilterType, filter.FilterValue).
		LoadOneContext(ctx, &id)
	if err != nil {
		s.logger.Error("failed to save filter",
			zap.Int64("chat_id", filter.ChatID),
			zap.String("filter_type", filter.FilterType),
			zap.Error(err),
		)
		return fmt.Errorf("save filter: %w", err)
	}

	filter.ID = id

	s.logger.Info("filter saved",
		zap.Int64("chat_id", filter.ChatID),
		zap.String("filter_type", filter.FilterType),
		zap.String("filter_value", filter.FilterValue),
	)

	return nil
}

func (s *Store) GetFilters(ctx context.Context, chatID int64) ([]models.FeedFilter, error) {
	var filters []models.FeedFilter

	_, err := s.sess.
		Select("*").
		From("feed_filters").
		Where("chat_id = ?", chatID).
		OrderBy("filter_type").
		LoadContext(ctx, &filters)

	if err != nil {
		s.logger.Error("failed to get filters",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get filters: %w", err)
	}

	return filters, nil
}

// GetFiltersMap returns the saved filters keyed by type.
func (s *Store) GetFiltersMap(ctx context.Context, chatID int64) (map[string]string, error) {
	filters, err := s.GetFilters(ctx, chatID)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(filters))
	for _, f := range filters {
		m[f.FilterType] = f.FilterValue
	}

	return m, nil
}

func (s *Store) DeleteFilter(ctx context.Context, chatID int64, filterType string) error {
	_, err := s.sess.
		DeleteFrom("feed_filters").
		Where("chat_id = ? AND filter_type = ?", chatID, filterType).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete filter",
			zap.Int64("chat_id", chatID),
			zap.String("filter_type", filterType),
			zap.Error(err),
		)
		return fmt.Errorf("delete filter: %w", err)
	}

	return nil
}

func (s *Store) ClearFilters(ctx context.Context, chatID int64) error {
	_, err := s.sess.
		DeleteFrom("feed_filters").
		Where("chat_id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to clear filters",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return fmt.Errorf("clear filters: %w", err)
	}

	s.logger.Info("filters cleared", zap.Int64("chat_id", chatID))
	return nil
}

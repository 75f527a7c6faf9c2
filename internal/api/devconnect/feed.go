package devconnect

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// Feed fetches one page of candidate profiles. Pages start at 1. The
// response is a bare array; a short or empty page means the feed is
// exhausted.
func (c *Client) Feed(ctx context.Context, page, limit int) ([]User, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	data, err := c.get(ctx, "/api/feed?"+params.Encode())
	if err != nil {
		c.logger.Error("failed to fetch feed",
			zap.Int("page", page),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	var users []User
	if err := c.parseResponse(data, &users); err != nil {
		c.logger.Error("failed to parse feed response", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("feed page fetched",
		zap.Int("page", page),
		zap.Int("returned", len(users)),
	)

	return users, nil
}

// SendRequest records an interested/ignored decision for a candidate.
func (c *Client) SendRequest(ctx context.Context, status InterestStatus, userID string) error {
	path := fmt.Sprintf("/api/request/send/%s/%s", status, userID)

	if _, err := c.post(ctx, path, nil); err != nil {
		c.logger.Error("failed to send request",
			zap.String("status", string(status)),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("send request: %w", err)
	}

	c.logger.Debug("request sent",
		zap.String("status", string(status)),
		zap.String("user_id", userID),
	)

	return nil
}

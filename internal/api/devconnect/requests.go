package devconnect

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Connections lists the session owner's established connections.
func (c *Client) Connections(ctx context.Context) ([]User, error) {
	data, err := c.get(ctx, "/api/user/connections")
	if err != nil {
		c.logger.Error("failed to fetch connections", zap.Error(err))
		return nil, fmt.Errorf("fetch connections: %w", err)
	}

	var envelope dataEnvelope
	if err := c.parseResponse(data, &envelope); err != nil {
		c.logger.Error("failed to parse connections response", zap.Error(err))
		return nil, err
	}

	var users []User
	if err := json.Unmarshal(envelope.Data, &users); err != nil {
		return nil, fmt.Errorf("unmarshal connections: %w", err)
	}

	c.logger.Debug("connections fetched", zap.Int("count", len(users)))

	return users, nil
}

// ReceivedRequests lists pending requests addressed to the session owner.
func (c *Client) ReceivedRequests(ctx context.Context) ([]Request, error) {
	data, err := c.get(ctx, "/api/user/requests/received")
	if err != nil {
		c.logger.Error("failed to fetch received requests", zap.Error(err))
		return nil, fmt.Errorf("fetch received requests: %w", err)
	}

	var envelope dataEnvelope
	if err := c.parseResponse(data, &envelope); err != nil {
		c.logger.Error("failed to parse requests response", zap.Error(err))
		return nil, err
	}

	var requests []Request
	if err := json.Unmarshal(envelope.Data, &requests); err != nil {
		return nil, fmt.Errorf("unmarshal requests: %w", err)
	}

	c.logger.Debug("received requests fetched", zap.Int("count", len(requests)))

	return requests, nil
}

// ReviewRequest accepts or rejects a received request. The reviewed item
// never reappears in the received list.
func (c *Client) ReviewRequest(ctx context.Context, decision ReviewDecision, requestID string) error {
	path := fmt.Sprintf("/api/request/review/%s/%s", decision, requestID)

	if _, err := c.post(ctx, path, nil); err != nil {
		c.logger.Error("failed to review request",
			zap.String("decision", string(decision)),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("review request: %w", err)
	}

	c.logger.Debug("request reviewed",
		zap.String("decision", string(decision)),
		zap.String("request_id", requestID),
	)

	return nil
}

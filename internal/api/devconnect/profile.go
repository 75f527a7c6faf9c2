package devconnect

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// EditProfile submits a partial profile update and returns the server's
// representation, which the caller adopts as the new local user.
func (c *Client) EditProfile(ctx context.Context, fields map[string]interface{}, photo *Attachment) (*User, error) {
	body, err := encodePayload(fields, photo)
	if err != nil {
		return nil, err
	}

	data, err := c.patch(ctx, "/api/profile/edit", body)
	if err != nil {
		c.logger.Warn("profile edit failed", zap.Error(err))
		return nil, fmt.Errorf("edit profile: %w", err)
	}

	user, err := c.parseUserEnvelope(data)
	if err != nil {
		c.logger.Error("failed to parse profile edit response", zap.Error(err))
		return nil, err
	}

	c.logger.Info("profile updated", zap.String("user_id", user.ID))

	return user, nil
}

// UpdatePassword changes the session owner's password.
func (c *Client) UpdatePassword(ctx context.Context, password string) (*User, error) {
	body, err := encodePayload(map[string]interface{}{
		"password": password,
	}, nil)
	if err != nil {
		return nil, err
	}

	data, err := c.patch(ctx, "/api/profile/password", body)
	if err != nil {
		c.logger.Warn("password update failed", zap.Error(err))
		return nil, fmt.Errorf("update password: %w", err)
	}

	user, err := c.parseUserEnvelope(data)
	if err != nil {
		c.logger.Error("failed to parse password update response", zap.Error(err))
		return nil, err
	}

	return user, nil
}

func (c *Client) parseUserEnvelope(data []byte) (*User, error) {
	var envelope dataEnvelope
	if err := c.parseResponse(data, &envelope); err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(envelope.Data, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return &user, nil
}

package devconnect

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ViewProfile returns the session owner's profile, or an auth error when
// the ambient credentials are missing or expired.
func (c *Client) ViewProfile(ctx context.Context) (*User, error) {
	data, err := c.get(ctx, "/api/profile/view")
	if err != nil {
		return nil, fmt.Errorf("view profile: %w", err)
	}

	var user User
	if err := c.parseResponse(data, &user); err != nil {
		c.logger.Error("failed to parse profile response", zap.Error(err))
		return nil, err
	}

	return &user, nil
}

// Login authenticates the session. On success the backend sets the session
// cookie in the jar and returns the user record.
func (c *Client) Login(ctx context.Context, emailID, password string) (*User, error) {
	body, err := encodePayload(map[string]interface{}{
		"emailId":  emailID,
		"password": password,
	}, nil)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, "/api/login", body)
	if err != nil {
		c.logger.Warn("login failed",
			zap.String("email", emailID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("login: %w", err)
	}

	var user User
	if err := c.parseResponse(data, &user); err != nil {
		c.logger.Error("failed to parse login response", zap.Error(err))
		return nil, err
	}

	c.logger.Info("logged in",
		zap.String("email", emailID),
		zap.String("user_id", user.ID),
	)

	return &user, nil
}

// SignupFields is the profile record submitted on signup.
type SignupFields struct {
	FirstName string
	LastName  string
	EmailID   string
	Password  string
	Age       int
	Gender    string
	About     string
	Skills    []string
}

// Signup creates an account. It does NOT authenticate: the caller must log
// in afterwards. A photo attachment switches the body to multipart.
func (c *Client) Signup(ctx context.Context, fields SignupFields, photo *Attachment) error {
	m := map[string]interface{}{
		"firstName": fields.FirstName,
		"emailId":   fields.EmailID,
		"password":  fields.Password,
		"age":       fields.Age,
		"gender":    fields.Gender,
	}
	if fields.LastName != "" {
		m["lastName"] = fields.LastName
	}
	if fields.About != "" {
		m["about"] = fields.About
	}
	if len(fields.Skills) > 0 {
		m["skills"] = fields.Skills
	}

	body, err := encodePayload(m, photo)
	if err != nil {
		return err
	}

	if _, err := c.post(ctx, "/api/signup", body); err != nil {
		c.logger.Warn("signup failed",
			zap.String("email", fields.EmailID),
			zap.Error(err),
		)
		return fmt.Errorf("signup: %w", err)
	}

	c.logger.Info("account created", zap.String("email", fields.EmailID))

	return nil
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.post(ctx, "/api/logout", nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	c.logger.Info("logged out")

	return nil
}

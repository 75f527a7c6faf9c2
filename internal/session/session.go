// Package session owns the authenticated identity of one chat. The session
// object is threaded explicitly through the handlers; there is no ambient
// singleton.
package session

import (
	"context"
	"errors"
	"sync"

	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/feed"
	"devconnect-bot/internal/pending"

	"go.uber.org/zap"
)

// NoticeKind classifies a transient user notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the toast side-channel made explicit: operations emit it, the
// handler layer renders it. Operations never touch the chat themselves.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Result is the discriminated outcome of a session operation. Operations
// never return errors to the chat loop.
type Result struct {
	Success bool
	Notice  Notice
}

func success(message string) Result {
	return Result{Success: true, Notice: Notice{Kind: NoticeSuccess, Message: message}}
}

func failure(message string) Result {
	return Result{Success: false, Notice: Notice{Kind: NoticeError, Message: message}}
}

// noticeMessage prefers the server's error text over the fallback.
func noticeMessage(err error, fallback string) string {
	var apiErr *devconnect.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Session is one chat's authenticated identity plus its view state: the API
// client with ambient cookie credentials, the pending-request counter, and
// the local feed list. Lifecycle: init (unauthenticated) → authenticated →
// unauthenticated.
type Session struct {
	chatID int64
	api    *devconnect.Client
	pend   *pending.Store
	feed   *feed.State
	logger *zap.Logger

	// persist/forget sync the session cookie with the linked-account store
	persist func(ctx context.Context, email string)
	forget  func(ctx context.Context)

	mu      sync.Mutex
	user    *devconnect.User
	loading bool
}

func New(chatID int64, api *devconnect.Client, feedPageSize int, logger *zap.Logger) *Session {
	s := &Session{
		chatID: chatID,
		api:    api,
		feed:   feed.NewState(feedPageSize),
		logger: logger,
	}
	s.pend = pending.New(func(ctx context.Context) (int, error) {
		requests, err := api.ReceivedRequests(ctx)
		if err != nil {
			return 0, err
		}
		return len(requests), nil
	})
	return s
}

func (s *Session) ChatID() int64 {
	return s.chatID
}

func (s *Session) API() *devconnect.Client {
	return s.api
}

func (s *Session) Pending() *pending.Store {
	return s.pend
}

func (s *Session) Feed() *feed.State {
	return s.feed
}

// User returns the current user, or nil when unauthenticated.
func (s *Session) User() *devconnect.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.User() != nil
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) setUser(u *devconnect.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// CheckAuthStatus probes the backend with the ambient credentials. Any
// failure, including "not authenticated", silently leaves the session
// unauthenticated; this is not a user-visible error.
func (s *Session) CheckAuthStatus(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.api.ViewProfile(ctx)
	if err != nil {
		s.logger.Debug("not authenticated",
			zap.Int64("chat_id", s.chatID),
			zap.Error(err),
		)
		return
	}

	s.setUser(user)
}

// Login authenticates and adopts the returned user as the session identity.
func (s *Session) Login(ctx context.Context, emailID, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.api.Login(ctx, emailID, password)
	if err != nil {
		return failure(noticeMessage(err, "Login failed. Please try again."))
	}

	s.setUser(user)

	if s.persist != nil {
		s.persist(ctx, user.EmailID)
	}

	return success("Login successful!")
}

// Signup creates the account but does not authenticate; the caller is
// redirected to the login flow.
func (s *Session) Signup(ctx context.Context, fields devconnect.SignupFields, photo *devconnect.Attachment) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.Signup(ctx, fields, photo); err != nil {
		return failure(noticeMessage(err, "Signup failed. Please try again."))
	}

	return success("Account created successfully! Please login.")
}

// Logout ends the session. The local identity is cleared even when the API
// call fails; the feed list and pending count do not survive session end.
func (s *Session) Logout(ctx context.Context) Result {
	err := s.api.Logout(ctx)
	if err != nil {
		s.logger.Warn("logout call failed, clearing local session anyway",
			zap.Int64("chat_id", s.chatID),
			zap.Error(err),
		)
	}

	s.setUser(nil)
	s.api.ClearCookies()
	s.feed.Reset()
	s.pend.Clear()

	if s.forget != nil {
		s.forget(ctx)
	}

	if err != nil {
		return failure("Logged out locally, but the server call failed.")
	}
	return success("Logged out successfully!")
}

// UpdateProfile submits a partial profile record. On success the server's
// returned representation replaces the local user: source of truth wins over
// local edits.
func (s *Session) UpdateProfile(ctx context.Context, fields map[string]interface{}, photo *devconnect.Attachment) Result {
	user, err := s.api.EditProfile(ctx, fields, photo)
	if err != nil {
		return failure(noticeMessage(err, "Profile update failed. Please try again."))
	}

	s.setUser(user)

	return success("Profile updated successfully!")
}

func (s *Session) UpdatePassword(ctx context.Context, password string) Result {
	user, err := s.api.UpdatePassword(ctx, password)
	if err != nil {
		return failure(noticeMessage(err, "Password update failed. Please try again."))
	}

	s.setUser(user)

	return success("Password updated successfully!")
}

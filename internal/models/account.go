package models

import "time"

// LinkedAccount ties a Telegram chat to a DevConnect login. SessionCookies
// holds the JSON-serialized backend session cookies so a login survives bot
// restarts; it is cleared on logout.
type LinkedAccount struct {
	ChatID         int64      `db:"chat_id"`
	Username       *string    `db:"username"`
	Email          *string    `db:"email"`
	SessionCookies *string    `db:"session_cookies"`
	NotifyEnabled  bool       `db:"notify_enabled"`
	CreatedAt      time.Time  `db:"created_at"`
	LastSeen       *time.Time `db:"last_seen"`
}

func (a *LinkedAccount) LoggedIn() bool {
	return a.SessionCookies != nil && *a.SessionCookies != ""
}

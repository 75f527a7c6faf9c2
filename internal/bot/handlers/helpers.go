package handlers

import (
	"devconnect-bot/internal/bot/utils"
	"devconnect-bot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Conversation states for the multi-step input flows
const (
	StateIdle = ""

	StateLoginEmail    = "login_email"
	StateLoginPassword = "login_password"

	StateSignupFirstName = "signup_first_name"
	StateSignupLastName  = "signup_last_name"
	StateSignupEmail     = "signup_email"
	StateSignupPassword  = "signup_password"
	StateSignupConfirm   = "signup_confirm"
	StateSignupAge       = "signup_age"
	StateSignupGender    = "signup_gender"
	StateSignupSkills    = "signup_skills"
	StateSignupAbout     = "signup_about"
	StateSignupPhoto     = "signup_photo"

	StateEditFirstName = "edit_first_name"
	StateEditLastName  = "edit_last_name"
	StateEditAge       = "edit_age"
	StateEditGender    = "edit_gender"
	StateEditAbout     = "edit_about"
	StateEditSkills    = "edit_skills"
	StateEditPhoto     = "edit_photo"
	StateNewPassword   = "new_password"

	StateFeedSearch = "feed_search"
	StateFeedMinAge = "feed_min_age"
	StateFeedMaxAge = "feed_max_age"
	StateFeedSkills = "feed_skills"
)

// Draft names in the cache
const (
	draftSignup = "signup"
	draftLogin  = "login"
)

func userSession(ctx *Context, c tele.Context) (*session.Session, error) {
	opctx, cancel := opCtx()
	defer cancel()

	return ctx.Sessions.Get(opctx, c.Sender().ID)
}

func getUserState(ctx *Context, chatID int64) string {
	opctx, cancel := opCtx()
	defer cancel()

	state, err := ctx.Cache.GetUserState(opctx, chatID)
	if err != nil {
		return StateIdle
	}
	return state
}

func setUserState(ctx *Context, chatID int64, state string) {
	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Cache.SetUserState(opctx, chatID, state); err != nil {
		ctx.Logger.Error("failed to set user state",
			zap.Int64("chat_id", chatID),
			zap.String("state", state),
			zap.Error(err),
		)
	}
}

func clearUserState(ctx *Context, chatID int64) {
	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Cache.DeleteUserState(opctx, chatID); err != nil {
		ctx.Logger.Debug("failed to clear user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendNotice renders an operation's transient notification in the chat.
func sendNotice(c tele.Context, notice session.Notice) error {
	prefix := "✅ "
	if notice.Kind == session.NoticeError {
		prefix = "😔 "
	}
	return c.Send(prefix + notice.Message)
}

// sendMainMenu shows the navigation shell for the session's current state.
func sendMainMenu(c tele.Context, sess *session.Session, text string) error {
	return c.Send(text, utils.MainMenuKeyboard(sess.Authenticated(), sess.Pending().Count()))
}

// requireAuth sends the logged-out menu when there is no session user.
func requireAuth(c tele.Context, sess *session.Session) bool {
	if sess.Authenticated() {
		return true
	}

	_ = c.Send(
		"🔒 You need to log in first.",
		utils.MainMenuKeyboard(false, 0),
	)
	return false
}

func cancelConversation(ctx *Context, c tele.Context, sess *session.Session) error {
	chatID := c.Sender().ID

	clearUserState(ctx, chatID)

	opctx, cancel := opCtx()
	defer cancel()
	_ = ctx.Cache.DeleteDraft(opctx, chatID, draftSignup)
	_ = ctx.Cache.DeleteDraft(opctx, chatID, draftLogin)

	return sendMainMenu(c, sess, "Cancelled.")
}

// refreshPending runs the count refresh triggered on session establishment.
func refreshPending(ctx *Context, sess *session.Session) {
	opctx, cancel := opCtx()
	defer cancel()

	if err := sess.Pending().Refresh(opctx); err != nil {
		ctx.Logger.Warn("failed to refresh pending count",
			zap.Int64("chat_id", sess.ChatID()),
			zap.Error(err),
		)
	}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

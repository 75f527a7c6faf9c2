package handlers

import (
	"strings"

	tele "gopkg.in/telebot.v3"

	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/bot/utils"
	"devconnect-bot/internal/session"
)

// HandleCallback routes inline button presses. Data arrives as
// "\f<unique>|<payload>".
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		callback := c.Callback()
		if callback == nil {
			return nil
		}

		data := strings.TrimPrefix(callback.Data, "\f")
		unique, payload := data, ""
		if idx := strings.Index(data, "|"); idx >= 0 {
			unique, payload = data[:idx], data[idx+1:]
		}

		switch unique {
		case "feed_like", "feed_super":
			return withAuthedSession(ctx, c, func(sess *session.Session) error {
				return feedDecision(ctx, c, sess, devconnect.StatusInterested, payload)
			})
		case "feed_pass":
			return withAuthedSession(ctx, c, func(sess *session.Session) error {
				return feedDecision(ctx, c, sess, devconnect.StatusIgnored, payload)
			})
		case "feed_next":
			return withAuthedSession(ctx, c, func(sess *session.Session) error {
				return feedNavigate(ctx, c, sess, true)
			})
		case "feed_prev":
			return withAuthedSession(ctx, c, func(sess *session.Session) error {
				return feedNavigate(ctx, c, sess, false)
			})

		case "req_accept":
			return reviewRequest(ctx, c, devconnect.DecisionAccepted, payload)
		case "req_reject":
			return reviewRequest(ctx, c, devconnect.DecisionRejected, payload)

		case "filter_menu":
			return withAuthedSession(ctx, c, func(sess *session.Session) error {
				return handleFilterMenu(ctx, c, payload)
			})
		case "filter_gender":
			return withAuthedSession(ctx, c, func(sess *session.Session) error {
				return setGenderFilter(ctx, c, sess, payload)
			})
		}

		return c.Respond()
	}
}

// withAuthedSession gates an inline callback behind an authenticated session.
func withAuthedSession(ctx *Context, c tele.Context, fn func(sess *session.Session) error) error {
	sess, err := userSession(ctx, c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong."})
	}

	if !sess.Authenticated() {
		return c.Respond(&tele.CallbackResponse{Text: "🔒 You need to log in first."})
	}

	return fn(sess)
}

func handleFilterMenu(ctx *Context, c tele.Context, field string) error {
	if err := c.Respond(); err != nil {
		return err
	}

	chatID := c.Sender().ID

	switch field {
	case "gender":
		return c.Send("🚻 Show only:", utils.GenderFilterKeyboard())
	case "min_age":
		setUserState(ctx, chatID, StateFeedMinAge)
		return c.Send("🔢 Minimum age (or Skip to clear):", utils.SkipCancelKeyboard())
	case "max_age":
		setUserState(ctx, chatID, StateFeedMaxAge)
		return c.Send("🔢 Maximum age (or Skip to clear):", utils.SkipCancelKeyboard())
	case "skills":
		setUserState(ctx, chatID, StateFeedSkills)
		return c.Send("💻 Skills to require, comma-separated (or Skip to clear):", utils.SkipCancelKeyboard())
	}

	return nil
}

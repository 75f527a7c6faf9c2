package handlers

import (
	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /requests
func HandleRequests(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if !requireAuth(c, sess) {
			return nil
		}

		clearUserState(ctx, c.Sender().ID)

		opctx, cancel := opCtx()
		defer cancel()

		requests, err := sess.API().ReceivedRequests(opctx)
		if err != nil {
			ctx.Logger.Error("failed to fetch received requests",
				zap.Int64("chat_id", sess.ChatID()),
				zap.Error(err),
			)
			return c.Send("😔 Could not load your requests. Please try again.")
		}

		// the authoritative count just arrived, reconcile the badge
		sess.Pending().Set(len(requests))

		if len(requests) == 0 {
			return sendMainMenu(c, sess, "📭 No pending requests right now.")
		}

		if err := sendMainMenu(c, sess, "📬 You have pending requests:"); err != nil {
			return err
		}

		for i := range requests {
			request := &requests[i]
			err := c.Send(
				utils.FormatRequest(request),
				utils.RequestKeyboard(request.ID),
				tele.ModeMarkdownV2,
			)
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// reviewRequest accepts or rejects one received request from its card.
func reviewRequest(ctx *Context, c tele.Context, decision devconnect.ReviewDecision, requestID string) error {
	sess, err := userSession(ctx, c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong."})
	}

	if !sess.Authenticated() {
		return c.Respond(&tele.CallbackResponse{Text: "🔒 You need to log in first."})
	}

	opctx, cancel := opCtx()
	defer cancel()

	if err := sess.API().ReviewRequest(opctx, decision, requestID); err != nil {
		ctx.Logger.Error("failed to review request",
			zap.Int64("chat_id", sess.ChatID()),
			zap.String("request_id", requestID),
			zap.String("decision", string(decision)),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not submit that. Try again."})
	}

	sess.Pending().Decrement()

	ack := "✅ Accepted! You are now connected."
	edited := "🤝 Request accepted."
	if decision == devconnect.DecisionRejected {
		ack = "Rejected."
		edited = "🚫 Request rejected."
	}

	if err := c.Respond(&tele.CallbackResponse{Text: ack}); err != nil {
		return err
	}
	if err := c.Edit(edited); err != nil {
		return err
	}

	return sendMainMenu(c, sess, "Anything else?")
}

// /connections
func HandleConnections(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if !requireAuth(c, sess) {
			return nil
		}

		clearUserState(ctx, c.Sender().ID)

		opctx, cancel := opCtx()
		defer cancel()

		connections, err := sess.API().Connections(opctx)
		if err != nil {
			ctx.Logger.Error("failed to fetch connections",
				zap.Int64("chat_id", sess.ChatID()),
				zap.Error(err),
			)
			return c.Send("😔 Could not load your connections. Please try again.")
		}

		if len(connections) == 0 {
			return sendMainMenu(c, sess, "🤝 No connections yet. Go like some developers in the feed!")
		}

		if err := sendMainMenu(c, sess, "🤝 Your connections:"); err != nil {
			return err
		}

		for i := range connections {
			if err := c.Send(utils.FormatConnection(&connections[i]), tele.ModeMarkdownV2); err != nil {
				return err
			}
		}
		return nil
	}
}

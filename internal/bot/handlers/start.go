package handlers

import (
	"devconnect-bot/internal/bot/utils"
	"devconnect-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID
		userName := c.Sender().Username
		firstName := c.Sender().FirstName

		ctx.Logger.Info("user started bot",
			zap.Int64("chat_id", chatID),
			zap.String("username", userName),
		)

		opctx, cancel := opCtx()
		defer cancel()

		account := &models.LinkedAccount{
			ChatID:        chatID,
			Username:      stringPtr(userName),
			NotifyEnabled: true,
		}
		if _, err := ctx.Store.GetOrCreateAccount(opctx, account); err != nil {
			ctx.Logger.Error("failed to link account",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if err := ctx.Store.UpdateLastSeen(opctx, chatID); err != nil {
			ctx.Logger.Warn("failed to update last seen",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}

		clearUserState(ctx, chatID)

		// builds the session and restores a persisted login if one exists
		sess, err := userSession(ctx, c)
		if err != nil {
			ctx.Logger.Error("failed to build session",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if sess.Authenticated() {
			refreshPending(ctx, sess)
			return sendMainMenu(c, sess,
				"👋 Welcome back, "+sess.User().FirstName+"!")
		}

		name := firstName
		if name == "" {
			name = "developer"
		}

		return c.Send(
			utils.FormatWelcomeMessage(name),
			utils.MainMenuKeyboard(false, 0),
			tele.ModeMarkdownV2,
		)
	}
}

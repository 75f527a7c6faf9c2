package handlers

import (
	"devconnect-bot/internal/bot/utils"

	tele "gopkg.in/telebot.v3"
)

// /help
func HandleHelp(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(
			utils.FormatHelpMessage(),
			tele.ModeMarkdownV2,
		)
	}
}

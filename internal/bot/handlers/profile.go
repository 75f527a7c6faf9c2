package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"devconnect-bot/internal/bot/utils"
	"devconnect-bot/internal/session"
	"devconnect-bot/internal/validate"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /profile
func HandleProfile(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if !requireAuth(c, sess) {
			return nil
		}

		clearUserState(ctx, c.Sender().ID)

		return showProfile(ctx, c, sess)
	}
}

func showProfile(ctx *Context, c tele.Context, sess *session.Session) error {
	opctx, cancel := opCtx()
	defer cancel()

	notifyEnabled := true
	if account, err := ctx.Store.GetAccount(opctx, c.Sender().ID); err == nil && account != nil {
		notifyEnabled = account.NotifyEnabled
	}

	return c.Send(
		utils.FormatOwnProfile(sess.User()),
		utils.ProfileMenuKeyboard(notifyEnabled),
		tele.ModeMarkdownV2,
	)
}

func startProfileEdit(ctx *Context, c tele.Context) error {
	return c.Send("✏️ Which field do you want to change?", utils.EditFieldKeyboard())
}

// editPrompt maps a chosen field button to its input state and prompt.
func startFieldEdit(ctx *Context, c tele.Context, field string) error {
	chatID := c.Sender().ID

	switch field {
	case "First Name":
		setUserState(ctx, chatID, StateEditFirstName)
		return c.Send("Enter your new first name:", utils.CancelKeyboard())
	case "Last Name":
		setUserState(ctx, chatID, StateEditLastName)
		return c.Send("Enter your new last name:", utils.CancelKeyboard())
	case "Age":
		setUserState(ctx, chatID, StateEditAge)
		return c.Send("Enter your new age:", utils.CancelKeyboard())
	case "Gender":
		setUserState(ctx, chatID, StateEditGender)
		return c.Send("Select your gender:", utils.GenderKeyboard())
	case "About":
		setUserState(ctx, chatID, StateEditAbout)
		return c.Send("Enter your new about text:", utils.CancelKeyboard())
	case "Skills":
		setUserState(ctx, chatID, StateEditSkills)
		return c.Send("List your skills, comma-separated:", utils.CancelKeyboard())
	}

	return c.Send("Pick a field from the keyboard.", utils.EditFieldKeyboard())
}

// handleEditInput applies one profile field change as a partial update.
func handleEditInput(ctx *Context, c tele.Context, sess *session.Session, state string) error {
	chatID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	fields := map[string]interface{}{}

	switch state {
	case StateEditFirstName:
		if msg := validate.FirstName(text); msg != "" {
			return c.Send("❌ " + msg + " Try again:")
		}
		fields["firstName"] = text

	case StateEditLastName:
		fields["lastName"] = text

	case StateEditAge:
		age, err := strconv.Atoi(text)
		if err != nil {
			return c.Send("❌ Enter your age as a number:")
		}
		if msg := validate.Age(age); msg != "" {
			return c.Send("❌ " + msg + " Try again:")
		}
		fields["age"] = age

	case StateEditGender:
		gender := strings.ToLower(text)
		if msg := validate.Gender(gender); msg != "" {
			return c.Send("❌ "+msg, utils.GenderKeyboard())
		}
		fields["gender"] = gender

	case StateEditAbout:
		fields["about"] = text

	case StateEditSkills:
		skills := []string{}
		for _, skill := range strings.Split(text, ",") {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
		fields["skills"] = skills
	}

	clearUserState(ctx, chatID)

	opctx, cancel := opCtx()
	defer cancel()

	result := sess.UpdateProfile(opctx, fields, nil)
	if err := sendNotice(c, result.Notice); err != nil {
		return err
	}
	if !result.Success {
		return sendMainMenu(c, sess, "Back to the main menu.")
	}
	return showProfile(ctx, c, sess)
}

func startPhotoChange(ctx *Context, c tele.Context) error {
	setUserState(ctx, c.Sender().ID, StateEditPhoto)
	return c.Send(
		fmt.Sprintf("🖼 Send your new profile photo (up to %d MB):", validate.MaxPhotoBytes>>20),
		utils.CancelKeyboard(),
	)
}

func startPasswordChange(ctx *Context, c tele.Context) error {
	setUserState(ctx, c.Sender().ID, StateNewPassword)
	return c.Send(
		"🔒 Enter a new password.\n\nAt least 8 characters with an uppercase letter, a lowercase letter, a digit and a symbol (@$!%*?&):",
		utils.CancelKeyboard(),
	)
}

func handleNewPassword(ctx *Context, c tele.Context, sess *session.Session) error {
	chatID := c.Sender().ID

	if msg := validate.Password(c.Text()); msg != "" {
		return c.Send("❌ " + msg + " Try again:")
	}

	clearUserState(ctx, chatID)

	opctx, cancel := opCtx()
	defer cancel()

	result := sess.UpdatePassword(opctx, c.Text())
	if err := sendNotice(c, result.Notice); err != nil {
		return err
	}
	return sendMainMenu(c, sess, "Back to the main menu.")
}

// toggleNotify flips the new-request notification flag for this chat.
func toggleNotify(ctx *Context, c tele.Context, sess *session.Session, enabled bool) error {
	chatID := c.Sender().ID

	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Store.SetNotifyEnabled(opctx, chatID, enabled); err != nil {
		ctx.Logger.Error("failed to toggle notifications",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return c.Send("😔 Could not update your notification settings.")
	}

	text := "🔔 Notifications enabled. You'll hear about new requests."
	if !enabled {
		text = "🔕 Notifications disabled."
	}
	if err := c.Send(text); err != nil {
		return err
	}
	return showProfile(ctx, c, sess)
}

package handlers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/bot/utils"
	"devconnect-bot/internal/session"
	"devconnect-bot/internal/validate"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type loginDraft struct {
	Email string `json:"email"`
}

// /login
func HandleLogin(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if sess.Authenticated() {
			return sendMainMenu(c, sess, "You are already logged in.")
		}

		return startLogin(ctx, c)
	}
}

func startLogin(ctx *Context, c tele.Context) error {
	setUserState(ctx, c.Sender().ID, StateLoginEmail)

	return c.Send("📧 Enter your email address:", utils.CancelKeyboard())
}

func handleLoginEmail(ctx *Context, c tele.Context, sess *session.Session) error {
	chatID := c.Sender().ID
	email := strings.TrimSpace(c.Text())

	if msg := validate.Email(email); msg != "" {
		return c.Send("❌ " + msg + " Try again:")
	}

	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Cache.SetDraft(opctx, chatID, draftLogin, loginDraft{Email: email}); err != nil {
		ctx.Logger.Error("failed to save login draft", zap.Int64("chat_id", chatID), zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	setUserState(ctx, chatID, StateLoginPassword)

	return c.Send("🔒 Enter your password:", utils.CancelKeyboard())
}

func handleLoginPassword(ctx *Context, c tele.Context, sess *session.Session) error {
	chatID := c.Sender().ID
	password := c.Text()

	opctx, cancel := opCtx()
	defer cancel()

	var draft loginDraft
	if err := ctx.Cache.GetDraft(opctx, chatID, draftLogin, &draft); err != nil {
		ctx.Logger.Warn("login draft expired", zap.Int64("chat_id", chatID), zap.Error(err))
		clearUserState(ctx, chatID)
		return c.Send("⌛ Login session expired. Please start again.", utils.MainMenuKeyboard(false, 0))
	}

	clearUserState(ctx, chatID)
	_ = ctx.Cache.DeleteDraft(opctx, chatID, draftLogin)

	result := sess.Login(opctx, draft.Email, password)
	if err := sendNotice(c, result.Notice); err != nil {
		return err
	}

	if !result.Success {
		return c.Send("Try again with 🔑 Login.", utils.MainMenuKeyboard(false, 0))
	}

	// session established: refresh the pending badge
	refreshPending(ctx, sess)

	return sendMainMenu(c, sess, "👋 Welcome back, "+sess.User().FirstName+"!")
}

// /signup
func HandleSignup(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if sess.Authenticated() {
			return sendMainMenu(c, sess, "You already have an account and are logged in.")
		}

		return startSignup(ctx, c)
	}
}

func startSignup(ctx *Context, c tele.Context) error {
	chatID := c.Sender().ID

	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Cache.SetDraft(opctx, chatID, draftSignup, &validate.SignupForm{}); err != nil {
		ctx.Logger.Error("failed to create signup draft", zap.Int64("chat_id", chatID), zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	setUserState(ctx, chatID, StateSignupFirstName)

	return c.Send(
		"📝 Let's create your account.\n\nWhat's your first name?",
		utils.CancelKeyboard(),
	)
}

func loadSignupDraft(ctx *Context, c tele.Context) (*validate.SignupForm, error) {
	opctx, cancel := opCtx()
	defer cancel()

	var form validate.SignupForm
	if err := ctx.Cache.GetDraft(opctx, c.Sender().ID, draftSignup, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func saveSignupDraft(ctx *Context, c tele.Context, form *validate.SignupForm) error {
	opctx, cancel := opCtx()
	defer cancel()

	return ctx.Cache.SetDraft(opctx, c.Sender().ID, draftSignup, form)
}

// signupStep advances one wizard step: validate the input, mutate the
// draft, move to the next state, and prompt.
func handleSignupInput(ctx *Context, c tele.Context, sess *session.Session, state string) error {
	chatID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	form, err := loadSignupDraft(ctx, c)
	if err != nil {
		ctx.Logger.Warn("signup draft expired", zap.Int64("chat_id", chatID), zap.Error(err))
		clearUserState(ctx, chatID)
		return c.Send("⌛ Signup session expired. Please start again.", utils.MainMenuKeyboard(false, 0))
	}

	switch state {
	case StateSignupFirstName:
		if msg := validate.FirstName(text); msg != "" {
			return c.Send("❌ " + msg + " Try again:")
		}
		form.FirstName = text
		setUserState(ctx, chatID, StateSignupLastName)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send("What's your last name? (or skip)", utils.SkipCancelKeyboard())

	case StateSignupLastName:
		if text != utils.BtnSkip {
			form.LastName = text
		}
		setUserState(ctx, chatID, StateSignupEmail)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send("📧 What's your email address?", utils.CancelKeyboard())

	case StateSignupEmail:
		if msg := validate.Email(text); msg != "" {
			return c.Send("❌ " + msg + " Try again:")
		}
		form.EmailID = text
		setUserState(ctx, chatID, StateSignupPassword)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send(
			"🔒 Choose a password.\n\nAt least 8 characters with an uppercase letter, a lowercase letter, a digit and a symbol (@$!%*?&):",
			utils.CancelKeyboard(),
		)

	case StateSignupPassword:
		if msg := validate.Password(c.Text()); msg != "" {
			return c.Send("❌ " + msg + " Try again:")
		}
		form.Password = c.Text()
		setUserState(ctx, chatID, StateSignupConfirm)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send("🔒 Repeat the password to confirm:", utils.CancelKeyboard())

	case StateSignupConfirm:
		form.ConfirmPassword = c.Text()
		if form.Password != form.ConfirmPassword {
			return c.Send("❌ Passwords do not match. Try again:")
		}
		setUserState(ctx, chatID, StateSignupAge)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send("🎂 How old are you?", utils.CancelKeyboard())

	case StateSignupAge:
		age, err := strconv.Atoi(text)
		if err != nil {
			return c.Send("❌ Enter your age as a number:")
		}
		if msg := validate.Age(age); msg != "" {
			return c.Send("❌ " + msg + " Try again:")
		}
		form.Age = age
		setUserState(ctx, chatID, StateSignupGender)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send("🚻 Select your gender:", utils.GenderKeyboard())

	case StateSignupGender:
		gender := strings.ToLower(text)
		if msg := validate.Gender(gender); msg != "" {
			return c.Send("❌ "+msg, utils.GenderKeyboard())
		}
		form.Gender = gender
		setUserState(ctx, chatID, StateSignupSkills)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send(
			"💻 List your skills, comma-separated (e.g. Go, PostgreSQL, Docker), or skip:",
			utils.SkipCancelKeyboard(),
		)

	case StateSignupSkills:
		if text != utils.BtnSkip {
			for _, skill := range strings.Split(text, ",") {
				if trimmed := strings.TrimSpace(skill); trimmed != "" {
					form.AddSkill(trimmed)
				}
			}
		}
		setUserState(ctx, chatID, StateSignupAbout)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send("✍️ Tell other developers about yourself, or skip:", utils.SkipCancelKeyboard())

	case StateSignupAbout:
		if text != utils.BtnSkip {
			form.About = text
		}
		setUserState(ctx, chatID, StateSignupPhoto)
		if err := saveSignupDraft(ctx, c, form); err != nil {
			return err
		}
		return c.Send(
			fmt.Sprintf("🖼 Send a profile photo (up to %d MB), or skip:", validate.MaxPhotoBytes>>20),
			utils.SkipCancelKeyboard(),
		)

	case StateSignupPhoto:
		if text == utils.BtnSkip {
			return submitSignup(ctx, c, sess, form, nil)
		}
		return c.Send("Send a photo, or press Skip.", utils.SkipCancelKeyboard())
	}

	return nil
}

// submitSignup runs the full form validation and, only when it passes,
// submits to the backend. Signup never auto-authenticates.
func submitSignup(ctx *Context, c tele.Context, sess *session.Session, form *validate.SignupForm, photo *devconnect.Attachment) error {
	chatID := c.Sender().ID

	if errs := validate.Signup(form); len(errs) > 0 {
		clearUserState(ctx, chatID)
		return c.Send(
			utils.FormatFieldErrors(errs),
			utils.MainMenuKeyboard(false, 0),
			tele.ModeMarkdownV2,
		)
	}

	opctx, cancel := opCtx()
	defer cancel()

	clearUserState(ctx, chatID)
	_ = ctx.Cache.DeleteDraft(opctx, chatID, draftSignup)

	result := sess.Signup(opctx, devconnect.SignupFields{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		EmailID:   form.EmailID,
		Password:  form.Password,
		Age:       form.Age,
		Gender:    form.Gender,
		About:     form.About,
		Skills:    form.Skills,
	}, photo)

	if err := sendNotice(c, result.Notice); err != nil {
		return err
	}

	if result.Success {
		return c.Send("Use 🔑 Login to sign in.", utils.MainMenuKeyboard(false, 0))
	}
	return c.Send("You can try again with 📝 Sign Up.", utils.MainMenuKeyboard(false, 0))
}

// /logout
func HandleLogout(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if !sess.Authenticated() {
			return sendMainMenu(c, sess, "You are not logged in.")
		}

		opctx, cancel := opCtx()
		defer cancel()

		result := sess.Logout(opctx)

		if err := ctx.Cache.DeletePendingMirror(opctx, c.Sender().ID); err != nil {
			ctx.Logger.Debug("failed to drop pending mirror",
				zap.Int64("chat_id", c.Sender().ID),
				zap.Error(err),
			)
		}

		if err := sendNotice(c, result.Notice); err != nil {
			return err
		}

		return sendMainMenu(c, sess, "See you soon! 👋")
	}
}

// HandlePhoto receives photo uploads for the signup and profile-edit flows.
func HandlePhoto(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID

		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		state := getUserState(ctx, chatID)

		switch state {
		case StateSignupPhoto:
			form, err := loadSignupDraft(ctx, c)
			if err != nil {
				clearUserState(ctx, chatID)
				return c.Send("⌛ Signup session expired. Please start again.", utils.MainMenuKeyboard(false, 0))
			}

			photo, msg := downloadPhoto(ctx, c)
			if msg != "" {
				return c.Send("❌ " + msg)
			}

			return submitSignup(ctx, c, sess, form, photo)

		case StateEditPhoto:
			if !requireAuth(c, sess) {
				return nil
			}

			photo, msg := downloadPhoto(ctx, c)
			if msg != "" {
				return c.Send("❌ " + msg)
			}

			clearUserState(ctx, chatID)

			opctx, cancel := opCtx()
			defer cancel()

			result := sess.UpdateProfile(opctx, map[string]interface{}{}, photo)
			if err := sendNotice(c, result.Notice); err != nil {
				return err
			}
			return sendMainMenu(c, sess, "Back to the main menu.")

		default:
			return c.Reply("Use the menu buttons or commands.")
		}
	}
}

// downloadPhoto validates the attachment before downloading it: image
// content type and the size cap are both checked first, so an oversized
// photo never reaches the network path to the backend.
func downloadPhoto(ctx *Context, c tele.Context) (*devconnect.Attachment, string) {
	message := c.Message()
	if message == nil {
		return nil, "Photo is missing."
	}

	var (
		file        *tele.File
		filename    string
		contentType string
	)

	switch {
	case message.Photo != nil:
		file = &message.Photo.File
		filename = "photo.jpg"
		contentType = "image/jpeg"
	case message.Document != nil:
		file = &message.Document.File
		filename = message.Document.FileName
		contentType = message.Document.MIME
	default:
		return nil, "Send a photo or an image file."
	}

	if msg := validate.Photo(contentType, int64(file.FileSize)); msg != "" {
		return nil, msg
	}

	reader, err := c.Bot().File(file)
	if err != nil {
		ctx.Logger.Error("failed to download photo",
			zap.Int64("chat_id", c.Sender().ID),
			zap.Error(err),
		)
		return nil, "Could not download the photo. Please try again."
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, validate.MaxPhotoBytes+1))
	if err != nil {
		ctx.Logger.Error("failed to read photo",
			zap.Int64("chat_id", c.Sender().ID),
			zap.Error(err),
		)
		return nil, "Could not read the photo. Please try again."
	}

	if msg := validate.Photo(contentType, int64(len(data))); msg != "" {
		return nil, msg
	}

	return &devconnect.Attachment{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}, ""
}

package handlers

import (
	"strings"

	tele "gopkg.in/telebot.v3"

	"devconnect-bot/internal/bot/utils"
)

// HandleText routes free-form messages: conversation states take
// precedence, then the reply-keyboard buttons.
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if c.Text() == utils.BtnCancel {
			return cancelConversation(ctx, c, sess)
		}

		state := getUserState(ctx, c.Sender().ID)

		switch state {
		case StateLoginEmail:
			return handleLoginEmail(ctx, c, sess)
		case StateLoginPassword:
			return handleLoginPassword(ctx, c, sess)

		case StateSignupFirstName, StateSignupLastName, StateSignupEmail,
			StateSignupPassword, StateSignupConfirm, StateSignupAge,
			StateSignupGender, StateSignupSkills, StateSignupAbout,
			StateSignupPhoto:
			return handleSignupInput(ctx, c, sess, state)

		case StateEditFirstName, StateEditLastName, StateEditAge,
			StateEditGender, StateEditAbout, StateEditSkills:
			if !requireAuth(c, sess) {
				return nil
			}
			return handleEditInput(ctx, c, sess, state)

		case StateEditPhoto:
			return c.Send("Send a photo, or press ❌ Cancel.")

		case StateNewPassword:
			if !requireAuth(c, sess) {
				return nil
			}
			return handleNewPassword(ctx, c, sess)

		case StateFeedSearch:
			if !requireAuth(c, sess) {
				return nil
			}
			return handleFeedSearch(ctx, c, sess)
		case StateFeedMinAge, StateFeedMaxAge:
			if !requireAuth(c, sess) {
				return nil
			}
			return handleFeedAgeInput(ctx, c, sess, state)
		case StateFeedSkills:
			if !requireAuth(c, sess) {
				return nil
			}
			return handleFeedSkillsInput(ctx, c, sess)
		}

		// the requests button may carry a "(N)" badge
		text := c.Text()
		if strings.HasPrefix(text, utils.BtnRequests) {
			text = utils.BtnRequests
		}

		switch text {
		case utils.BtnLogin:
			return HandleLogin(ctx)(c)
		case utils.BtnSignup:
			return HandleSignup(ctx)(c)
		case utils.BtnHelp:
			return HandleHelp(ctx)(c)
		case utils.BtnFeed:
			return HandleFeed(ctx)(c)
		case utils.BtnConnections:
			return HandleConnections(ctx)(c)
		case utils.BtnRequests:
			return HandleRequests(ctx)(c)
		case utils.BtnProfile:
			return HandleProfile(ctx)(c)
		case utils.BtnLogout:
			return HandleLogout(ctx)(c)

		case utils.BtnSearch:
			if !requireAuth(c, sess) {
				return nil
			}
			return startFeedSearch(ctx, c, sess)
		case utils.BtnFilters:
			if !requireAuth(c, sess) {
				return nil
			}
			return showFilterMenu(c, sess)
		case utils.BtnResetFilters:
			if !requireAuth(c, sess) {
				return nil
			}
			return resetFilters(ctx, c, sess)
		case utils.BtnBack:
			return sendMainMenu(c, sess, "Main menu.")

		case utils.BtnEditProfile:
			if !requireAuth(c, sess) {
				return nil
			}
			return startProfileEdit(ctx, c)
		case "First Name", "Last Name", "Age", "Gender", "About", "Skills":
			if !requireAuth(c, sess) {
				return nil
			}
			return startFieldEdit(ctx, c, c.Text())
		case utils.BtnChangePhoto:
			if !requireAuth(c, sess) {
				return nil
			}
			return startPhotoChange(ctx, c)
		case utils.BtnChangePassword:
			if !requireAuth(c, sess) {
				return nil
			}
			return startPasswordChange(ctx, c)
		case utils.BtnNotifyOn:
			if !requireAuth(c, sess) {
				return nil
			}
			return toggleNotify(ctx, c, sess, true)
		case utils.BtnNotifyOff:
			if !requireAuth(c, sess) {
				return nil
			}
			return toggleNotify(ctx, c, sess, false)
		}

		return c.Reply("I didn't get that. Use the menu buttons or /help.")
	}
}

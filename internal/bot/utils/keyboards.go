package utils

import (
	"fmt"

	"devconnect-bot/internal/validate"

	tele "gopkg.in/telebot.v3"
)

// Button labels double as routing keys in the text handler.
const (
	BtnLogin       = "🔑 Login"
	BtnSignup      = "📝 Sign Up"
	BtnHelp        = "❓ Help"
	BtnFeed        = "🔥 Feed"
	BtnConnections = "🤝 Connections"
	BtnRequests    = "📬 Requests"
	BtnProfile     = "👤 Profile"
	BtnLogout      = "🚪 Logout"

	BtnSearch       = "🔎 Search"
	BtnFilters      = "🎚 Filters"
	BtnResetFilters = "♻️ Reset Filters"
	BtnBack         = "◀️ Back"

	BtnEditProfile    = "✏️ Edit Profile"
	BtnChangePhoto    = "🖼 Change Photo"
	BtnChangePassword = "🔒 Change Password"
	BtnNotifyOn       = "🔔 Enable Notifications"
	BtnNotifyOff      = "🔕 Disable Notifications"

	BtnCancel = "❌ Cancel"
	BtnSkip   = "⏭ Skip"
)

// MainMenuKeyboard is the navigation shell, conditioned on session state.
// The requests button carries the pending-count badge.
func MainMenuKeyboard(authenticated bool, pendingCount int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	if !authenticated {
		menu.Reply(
			menu.Row(menu.Text(BtnLogin), menu.Text(BtnSignup)),
			menu.Row(menu.Text(BtnHelp)),
		)
		return menu
	}

	requestsLabel := BtnRequests
	if pendingCount > 0 {
		requestsLabel = fmt.Sprintf("%s (%d)", BtnRequests, pendingCount)
	}

	menu.Reply(
		menu.Row(menu.Text(BtnFeed), menu.Text(BtnConnections)),
		menu.Row(menu.Text(requestsLabel), menu.Text(BtnProfile)),
		menu.Row(menu.Text(BtnHelp), menu.Text(BtnLogout)),
	)

	return menu
}

func FeedMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(
		menu.Row(menu.Text(BtnSearch), menu.Text(BtnFilters)),
		menu.Row(menu.Text(BtnResetFilters), menu.Text(BtnBack)),
	)

	return menu
}

// CandidateKeyboard is the inline swipe controls for one feed card. Prev and
// next are omitted at the bounds rather than silently ignored.
func CandidateKeyboard(userID string, hasPrev, hasNext bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	actions := menu.Row(
		menu.Data("❌ Pass", "feed_pass", userID),
		menu.Data("🚀 Super Like", "feed_super", userID),
		menu.Data("❤️ Like", "feed_like", userID),
	)

	var nav []tele.Btn
	if hasPrev {
		nav = append(nav, menu.Data("⬅️ Previous", "feed_prev"))
	}
	if hasNext {
		nav = append(nav, menu.Data("➡️ Next", "feed_next"))
	}

	if len(nav) > 0 {
		menu.Inline(actions, menu.Row(nav...))
	} else {
		menu.Inline(actions)
	}

	return menu
}

// RequestKeyboard is the inline accept/reject controls for one received
// request card.
func RequestKeyboard(requestID string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	menu.Inline(menu.Row(
		menu.Data("✅ Accept", "req_accept", requestID),
		menu.Data("❌ Reject", "req_reject", requestID),
	))

	return menu
}

// FilterMenuKeyboard selects which feed filter to set.
func FilterMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	menu.Inline(
		menu.Row(menu.Data("🚻 Gender", "filter_menu", "gender")),
		menu.Row(
			menu.Data("🔢 Min Age", "filter_menu", "min_age"),
			menu.Data("🔢 Max Age", "filter_menu", "max_age"),
		),
		menu.Row(menu.Data("💻 Skills", "filter_menu", "skills")),
	)

	return menu
}

// GenderFilterKeyboard picks a gender filter value, or clears it.
func GenderFilterKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	menu.Inline(
		menu.Row(
			menu.Data("Male", "filter_gender", "male"),
			menu.Data("Female", "filter_gender", "female"),
			menu.Data("Other", "filter_gender", "other"),
		),
		menu.Row(menu.Data("Any", "filter_gender", "")),
	)

	return menu
}

// GenderKeyboard picks a profile gender during signup or editing.
func GenderKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	for _, g := range validate.GenderOptions() {
		rows = append(rows, menu.Row(menu.Text(Title(g))))
	}
	rows = append(rows, menu.Row(menu.Text(BtnCancel)))

	menu.Reply(rows...)

	return menu
}

func ProfileMenuKeyboard(notifyEnabled bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnNotify := menu.Text(BtnNotifyOn)
	if notifyEnabled {
		btnNotify = menu.Text(BtnNotifyOff)
	}

	menu.Reply(
		menu.Row(menu.Text(BtnEditProfile), menu.Text(BtnChangePhoto)),
		menu.Row(menu.Text(BtnChangePassword), btnNotify),
		menu.Row(menu.Text(BtnBack)),
	)

	return menu
}

// EditFieldKeyboard picks which profile field to edit.
func EditFieldKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(
		menu.Row(menu.Text("First Name"), menu.Text("Last Name")),
		menu.Row(menu.Text("Age"), menu.Text("Gender")),
		menu.Row(menu.Text("About"), menu.Text("Skills")),
		menu.Row(menu.Text(BtnCancel)),
	)

	return menu
}

func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(menu.Row(menu.Text(BtnCancel)))

	return menu
}

func SkipCancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(menu.Row(menu.Text(BtnSkip), menu.Text(BtnCancel)))

	return menu
}

package handlers

import (
	"strconv"
	"strings"

	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/bot/utils"
	"devconnect-bot/internal/feed"
	"devconnect-bot/internal/models"
	"devconnect-bot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /feed
func HandleFeed(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		sess, err := userSession(ctx, c)
		if err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if !requireAuth(c, sess) {
			return nil
		}

		clearUserState(ctx, c.Sender().ID)
		hydrateFilters(ctx, sess)

		if sess.Feed().Len() == 0 {
			if err := loadFeedPage(ctx, sess, 1); err != nil {
				return sendNotice(c, session.Notice{
					Kind:    session.NoticeError,
					Message: "Could not load the feed. Please try again.",
				})
			}
		}

		if err := c.Send("🔥 Developer feed", utils.FeedMenuKeyboard()); err != nil {
			return err
		}

		return showCandidate(ctx, c, sess, false)
	}
}

// hydrateFilters restores the chat's saved feed filters into the
// session-local feed state.
func hydrateFilters(ctx *Context, sess *session.Session) {
	opctx, cancel := opCtx()
	defer cancel()

	saved, err := ctx.Store.GetFiltersMap(opctx, sess.ChatID())
	if err != nil {
		ctx.Logger.Warn("failed to load saved filters",
			zap.Int64("chat_id", sess.ChatID()),
			zap.Error(err),
		)
		return
	}

	sess.Feed().SetSearch(saved[models.FilterTypeSearch])
	sess.Feed().SetFilters(feed.Filters{
		Gender: saved[models.FilterTypeGender],
		MinAge: models.ParseAge(saved[models.FilterTypeMinAge]),
		MaxAge: models.ParseAge(saved[models.FilterTypeMaxAge]),
		Skills: models.ParseSkills(saved[models.FilterTypeSkills]),
	})
}

func loadFeedPage(ctx *Context, sess *session.Session, page int) error {
	opctx, cancel := opCtx()
	defer cancel()

	items, err := sess.API().Feed(opctx, page, sess.Feed().PageSize())
	if err != nil {
		ctx.Logger.Error("failed to fetch feed page",
			zap.Int64("chat_id", sess.ChatID()),
			zap.Int("page", page),
			zap.Error(err),
		)
		return err
	}

	sess.Feed().SetPage(page, items)
	return nil
}

// topUpFeed fetches the next page once the remaining local list drops to
// the low-water mark. Best effort: a failed fetch keeps what we have.
func topUpFeed(ctx *Context, sess *session.Session) {
	if !sess.Feed().LowWater() || !sess.Feed().HasMore() {
		return
	}

	if err := loadFeedPage(ctx, sess, sess.Feed().NextPage()); err != nil {
		ctx.Logger.Warn("feed top-up failed",
			zap.Int64("chat_id", sess.ChatID()),
			zap.Error(err),
		)
	}
}

// showCandidate renders the current card. When edit is true the previous
// card message is rewritten in place instead of sending a new one.
func showCandidate(ctx *Context, c tele.Context, sess *session.Session, edit bool) error {
	candidate, ok := sess.Feed().Current()
	if !ok {
		// maybe only the local window is exhausted
		if sess.Feed().HasMore() {
			if err := loadFeedPage(ctx, sess, sess.Feed().NextPage()); err == nil {
				candidate, ok = sess.Feed().Current()
			}
		}
	}

	if !ok {
		hasFilters := sess.Feed().Search() != "" || !sess.Feed().Filters().Empty()
		text := utils.FormatNoCandidatesMessage(hasFilters)
		if edit {
			return c.Edit(text, tele.ModeMarkdownV2)
		}
		return c.Send(text, tele.ModeMarkdownV2)
	}

	position, total := sess.Feed().Position()
	text := utils.FormatCandidate(&candidate, position, total)
	markup := utils.CandidateKeyboard(candidate.ID, position > 1, position < total)

	if edit {
		return c.Edit(text, markup, tele.ModeMarkdownV2)
	}
	return c.Send(text, markup, tele.ModeMarkdownV2)
}

// feedDecision handles a like or pass on one candidate: sends the interest
// status upstream, drops the card locally, and advances.
func feedDecision(ctx *Context, c tele.Context, sess *session.Session, status devconnect.InterestStatus, userID string) error {
	opctx, cancel := opCtx()
	defer cancel()

	if err := sess.API().SendRequest(opctx, status, userID); err != nil {
		ctx.Logger.Error("failed to send interest",
			zap.Int64("chat_id", sess.ChatID()),
			zap.String("user_id", userID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not record that. Try again."})
	}

	sess.Feed().Remove(userID)
	topUpFeed(ctx, sess)

	ack := "❤️ Liked!"
	if status == devconnect.StatusIgnored {
		ack = "Passed."
	} else {
		sess.Pending().Increment()
	}
	if err := c.Respond(&tele.CallbackResponse{Text: ack}); err != nil {
		return err
	}

	return showCandidate(ctx, c, sess, true)
}

func feedNavigate(ctx *Context, c tele.Context, sess *session.Session, forward bool) error {
	moved := false
	if forward {
		moved = sess.Feed().Next()
	} else {
		moved = sess.Feed().Prev()
	}

	if !moved {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing further that way."})
	}

	if forward {
		topUpFeed(ctx, sess)
	}

	if err := c.Respond(); err != nil {
		return err
	}
	return showCandidate(ctx, c, sess, true)
}

func startFeedSearch(ctx *Context, c tele.Context, sess *session.Session) error {
	setUserState(ctx, c.Sender().ID, StateFeedSearch)

	current := sess.Feed().Search()
	prompt := "🔎 Enter a name or skill to search for:"
	if current != "" {
		prompt = "🔎 Current search: " + current + "\n\nEnter a new term, or Skip to clear it:"
		return c.Send(prompt, utils.SkipCancelKeyboard())
	}
	return c.Send(prompt, utils.CancelKeyboard())
}

func handleFeedSearch(ctx *Context, c tele.Context, sess *session.Session) error {
	chatID := c.Sender().ID
	term := strings.TrimSpace(c.Text())
	if term == utils.BtnSkip {
		term = ""
	}

	clearUserState(ctx, chatID)
	sess.Feed().SetSearch(term)
	saveFilter(ctx, chatID, models.FilterTypeSearch, term)

	if err := c.Send("🔥 Developer feed", utils.FeedMenuKeyboard()); err != nil {
		return err
	}
	return showCandidate(ctx, c, sess, false)
}

func showFilterMenu(c tele.Context, sess *session.Session) error {
	text := utils.FormatFilters(sess.Feed().Search(), sess.Feed().Filters())
	return c.Send(text, utils.FilterMenuKeyboard(), tele.ModeMarkdownV2)
}

// saveFilter persists one filter slot; an empty value deletes it.
func saveFilter(ctx *Context, chatID int64, filterType, value string) {
	opctx, cancel := opCtx()
	defer cancel()

	var err error
	if value == "" {
		err = ctx.Store.DeleteFilter(opctx, chatID, filterType)
	} else {
		err = ctx.Store.SaveFilter(opctx, &models.FeedFilter{
			ChatID:      chatID,
			FilterType:  filterType,
			FilterValue: value,
		})
	}
	if err != nil {
		ctx.Logger.Warn("failed to persist filter",
			zap.Int64("chat_id", chatID),
			zap.String("filter_type", filterType),
			zap.Error(err),
		)
	}
}

func setGenderFilter(ctx *Context, c tele.Context, sess *session.Session, gender string) error {
	filters := sess.Feed().Filters()
	filters.Gender = gender
	sess.Feed().SetFilters(filters)
	saveFilter(ctx, c.Sender().ID, models.FilterTypeGender, gender)

	ack := "Gender filter cleared."
	if gender != "" {
		ack = "Gender filter: " + models.GetGenderDisplayName(gender)
	}
	if err := c.Respond(&tele.CallbackResponse{Text: ack}); err != nil {
		return err
	}
	return showCandidate(ctx, c, sess, false)
}

func handleFeedAgeInput(ctx *Context, c tele.Context, sess *session.Session, state string) error {
	chatID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	filters := sess.Feed().Filters()

	if text == utils.BtnSkip {
		clearUserState(ctx, chatID)
		if state == StateFeedMinAge {
			filters.MinAge = 0
			saveFilter(ctx, chatID, models.FilterTypeMinAge, "")
		} else {
			filters.MaxAge = 0
			saveFilter(ctx, chatID, models.FilterTypeMaxAge, "")
		}
		sess.Feed().SetFilters(filters)
		return showCandidate(ctx, c, sess, false)
	}

	age, err := strconv.Atoi(text)
	if err != nil || age < 0 {
		return c.Send("❌ Enter an age as a number, or Skip to clear the bound.")
	}

	clearUserState(ctx, chatID)

	if state == StateFeedMinAge {
		filters.MinAge = age
		saveFilter(ctx, chatID, models.FilterTypeMinAge, strconv.Itoa(age))
	} else {
		filters.MaxAge = age
		saveFilter(ctx, chatID, models.FilterTypeMaxAge, strconv.Itoa(age))
	}
	sess.Feed().SetFilters(filters)

	return showCandidate(ctx, c, sess, false)
}

func handleFeedSkillsInput(ctx *Context, c tele.Context, sess *session.Session) error {
	chatID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	filters := sess.Feed().Filters()

	clearUserState(ctx, chatID)

	if text == utils.BtnSkip {
		filters.Skills = nil
		saveFilter(ctx, chatID, models.FilterTypeSkills, "")
	} else {
		filters.Skills = models.ParseSkills(text)
		saveFilter(ctx, chatID, models.FilterTypeSkills, models.JoinSkills(filters.Skills))
	}
	sess.Feed().SetFilters(filters)

	return showCandidate(ctx, c, sess, false)
}

func resetFilters(ctx *Context, c tele.Context, sess *session.Session) error {
	sess.Feed().SetSearch("")
	sess.Feed().ResetFilters()

	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Store.ClearFilters(opctx, c.Sender().ID); err != nil {
		ctx.Logger.Warn("failed to clear saved filters",
			zap.Int64("chat_id", c.Sender().ID),
			zap.Error(err),
		)
	}

	if err := c.Send("♻️ Filters reset."); err != nil {
		return err
	}
	return showCandidate(ctx, c, sess, false)
}

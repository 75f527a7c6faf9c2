package utils

import (
	"fmt"
	"sort"
	"strings"

	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/feed"
	"devconnect-bot/internal/models"
	"devconnect-bot/internal/validate"
)

// FormatCandidate renders one feed card.
func FormatCandidate(user *devconnect.User, position, total int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*", EscapeMarkdown(user.FullName())))
	if user.Age > 0 {
		sb.WriteString(fmt.Sprintf(", %d", user.Age))
	}
	sb.WriteString("\n\n")

	if user.Gender != "" {
		sb.WriteString(fmt.Sprintf("🚻 %s\n", EscapeMarkdown(models.GetGenderDisplayName(user.Gender))))
	}

	if len(user.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("💻 *Skills:* %s\n", EscapeMarkdown(strings.Join(user.Skills, ", "))))
	}

	if user.About != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", EscapeMarkdown(TruncateString(user.About, 300))))
	}

	if total > 0 {
		sb.WriteString(fmt.Sprintf("\n📄 Profile %d of %d", position, total))
	}

	return sb.String()
}

// FormatConnection renders one established connection.
func FormatConnection(user *devconnect.User) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🤝 *%s*", EscapeMarkdown(user.FullName())))
	if user.Age > 0 {
		sb.WriteString(fmt.Sprintf(", %d", user.Age))
	}
	sb.WriteString("\n")

	if len(user.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("💻 %s\n", EscapeMarkdown(strings.Join(user.Skills, ", "))))
	}

	if user.About != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", EscapeMarkdown(TruncateString(user.About, 150))))
	}

	return sb.String()
}

// FormatRequest renders one received connection request.
func FormatRequest(request *devconnect.Request) string {
	from := &request.FromUser

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📬 *%s*", EscapeMarkdown(from.FullName())))
	if from.Age > 0 {
		sb.WriteString(fmt.Sprintf(", %d", from.Age))
	}
	sb.WriteString(" wants to connect\n")

	if len(from.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("💻 %s\n", EscapeMarkdown(strings.Join(from.Skills, ", "))))
	}

	if from.About != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", EscapeMarkdown(TruncateString(from.About, 150))))
	}

	return sb.String()
}

// FormatOwnProfile renders the session owner's full profile.
func FormatOwnProfile(user *devconnect.User) string {
	var sb strings.Builder

	sb.WriteString("*👤 Your Profile*\n\n")
	sb.WriteString(fmt.Sprintf("*Name:* %s\n", EscapeMarkdown(user.FullName())))

	if user.EmailID != "" {
		sb.WriteString(fmt.Sprintf("*Email:* %s\n", EscapeMarkdown(user.EmailID)))
	}
	if user.Age > 0 {
		sb.WriteString(fmt.Sprintf("*Age:* %d\n", user.Age))
	}
	if user.Gender != "" {
		sb.WriteString(fmt.Sprintf("*Gender:* %s\n", EscapeMarkdown(models.GetGenderDisplayName(user.Gender))))
	}
	if len(user.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("*Skills:* %s\n", EscapeMarkdown(strings.Join(user.Skills, ", "))))
	}
	if user.About != "" {
		sb.WriteString(fmt.Sprintf("*About:* %s\n", EscapeMarkdown(user.About)))
	}
	if user.PhotoURL != "" {
		sb.WriteString("*Photo:* set\n")
	}

	return sb.String()
}

// FormatFilters renders the active feed filters.
func FormatFilters(search string, filters feed.Filters) string {
	var sb strings.Builder

	sb.WriteString("*🎚 Feed Filters*\n\n")

	if search == "" && filters.Empty() {
		sb.WriteString("_No filters set\\. All fetched profiles are shown\\._")
		return sb.String()
	}

	if search != "" {
		sb.WriteString(fmt.Sprintf("• *Search:* %s\n", EscapeMarkdown(search)))
	}
	if filters.Gender != "" {
		sb.WriteString(fmt.Sprintf("• *Gender:* %s\n", EscapeMarkdown(models.GetGenderDisplayName(filters.Gender))))
	}
	if filters.MinAge > 0 {
		sb.WriteString(fmt.Sprintf("• *Min age:* %d\n", filters.MinAge))
	}
	if filters.MaxAge > 0 {
		sb.WriteString(fmt.Sprintf("• *Max age:* %d\n", filters.MaxAge))
	}
	if len(filters.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("• *Skills:* %s\n", EscapeMarkdown(strings.Join(filters.Skills, ", "))))
	}

	return sb.String()
}

// FormatFieldErrors renders per-field validation messages in a stable order.
func FormatFieldErrors(errs validate.FieldErrors) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("⚠️ *Please fix the following:*\n\n")
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf("• %s\n", EscapeMarkdown(errs[field])))
	}

	return sb.String()
}

func FormatWelcomeMessage(name string) string {
	return fmt.Sprintf(`👋 *Welcome, %s\!*

DevConnect matches developers with developers\. Swipe through profiles, send connection requests, and grow your network\.

🔑 Log in or 📝 sign up to get started\.`, EscapeMarkdown(name))
}

func FormatHelpMessage() string {
	return `*❓ DevConnect Bot*

🔥 *Feed* — browse developer profiles and like, pass, or super like
🤝 *Connections* — people you have matched with
📬 *Requests* — review incoming connection requests
👤 *Profile* — view and edit your profile

*Commands:*
/start — main menu
/feed — browse the feed
/requests — review requests
/profile — your profile
/logout — end your session

Search and filters only narrow what you see locally; they never change what the server sends\.`
}

func FormatNoCandidatesMessage(filtered bool) string {
	if filtered {
		return `👥 *No developers found*

Try adjusting your search or filters\.`
	}
	return `👥 *No developers found*

Check back later for new developers\.`
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// Title uppercases the first ASCII letter, for display of enum values.
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package utils

import (
	"strings"
	"testing"

	"devconnect-bot/internal/api/devconnect"
	"devconnect-bot/internal/validate"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "hello", expected: "hello"},
		{name: "underscore", input: "snake_case", expected: "snake\\_case"},
		{name: "dots and dashes", input: "v1.2-rc", expected: "v1\\.2\\-rc"},
		{name: "brackets", input: "[link](url)", expected: "\\[link\\]\\(url\\)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeMarkdown(tt.input))
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "exactly ten", TruncateString("exactly ten", 11))

	long := strings.Repeat("a", 20)
	truncated := TruncateString(long, 10)
	assert.True(t, strings.HasSuffix(truncated, "..."))
	assert.LessOrEqual(t, len(truncated), 13)
}

func TestFormatCandidate(t *testing.T) {
	user := &devconnect.User{
		FirstName: "Ann",
		LastName:  "Lee",
		Age:       25,
		Gender:    "female",
		Skills:    []string{"Go", "Docker"},
		About:     "Backend developer",
	}

	card := FormatCandidate(user, 2, 5)

	assert.Contains(t, card, "Ann Lee")
	assert.Contains(t, card, "25")
	assert.Contains(t, card, "Go, Docker")
	assert.Contains(t, card, "Profile 2 of 5")
}

func TestFormatCandidateMinimalProfile(t *testing.T) {
	card := FormatCandidate(&devconnect.User{FirstName: "Bob"}, 1, 1)

	assert.Contains(t, card, "Bob")
	assert.NotContains(t, card, "Skills")
}

func TestFormatFieldErrorsSorted(t *testing.T) {
	errs := validate.FieldErrors{
		"password":  "Password is required",
		"age":       "Age is required",
		"firstName": "First name is required",
	}

	out := FormatFieldErrors(errs)

	// messages come out in field-name order
	ageIdx := strings.Index(out, "Age is required")
	nameIdx := strings.Index(out, "First name is required")
	passIdx := strings.Index(out, "Password is required")
	assert.True(t, ageIdx >= 0 && ageIdx < nameIdx && nameIdx < passIdx, out)
}

func TestFormatRequest(t *testing.T) {
	request := &devconnect.Request{
		ID:     "r1",
		Status: "interested",
		FromUser: devconnect.User{
			FirstName: "Cleo",
			Age:       31,
			Skills:    []string{"Python"},
		},
	}

	out := FormatRequest(request)
	assert.Contains(t, out, "Cleo")
	assert.Contains(t, out, "wants to connect")
	assert.Contains(t, out, "Python")
}

func TestMainMenuKeyboardBadge(t *testing.T) {
	loggedOut := MainMenuKeyboard(false, 0)
	loggedIn := MainMenuKeyboard(true, 3)

	assert.NotEqual(t, loggedOut.ReplyKeyboard, loggedIn.ReplyKeyboard)

	var found bool
	for _, row := range loggedIn.ReplyKeyboard {
		for _, btn := range row {
			if strings.Contains(btn.Text, "(3)") {
				found = true
			}
		}
	}
	assert.True(t, found, "pending badge must appear on the requests button")
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "Go", expected: []string{"Go"}},
		{name: "trims whitespace", input: " Go , Docker ,PostgreSQL", expected: []string{"Go", "Docker", "PostgreSQL"}},
		{name: "drops empty entries", input: "Go,,Docker,", expected: []string{"Go", "Docker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSkills(tt.input))
		})
	}
}

func TestJoinSkillsRoundTrip(t *testing.T) {
	skills := []string{"Go", "Docker"}
	assert.Equal(t, skills, ParseSkills(JoinSkills(skills)))
}

func TestParseAge(t *testing.T) {
	assert.Equal(t, 25, ParseAge("25"))
	assert.Equal(t, 0, ParseAge(""))
	assert.Equal(t, 0, ParseAge("abc"))
	assert.Equal(t, 0, ParseAge("-3"))
}

func TestGenderDisplayName(t *testing.T) {
	assert.Equal(t, "Female", GetGenderDisplayName("female"))
	assert.Equal(t, "custom", GetGenderDisplayName("custom"))
}

func TestLinkedAccountLoggedIn(t *testing.T) {
	cookies := "[]"
	assert.False(t, (&LinkedAccount{}).LoggedIn())
	assert.True(t, (&LinkedAccount{SessionCookies: &cookies}).LoggedIn())
}

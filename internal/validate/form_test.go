package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "empty", input: "", valid: false},
		{name: "too short", input: "abc", valid: false},
		{name: "minimum length", input: "Anna", valid: true},
		{name: "longer", input: "Aleksandra", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FirstName(tt.input)
			assert.Equal(t, tt.valid, msg == "", msg)
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "empty", input: "", valid: false},
		{name: "no at sign", input: "not-an-email", valid: false},
		{name: "no domain dot", input: "a@b", valid: false},
		{name: "spaces", input: "a b@c.com", valid: false},
		{name: "short but valid", input: "a@b.co", valid: true},
		{name: "normal", input: "dev@example.com", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Email(tt.input)
			assert.Equal(t, tt.valid, msg == "", msg)
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "empty", input: "", valid: false},
		{name: "too short", input: "Ab1!", valid: false},
		{name: "missing symbol", input: "Abcdef12", valid: false},
		{name: "missing digit", input: "Abcdefg!", valid: false},
		{name: "missing uppercase", input: "abcdef1!", valid: false},
		{name: "missing lowercase", input: "ABCDEF1!", valid: false},
		{name: "all classes", input: "Abcdef1!", valid: true},
		{name: "other allowed symbol", input: "Str0nger&", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Password(tt.input)
			assert.Equal(t, tt.valid, msg == "", msg)
		})
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		input int
		valid bool
	}{
		{name: "zero is unset", input: 0, valid: false},
		{name: "under minimum", input: 17, valid: false},
		{name: "exact minimum", input: 18, valid: true},
		{name: "adult", input: 42, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Age(tt.input)
			assert.Equal(t, tt.valid, msg == "", msg)
		})
	}
}

func TestGender(t *testing.T) {
	assert.Empty(t, Gender("male"))
	assert.Empty(t, Gender("female"))
	assert.Empty(t, Gender("other"))
	assert.NotEmpty(t, Gender(""))
	assert.NotEmpty(t, Gender("unknown"))
}

func TestPhoto(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		valid       bool
	}{
		{name: "jpeg under cap", contentType: "image/jpeg", size: 1 << 20, valid: true},
		{name: "png at cap", contentType: "image/png", size: MaxPhotoBytes, valid: true},
		{name: "over cap", contentType: "image/jpeg", size: MaxPhotoBytes + 1, valid: false},
		{name: "not an image", contentType: "application/pdf", size: 1024, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Photo(tt.contentType, tt.size)
			assert.Equal(t, tt.valid, msg == "", msg)
		})
	}
}

func TestSignupFormSkills(t *testing.T) {
	form := &SignupForm{}

	assert.True(t, form.AddSkill("Go"))
	assert.True(t, form.AddSkill("Docker"))
	assert.False(t, form.AddSkill("Go"), "exact duplicate is a no-op")
	assert.True(t, form.AddSkill("go"), "duplicate check is case-sensitive")
	assert.Equal(t, []string{"Go", "Docker", "go"}, form.Skills)

	form.RemoveSkill("Docker")
	assert.Equal(t, []string{"Go", "go"}, form.Skills)

	form.RemoveSkill("absent")
	assert.Equal(t, []string{"Go", "go"}, form.Skills)
}

func TestSignupFullForm(t *testing.T) {
	valid := &SignupForm{
		FirstName:       "Anna",
		EmailID:         "anna@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		Age:             25,
		Gender:          "female",
	}
	assert.Empty(t, Signup(valid))

	invalid := &SignupForm{
		FirstName:       "abc",
		EmailID:         "not-an-email",
		Password:        "weak",
		ConfirmPassword: "different",
		Age:             16,
		Gender:          "",
	}
	errs := Signup(invalid)
	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "emailId")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "confirmPassword")
	assert.Contains(t, errs, "age")
	assert.Contains(t, errs, "gender")
}

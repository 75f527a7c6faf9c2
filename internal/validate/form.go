// Package validate enforces the client-side form rules. An invalid form is
// rejected with per-field messages before any network call is made.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinFirstNameLen = 4
	MinPasswordLen  = 8
	MinAge          = 18

	// MaxPhotoBytes caps uploads at 5 MiB.
	MaxPhotoBytes = 5 << 20

	passwordSymbols = "@$!%*?&"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var genders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

func GenderOptions() []string {
	return []string{"male", "female", "other"}
}

func IsValidGender(g string) bool {
	return genders[strings.ToLower(g)]
}

// SignupForm accumulates the signup fields across the conversation.
type SignupForm struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	EmailID         string   `json:"emailId"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	About           string   `json:"about"`
	Skills          []string `json:"skills"`
}

// AddSkill appends a skill, keeping the list an ordered set: adding an
// exact (case-sensitive) duplicate is a no-op.
func (f *SignupForm) AddSkill(skill string) bool {
	for _, s := range f.Skills {
		if s == skill {
			return false
		}
	}
	f.Skills = append(f.Skills, skill)
	return true
}

// RemoveSkill filters the list by exact value.
func (f *SignupForm) RemoveSkill(skill string) {
	kept := f.Skills[:0]
	for _, s := range f.Skills {
		if s != skill {
			kept = append(kept, s)
		}
	}
	f.Skills = kept
}

// FieldErrors maps field name to validation message.
type FieldErrors map[string]string

// Signup checks the whole form. An empty result means the form may be
// submitted.
func Signup(f *SignupForm) FieldErrors {
	errs := make(FieldErrors)

	if msg := FirstName(f.FirstName); msg != "" {
		errs["firstName"] = msg
	}
	if msg := Email(f.EmailID); msg != "" {
		errs["emailId"] = msg
	}
	if msg := Password(f.Password); msg != "" {
		errs["password"] = msg
	}
	if f.ConfirmPassword == "" {
		errs["confirmPassword"] = "Please confirm your password"
	} else if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if msg := Age(f.Age); msg != "" {
		errs["age"] = msg
	}
	if msg := Gender(f.Gender); msg != "" {
		errs["gender"] = msg
	}

	return errs
}

func FirstName(name string) string {
	if name == "" {
		return "First name is required"
	}
	if len(name) < MinFirstNameLen {
		return fmt.Sprintf("First name must be at least %d characters", MinFirstNameLen)
	}
	return ""
}

func Email(email string) string {
	if email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return "Email is invalid"
	}
	return ""
}

// Password requires length and one character from each of four classes.
func Password(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < MinPasswordLen {
		return fmt.Sprintf("Password must be at least %d characters", MinPasswordLen)
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	if !lower || !upper || !digit || !symbol {
		return "Password must contain uppercase, lowercase, number and special character"
	}

	return ""
}

func Age(age int) string {
	if age == 0 {
		return "Age is required"
	}
	if age < MinAge {
		return fmt.Sprintf("You must be at least %d years old", MinAge)
	}
	return ""
}

func Gender(gender string) string {
	if gender == "" {
		return "Please select your gender"
	}
	if !IsValidGender(gender) {
		return "Gender must be one of: male, female, other"
	}
	return ""
}

// Photo checks the attachment before any preview or upload.
func Photo(contentType string, size int64) string {
	if !strings.HasPrefix(contentType, "image/") {
		return "Photo must be an image"
	}
	if size > MaxPhotoBytes {
		return "Photo must be 5 MB or smaller"
	}
	return ""
}

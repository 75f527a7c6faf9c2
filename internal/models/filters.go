package models

import (
	"strconv"
	"strings"
	"time"
)

// FeedFilter is one saved client-side feed predicate, upserted per type.
type FeedFilter struct {
	ID          int64     `db:"id"`
	ChatID      int64     `db:"chat_id"`
	FilterType  string    `db:"filter_type"`
	FilterValue string    `db:"filter_value"`
	CreatedAt   time.Time `db:"created_at"`
}

const (
	FilterTypeSearch = "search"
	FilterTypeGender = "gender"
	FilterTypeMinAge = "min_age"
	FilterTypeMaxAge = "max_age"
	FilterTypeSkills = "skills" // comma-separated list
)

var GenderDisplayNames = map[string]string{
	"male":   "Male",
	"female": "Female",
	"other":  "Other",
}

func GetGenderDisplayName(id string) string {
	if name, ok := GenderDisplayNames[id]; ok {
		return name
	}
	return id
}

// ParseSkills splits a stored comma-separated skill filter.
func ParseSkills(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func JoinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

// ParseAge parses a stored age bound; zero means unset.
func ParseAge(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

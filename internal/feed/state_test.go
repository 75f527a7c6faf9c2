package feed

import (
	"fmt"
	"testing"

	"devconnect-bot/internal/api/devconnect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates() []devconnect.User {
	return []devconnect.User{
		{ID: "u1", FirstName: "Ann", Gender: "female", Age: 25, Skills: []string{"Go", "Docker"}},
		{ID: "u2", FirstName: "Bob", Gender: "male", Age: 28, Skills: []string{"React", "TypeScript"}},
		{ID: "u3", FirstName: "Cleo", Gender: "female", Age: 31, Skills: []string{"Python"}},
	}
}

func pageOf(n int) []devconnect.User {
	users := make([]devconnect.User, n)
	for i := range users {
		users[i] = devconnect.User{ID: fmt.Sprintf("p%d", i), FirstName: "Dev"}
	}
	return users
}

func TestSetPagePagination(t *testing.T) {
	s := NewState(10)

	s.SetPage(1, pageOf(10))
	assert.Equal(t, 10, s.Len())
	assert.True(t, s.HasMore(), "full page implies another page may exist")
	assert.Equal(t, 2, s.NextPage())

	s.SetPage(2, pageOf(4))
	assert.Equal(t, 14, s.Len(), "later pages append")
	assert.False(t, s.HasMore(), "short page exhausts the feed")

	// page 1 replaces the list and rewinds the pointer
	require.True(t, s.Next())
	s.SetPage(1, pageOf(10))
	assert.Equal(t, 10, s.Len())
	pos, _ := s.Position()
	assert.Equal(t, 1, pos)
}

func TestSetPageEmptyPageExhausts(t *testing.T) {
	s := NewState(10)

	s.SetPage(1, nil)

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.HasMore())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestLowWater(t *testing.T) {
	s := NewState(10)

	s.SetPage(1, pageOf(10))
	assert.False(t, s.LowWater())

	for _, id := range []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6"} {
		s.Remove(id)
	}
	assert.True(t, s.LowWater(), "3 left out of a full page")

	s.SetPage(2, pageOf(2))
	assert.False(t, s.LowWater(), "exhausted feed never asks for more")
}

func TestSearchFilter(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{name: "empty matches all", search: "", expected: []string{"u1", "u2", "u3"}},
		{name: "first name substring", search: "ann", expected: []string{"u1"}},
		{name: "skill substring", search: "script", expected: []string{"u2"}},
		{name: "case insensitive", search: "GO", expected: []string{"u1"}},
		{name: "no match", search: "rust", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(10)
			s.SetPage(1, candidates())
			s.SetSearch(tt.search)

			visible := s.Filtered()
			ids := make([]string, 0, len(visible))
			for _, u := range visible {
				ids = append(ids, u.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name     string
		filters  Filters
		expected []string
	}{
		{name: "gender exact", filters: Filters{Gender: "female"}, expected: []string{"u1", "u3"}},
		{name: "min age inclusive", filters: Filters{MinAge: 28}, expected: []string{"u2", "u3"}},
		{name: "max age inclusive", filters: Filters{MaxAge: 28}, expected: []string{"u1", "u2"}},
		{name: "min age excludes everyone", filters: Filters{MinAge: 40}, expected: []string{}},
		{name: "zero bounds are unset", filters: Filters{}, expected: []string{"u1", "u2", "u3"}},
		{name: "skill substring", filters: Filters{Skills: []string{"react"}}, expected: []string{"u2"}},
		{name: "any filter skill suffices", filters: Filters{Skills: []string{"rust", "python"}}, expected: []string{"u3"}},
		{name: "combined", filters: Filters{Gender: "female", MinAge: 30}, expected: []string{"u3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(10)
			s.SetPage(1, candidates())
			s.SetFilters(tt.filters)

			visible := s.Filtered()
			ids := make([]string, 0, len(visible))
			for _, u := range visible {
				ids = append(ids, u.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestNavigationBounds(t *testing.T) {
	s := NewState(10)
	s.SetPage(1, candidates())

	assert.False(t, s.Prev(), "already at the first candidate")

	require.True(t, s.Next())
	require.True(t, s.Next())
	assert.False(t, s.Next(), "already at the last candidate")

	pos, total := s.Position()
	assert.Equal(t, 3, pos)
	assert.Equal(t, 3, total)
}

func TestRemoveClampsIndex(t *testing.T) {
	s := NewState(10)
	s.SetPage(1, candidates())

	// point at the last candidate, then remove it
	require.True(t, s.Next())
	require.True(t, s.Next())
	s.Remove("u3")

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "u2", current.ID)

	s.Remove("u2")
	s.Remove("u1")
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestFilterChangeRewindsPointer(t *testing.T) {
	s := NewState(10)
	s.SetPage(1, candidates())
	require.True(t, s.Next())

	s.SetFilters(Filters{Gender: "female"})

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "u1", current.ID)
}

func TestResetDropsEverything(t *testing.T) {
	s := NewState(10)
	s.SetPage(1, candidates())
	s.SetSearch("ann")
	s.SetFilters(Filters{Gender: "female"})

	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Search())
	assert.True(t, s.Filters().Empty())
	assert.True(t, s.HasMore())
	assert.Equal(t, 1, s.NextPage())
}

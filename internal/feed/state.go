// Package feed keeps the locally paginated candidate list for one session:
// the fetched profiles, client-side filter predicates, and a current-index
// pointer into the filtered view.
package feed

import (
	"strings"
	"sync"

	"devconnect-bot/internal/api/devconnect"
)

// lowWaterMark triggers a proactive fetch of the next page.
const lowWaterMark = 3

// Filters are the client-side-only predicates. They affect what is shown,
// never what is fetched.
type Filters struct {
	Gender string
	MinAge int
	MaxAge int
	Skills []string
}

func (f Filters) Empty() bool {
	return f.Gender == "" && f.MinAge == 0 && f.MaxAge == 0 && len(f.Skills) == 0
}

// State holds one session's feed. The list is in-memory only and is dropped
// on session end; acted-upon candidates are removed after the backend
// acknowledges the action.
type State struct {
	mu       sync.Mutex
	users    []devconnect.User
	page     int
	pageSize int
	hasMore  bool
	index    int
	search   string
	filters  Filters
}

func NewState(pageSize int) *State {
	return &State{
		pageSize: pageSize,
		page:     0,
		hasMore:  true,
	}
}

// SetPage records a fetched page: page 1 replaces the list, later pages
// append. A page shorter than the page size (including empty) exhausts the
// feed.
func (s *State) SetPage(page int, items []devconnect.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page == 1 {
		s.users = append([]devconnect.User(nil), items...)
		s.index = 0
	} else {
		s.users = append(s.users, items...)
	}

	s.page = page
	s.hasMore = len(items) == s.pageSize
}

// NextPage is the page number to fetch next.
func (s *State) NextPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page + 1
}

func (s *State) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *State) PageSize() int {
	return s.pageSize
}

func (s *State) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// LowWater reports that the local list is nearly drained and another page
// should be fetched.
func (s *State) LowWater() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users) <= lowWaterMark && s.hasMore
}

func (s *State) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
	s.index = 0
}

func (s *State) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

func (s *State) SetFilters(f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.index = 0
}

func (s *State) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *State) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = Filters{}
	s.search = ""
	s.index = 0
}

// Reset drops all feed state, used on logout.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.page = 0
	s.hasMore = true
	s.index = 0
	s.search = ""
	s.filters = Filters{}
}

// Filtered recomputes the visible list from the full local list. A profile
// matches iff it passes ALL of: search term on name-or-any-skill
// (case-insensitive substring), exact gender or unset, inclusive age bounds
// or unset, and any filter skill substring-matching any profile skill or no
// skill filter.
func (s *State) Filtered() []devconnect.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered()
}

func (s *State) filtered() []devconnect.User {
	out := make([]devconnect.User, 0, len(s.users))
	for _, u := range s.users {
		if s.matches(&u) {
			out = append(out, u)
		}
	}
	return out
}

func (s *State) matches(u *devconnect.User) bool {
	if s.search != "" {
		term := strings.ToLower(s.search)
		ok := strings.Contains(strings.ToLower(u.FirstName), term)
		for _, skill := range u.Skills {
			if ok {
				break
			}
			ok = strings.Contains(strings.ToLower(skill), term)
		}
		if !ok {
			return false
		}
	}

	if s.filters.Gender != "" && u.Gender != s.filters.Gender {
		return false
	}

	if s.filters.MinAge != 0 && u.Age < s.filters.MinAge {
		return false
	}
	if s.filters.MaxAge != 0 && u.Age > s.filters.MaxAge {
		return false
	}

	if len(s.filters.Skills) > 0 {
		ok := false
		for _, want := range s.filters.Skills {
			for _, have := range u.Skills {
				if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
					ok = true
					break
				}
			}
			if ok {
				break
			}
		}
		if !ok {
			return false
		}
	}

	return true
}

// Current returns the candidate under the index pointer, clamped into the
// filtered view's bounds.
func (s *State) Current() (devconnect.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := s.filtered()
	if len(visible) == 0 {
		return devconnect.User{}, false
	}

	if s.index >= len(visible) {
		s.index = len(visible) - 1
	}
	if s.index < 0 {
		s.index = 0
	}

	return visible[s.index], true
}

// Position reports the 1-based index and size of the filtered view.
func (s *State) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := s.filtered()
	if len(visible) == 0 {
		return 0, 0
	}
	idx := s.index
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	return idx + 1, len(visible)
}

// Next advances the pointer. An out-of-bounds move is a no-op and returns
// false.
func (s *State) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := s.filtered()
	if s.index >= len(visible)-1 {
		return false
	}
	s.index++
	return true
}

// Prev moves the pointer back. An out-of-bounds move is a no-op and returns
// false.
func (s *State) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// Remove drops the acted-upon candidate from the local list and clamps the
// index to the new filtered bounds.
func (s *State) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept

	if visible := s.filtered(); s.index >= len(visible) && s.index > 0 {
		s.index = len(visible) - 1
		if s.index < 0 {
			s.index = 0
		}
	}
}

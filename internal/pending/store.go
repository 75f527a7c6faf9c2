// Package pending holds the client-side counter of received, unreviewed
// connection requests. The count is a best-effort mirror of server truth:
// optimistic increments and decrements apply in call order between
// refreshes, and a successful refresh unconditionally overwrites the count
// with the server-derived value.
package pending

import (
	"context"
	"sync"
)

// FetchFunc returns the current number of received pending requests.
type FetchFunc func(ctx context.Context) (int, error)

// Store is the shared pending-request counter. All mutations are serialized
// by a mutex; there is no debouncing or request cancellation, so a slow
// in-flight refresh can be overwritten by a later optimistic mutation.
type Store struct {
	mu      sync.Mutex
	count   int
	loading bool
	err     error

	fetch FetchFunc
}

func New(fetch FetchFunc) *Store {
	return &Store{fetch: fetch}
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error recorded by the last failed refresh, cleared by the
// next refresh attempt.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) Increment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
}

// Decrement lowers the count by one, floored at zero.
func (s *Store) Decrement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count > 0 {
		s.count--
	}
}

// Set overwrites the count. Negative values clamp to zero.
func (s *Store) Set(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.count = n
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = 0
	s.err = nil
}

// Refresh fetches the received-pending list length and sets the count to it.
// On failure the count stays stale-but-present and the error is recorded.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	n, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err
		return err
	}

	if n < 0 {
		n = 0
	}
	s.count = n

	return nil
}

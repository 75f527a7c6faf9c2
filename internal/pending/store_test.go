package pending

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMutations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *Store)
		expected int
	}{
		{
			name: "increment from zero",
			mutate: func(s *Store) {
				s.Increment()
			},
			expected: 1,
		},
		{
			name: "decrement floors at zero",
			mutate: func(s *Store) {
				s.Decrement()
				s.Decrement()
			},
			expected: 0,
		},
		{
			name: "decrement after increments",
			mutate: func(s *Store) {
				s.Increment()
				s.Increment()
				s.Decrement()
			},
			expected: 1,
		},
		{
			name: "set overwrites",
			mutate: func(s *Store) {
				s.Increment()
				s.Set(7)
			},
			expected: 7,
		},
		{
			name: "set clamps negative input",
			mutate: func(s *Store) {
				s.Set(-3)
			},
			expected: 0,
		},
		{
			name: "clear resets",
			mutate: func(s *Store) {
				s.Set(5)
				s.Clear()
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			tt.mutate(s)
			assert.Equal(t, tt.expected, s.Count())
		})
	}
}

func TestStoreRefreshOverwritesLocalDrift(t *testing.T) {
	s := New(func(ctx context.Context) (int, error) {
		return 4, nil
	})

	// local drift accumulated between refreshes
	s.Increment()
	s.Increment()
	s.Increment()

	err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count())
	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())
}

func TestStoreRefreshFailureKeepsStaleCount(t *testing.T) {
	fetchErr := errors.New("backend unavailable")
	s := New(func(ctx context.Context) (int, error) {
		return 0, fetchErr
	})

	s.Set(3)

	err := s.Refresh(context.Background())
	require.Error(t, err)

	assert.Equal(t, 3, s.Count(), "failed refresh must not clobber the last known count")
	assert.ErrorIs(t, s.Err(), fetchErr)
	assert.False(t, s.Loading())
}

func TestStoreClearResetsError(t *testing.T) {
	s := New(func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})

	_ = s.Refresh(context.Background())
	require.Error(t, s.Err())

	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.NoError(t, s.Err())
}

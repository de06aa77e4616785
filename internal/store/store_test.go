package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/league-archive/internal/snapshots"
)

func TestStoreEmpty(t *testing.T) {
	s := New()
	ds, ok := s.Current()
	assert.False(t, ok)
	assert.Nil(t, ds)
}

func TestStoreApplyIf(t *testing.T) {
	s := New()
	token := s.Begin()
	ds := &snapshots.Dataset{Generation: "gen-1"}

	assert.True(t, s.ApplyIf(token, ds))

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "gen-1", current.Generation)
}

func TestStoreDiscardsStaleLoad(t *testing.T) {
	s := New()

	oldToken := s.Begin()
	newToken := s.Begin()

	// The newer load finishes first.
	assert.True(t, s.ApplyIf(newToken, &snapshots.Dataset{Generation: "new"}))

	// The older load finishing later must not clobber it.
	assert.False(t, s.ApplyIf(oldToken, &snapshots.Dataset{Generation: "old"}))

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "new", current.Generation)
}

func TestStoreTokenReuseRejected(t *testing.T) {
	s := New()
	token := s.Begin()
	require.True(t, s.ApplyIf(token, &snapshots.Dataset{Generation: "first"}))

	// A token older than the latest Begin is stale even if unused.
	s.Begin()
	assert.False(t, s.ApplyIf(token, &snapshots.Dataset{Generation: "replay"}))
}

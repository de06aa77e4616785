package store

import (
	"sync"

	"github.com/gridironlabs/league-archive/internal/snapshots"
)

// ArchiveStore holds the current immutable dataset and swaps it atomically
// on each successful load. Reads never see a half-applied refresh.
//
// Loads are tagged with a request token taken from Begin; a load whose token
// has been superseded by a newer request is discarded at ApplyIf rather than
// clobbering fresher data.
type ArchiveStore struct {
	mu      sync.RWMutex
	dataset *snapshots.Dataset
	token   uint64
}

func New() *ArchiveStore {
	return &ArchiveStore{}
}

// Current returns the active dataset, or false before the first load.
func (s *ArchiveStore) Current() (*snapshots.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.dataset != nil
}

// Begin registers a new load request and returns its token. Any in-flight
// load holding an older token becomes stale.
func (s *ArchiveStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	return s.token
}

// ApplyIf installs the dataset only when token is still the newest request.
// Returns false for a stale load.
func (s *ArchiveStore) ApplyIf(token uint64, ds *snapshots.Dataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.dataset = ds
	return true
}

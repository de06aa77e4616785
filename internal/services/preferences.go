package services

import (
	"context"
	"fmt"
)

// Preferences are the viewer session settings persisted per client:
// selected season and tab, favorite players. The viewer keeps these in
// browser storage; this mirrors them server-side with the same
// read/write/default-fallback semantics.
type Preferences struct {
	SelectedSeason int      `json:"selected_season"`
	SelectedTab    string   `json:"selected_tab"`
	Favorites      []string `json:"favorites"`
}

// PreferencesUpdate carries a partial update; nil fields are left unchanged.
type PreferencesUpdate struct {
	SelectedSeason *int      `json:"selected_season"`
	SelectedTab    *string   `json:"selected_tab"`
	Favorites      *[]string `json:"favorites"`
}

const defaultTab = "summary"

// DefaultPreferences returns the fallback used before a client has saved
// anything; latestSeason of 0 means no dataset is loaded yet.
func DefaultPreferences(latestSeason int) Preferences {
	return Preferences{
		SelectedSeason: latestSeason,
		SelectedTab:    defaultTab,
		Favorites:      []string{},
	}
}

// PreferencesService is a small key-value store over the cache backend.
// Entries are written on change and read lazily with a default fallback.
type PreferencesService struct {
	cache *CacheService
}

func NewPreferencesService(cache *CacheService) *PreferencesService {
	return &PreferencesService{cache: cache}
}

// Get returns the client's preferences, falling back to defaults when
// nothing is stored or the backend is unreachable.
func (s *PreferencesService) Get(ctx context.Context, clientID string, latestSeason int) Preferences {
	prefs := DefaultPreferences(latestSeason)
	if s.cache == nil || clientID == "" {
		return prefs
	}
	var stored Preferences
	if err := s.cache.Get(ctx, PreferencesCacheKey(clientID), &stored); err == nil {
		prefs = stored
		if prefs.Favorites == nil {
			prefs.Favorites = []string{}
		}
	}
	return prefs
}

// Update applies a partial update and persists the result. Preferences
// never expire; they live until reset.
func (s *PreferencesService) Update(ctx context.Context, clientID string, latestSeason int, update PreferencesUpdate) (Preferences, error) {
	if clientID == "" {
		return Preferences{}, fmt.Errorf("client id required")
	}
	prefs := s.Get(ctx, clientID, latestSeason)

	if update.SelectedSeason != nil {
		prefs.SelectedSeason = *update.SelectedSeason
	}
	if update.SelectedTab != nil {
		prefs.SelectedTab = *update.SelectedTab
	}
	if update.Favorites != nil {
		prefs.Favorites = *update.Favorites
	}
	if prefs.Favorites == nil {
		prefs.Favorites = []string{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, PreferencesCacheKey(clientID), prefs, 0); err != nil {
			return prefs, err
		}
	}
	return prefs, nil
}

// Reset clears the stored preferences and returns the defaults.
func (s *PreferencesService) Reset(ctx context.Context, clientID string, latestSeason int) (Preferences, error) {
	if s.cache != nil && clientID != "" {
		if err := s.cache.Delete(ctx, PreferencesCacheKey(clientID)); err != nil {
			return Preferences{}, err
		}
	}
	return DefaultPreferences(latestSeason), nil
}

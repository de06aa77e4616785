package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/models"
	"github.com/gridironlabs/league-archive/internal/snapshots"
	"github.com/gridironlabs/league-archive/internal/stats"
	"github.com/gridironlabs/league-archive/internal/store"
)

// ErrNoData is returned before the first successful snapshot load.
var ErrNoData = errors.New("no dataset loaded")

// ErrPlayerNotFound is returned when an identifier resolves to nothing and
// no fallback synthesis applies.
var ErrPlayerNotFound = errors.New("player not found")

// ErrSeasonNotFound is returned for a season with no loaded summary.
var ErrSeasonNotFound = errors.New("season not found")

// cacheSetRetries bounds the write-through retry for derived aggregates; a
// cache write that still fails only costs a recompute on the next request.
const cacheSetRetries = 2

// ArchiveService answers every read query of the API from the current
// dataset. All aggregation is pure over the immutable dataset; derived
// results are cached per dataset generation.
type ArchiveService struct {
	store    *store.ArchiveStore
	cache    *CacheService
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewArchiveService(archiveStore *store.ArchiveStore, cache *CacheService, cacheTTL time.Duration, logger *logrus.Logger) *ArchiveService {
	return &ArchiveService{
		store:    archiveStore,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *ArchiveService) dataset() (*snapshots.Dataset, error) {
	ds, ok := s.store.Current()
	if !ok {
		return nil, ErrNoData
	}
	return ds, nil
}

// Status reports current dataset health.
func (s *ArchiveService) Status() (models.DatasetStatus, error) {
	ds, err := s.dataset()
	if err != nil {
		return models.DatasetStatus{}, err
	}
	return ds.Status(), nil
}

// Seasons lists the loaded seasons in ascending order.
func (s *ArchiveService) Seasons() ([]int, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return append([]int(nil), ds.Seasons...), nil
}

// ResolvePlayer resolves any known identifier or name to its canonical
// record, synthesizing a fallback record for unknown identifiers.
func (s *ArchiveService) ResolvePlayer(id string) (models.PlayerRecord, error) {
	ds, err := s.dataset()
	if err != nil {
		return models.PlayerRecord{}, err
	}
	if id == "" {
		return models.PlayerRecord{}, ErrPlayerNotFound
	}
	return ds.Index.Resolve(id), nil
}

// LookupPlayer is ResolvePlayer without fallback synthesis.
func (s *ArchiveService) LookupPlayer(id string) (models.PlayerRecord, error) {
	ds, err := s.dataset()
	if err != nil {
		return models.PlayerRecord{}, err
	}
	player, ok := ds.Index.Lookup(id)
	if !ok {
		return models.PlayerRecord{}, ErrPlayerNotFound
	}
	return player, nil
}

// PlayerSeasons computes the player's per-season aggregates.
func (s *ArchiveService) PlayerSeasons(id string) ([]models.SeasonStat, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	player := ds.Index.Resolve(id)

	cacheKey := SeasonStatsCacheKey(ds.Generation, player.PlayerID)
	var cached []models.SeasonStat
	if s.cache != nil && s.cache.GetSimple(cacheKey, &cached) == nil {
		return cached, nil
	}

	seasons := stats.SeasonTotals(ds.SeasonRows, identity.IdentitySet(player), identity.NameSet(player))
	if s.cache != nil && len(seasons) > 0 {
		s.cache.SetWithRetry(context.Background(), cacheKey, seasons, s.cacheTTL, cacheSetRetries)
	}
	return seasons, nil
}

// PlayerCareer computes (or passes through) the player's career totals.
func (s *ArchiveService) PlayerCareer(id string) (models.CareerStat, error) {
	ds, err := s.dataset()
	if err != nil {
		return models.CareerStat{}, err
	}
	player := ds.Index.Resolve(id)
	idSet, nameSet := identity.IdentitySet(player), identity.NameSet(player)

	cacheKey := CareerCacheKey(ds.Generation, player.PlayerID)
	var cached models.CareerStat
	if s.cache != nil && s.cache.GetSimple(cacheKey, &cached) == nil {
		return cached, nil
	}

	seasons := stats.SeasonTotals(ds.SeasonRows, idSet, nameSet)
	career := stats.CareerTotals(ds.CareerRows, seasons, idSet, nameSet)
	if s.cache != nil {
		s.cache.SetWithRetry(context.Background(), cacheKey, career, s.cacheTTL, cacheSetRetries)
	}
	return career, nil
}

// PlayerBoomBust summarizes weekly scoring variability. A season of 0 uses
// the full career weekly series, which is preferred when available.
func (s *ArchiveService) PlayerBoomBust(id string, season int) (models.BoomBustSummary, error) {
	ds, err := s.dataset()
	if err != nil {
		return models.BoomBustSummary{}, err
	}
	player := ds.Index.Resolve(id)

	cacheKey := BoomBustCacheKey(ds.Generation, player.PlayerID, season)
	var cached models.BoomBustSummary
	if s.cache != nil && s.cache.GetSimple(cacheKey, &cached) == nil {
		return cached, nil
	}

	var weekly []models.StatRow
	if season > 0 {
		weekly = ds.Weekly[season]
	} else {
		weekly = ds.AllWeekly()
	}

	summary := stats.BoomBust(weekly, identity.IdentitySet(player), identity.NameSet(player), player.Position)
	if s.cache != nil && summary.Weeks > 0 {
		s.cache.SetWithRetry(context.Background(), cacheKey, summary, s.cacheTTL, cacheSetRetries)
	}
	return summary, nil
}

// PlayerGameLog returns the player's normalized weekly rows for one season,
// week ascending.
func (s *ArchiveService) PlayerGameLog(id string, season int) ([]models.StatRow, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	player := ds.Index.Resolve(id)

	rows := stats.FilterRows(ds.Weekly[season], identity.IdentitySet(player), identity.NameSet(player))
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Week < rows[b].Week })
	return rows, nil
}

// PlayerTransactions returns the transactions referencing the player, most
// recent first.
func (s *ArchiveService) PlayerTransactions(id string) ([]models.TransactionEntry, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	player := ds.Index.Resolve(id)

	entries := stats.FilterTransactions(ds.Transactions, identity.IdentitySet(player), identity.NameSet(player))
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Season != entries[b].Season {
			return entries[a].Season > entries[b].Season
		}
		return entries[a].Week > entries[b].Week
	})
	return entries, nil
}

// Leaderboard returns a season's player rows filtered by position and a
// free-text search, points descending.
func (s *ArchiveService) Leaderboard(season int, position, search string) ([]models.StatRow, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	position = strings.ToUpper(strings.TrimSpace(position))
	searchNorm := identity.NormalizeName(search)

	var rows []models.StatRow
	for i := range ds.SeasonRows {
		row := &ds.SeasonRows[i]
		if !row.IsSeason() || int(row.Season) != season {
			continue
		}
		if position != "" && strings.ToUpper(row.Position) != position {
			continue
		}
		if searchNorm != "" && !strings.Contains(identity.NormalizeName(rowDisplayName(ds.Index, row)), searchNorm) {
			continue
		}
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return float64(rows[a].Points) > float64(rows[b].Points)
	})
	return rows, nil
}

// rowDisplayName returns a searchable name for a stat row: its own name
// fields when present, otherwise the directory name behind any of its IDs.
// Rows exported with only IDs stay findable by player name.
func rowDisplayName(ix *identity.Index, row *models.StatRow) string {
	if name := row.BestName(); name != "" {
		return name
	}
	for _, id := range []string{row.SleeperID, row.PlayerID, row.GsisID, row.EspnID} {
		if id == "" {
			continue
		}
		if p, ok := ix.Lookup(id); ok {
			return p.DisplayName
		}
	}
	return ""
}

// HeadToHead derives the rivalry ledger for two owner identities.
func (s *ArchiveService) HeadToHead(ownerA, ownerB string) (models.HeadToHeadRecord, error) {
	ds, err := s.dataset()
	if err != nil {
		return models.HeadToHeadRecord{}, err
	}

	cacheKey := HeadToHeadCacheKey(ds.Generation, identity.NormalizeOwner(ownerA), identity.NormalizeOwner(ownerB))
	var cached models.HeadToHeadRecord
	if s.cache != nil && s.cache.GetSimple(cacheKey, &cached) == nil {
		return cached, nil
	}

	record := stats.HeadToHead(ds.Matchups, ownerA, ownerB)
	if s.cache != nil && len(record.Matchups) > 0 {
		s.cache.SetWithRetry(context.Background(), cacheKey, record, s.cacheTTL, cacheSetRetries)
	}
	return record, nil
}

// AllTimeStandings accumulates every owner's record across all seasons.
func (s *ArchiveService) AllTimeStandings() ([]models.StandingsEntry, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	cacheKey := StandingsCacheKey(ds.Generation)
	var cached []models.StandingsEntry
	if s.cache != nil && s.cache.GetSimple(cacheKey, &cached) == nil {
		return cached, nil
	}

	standings := stats.AllTimeStandings(ds.Summaries)
	if s.cache != nil && len(standings) > 0 {
		s.cache.SetWithRetry(context.Background(), cacheKey, standings, s.cacheTTL, cacheSetRetries)
	}
	return standings, nil
}

// SeasonSummary returns the raw summary for one season.
func (s *ArchiveService) SeasonSummary(season int) (models.SeasonSummary, error) {
	ds, err := s.dataset()
	if err != nil {
		return models.SeasonSummary{}, err
	}
	for i := range ds.Summaries {
		if int(ds.Summaries[i].Season) == season {
			return ds.Summaries[i], nil
		}
	}
	return models.SeasonSummary{}, ErrSeasonNotFound
}

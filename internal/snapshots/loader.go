package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/models"
	"github.com/gridironlabs/league-archive/internal/stats"
)

// Dataset is one immutable, fully-joined load of the snapshot export.
// Aggregation is a pure function of a complete Dataset, so a new load
// replaces the old one wholesale.
type Dataset struct {
	Generation string
	LoadedAt   time.Time
	Seasons    []int

	Players      []models.PlayerRecord
	Weekly       map[int][]models.StatRow
	SeasonRows   []models.StatRow
	CareerRows   []models.StatRow
	Summaries    []models.SeasonSummary
	Matchups     []models.MatchupRecord
	Transactions []models.TransactionEntry

	Index *identity.Index

	// Errors records the first failure per data category; the rest of the
	// dataset still loads.
	Errors map[string]string
}

// Partial reports whether any data category failed to load.
func (d *Dataset) Partial() bool {
	return len(d.Errors) > 0
}

// Degraded lists the failed data categories in stable order.
func (d *Dataset) Degraded() []string {
	if len(d.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(d.Errors))
	for category := range d.Errors {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Status summarizes load health for the API.
func (d *Dataset) Status() models.DatasetStatus {
	return models.DatasetStatus{
		Generation: d.Generation,
		LoadedAt:   d.LoadedAt,
		Seasons:    d.Seasons,
		Partial:    d.Partial(),
		Degraded:   d.Degraded(),
		Errors:     d.Errors,
	}
}

// AllWeekly returns every weekly row across all loaded seasons, oldest
// season first. Used for career-series boom/bust.
func (d *Dataset) AllWeekly() []models.StatRow {
	var out []models.StatRow
	for _, season := range d.Seasons {
		out = append(out, d.Weekly[season]...)
	}
	return out
}

// Loader performs one fan-out fetch of every snapshot category and joins the
// results into a Dataset.
type Loader struct {
	source   Source
	seasons  []int
	fallback identity.FallbackSource
	logger   *logrus.Logger
}

func NewLoader(source Source, seasons []int, fallback identity.FallbackSource, logger *logrus.Logger) *Loader {
	return &Loader{
		source:   source,
		seasons:  seasons,
		fallback: fallback,
		logger:   logger,
	}
}

// fetchResult carries one category fetch back to the join point.
type fetchResult struct {
	category string
	season   int
	payload  interface{}
	err      error
}

// Load fetches all categories concurrently (one goroutine per category and
// season) and joins them before any aggregation. A failed category is
// recorded and skipped; only a failed player directory, the primary dataset
// every view depends on, fails the load.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	seasons, err := l.resolveSeasons(ctx)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Generation: uuid.NewString(),
		LoadedAt:   time.Now().UTC(),
		Seasons:    seasons,
		Weekly:     make(map[int][]models.StatRow, len(seasons)),
		Errors:     make(map[string]string),
	}

	var wg sync.WaitGroup
	results := make(chan fetchResult, 3+4*len(seasons))

	fetch := func(category string, season int, fn func() (interface{}, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, err := fn()
			results <- fetchResult{category: category, season: season, payload: payload, err: err}
		}()
	}

	fetch(models.CategoryPlayers, 0, func() (interface{}, error) {
		var rows models.PlayerRecords
		err := l.fetchJSON(ctx, filePlayers, &rows)
		return []models.PlayerRecord(rows), err
	})
	fetch(models.CategorySeasonStats, 0, func() (interface{}, error) {
		var rows models.StatRows
		err := l.fetchJSON(ctx, fileSeasonStats, &rows)
		return []models.StatRow(rows), err
	})
	fetch(models.CategoryCareerStats, 0, func() (interface{}, error) {
		var rows models.StatRows
		err := l.fetchJSON(ctx, fileCareerStats, &rows)
		return []models.StatRow(rows), err
	})

	for _, season := range seasons {
		season := season
		fetch(models.CategoryWeeklyStats, season, func() (interface{}, error) {
			var rows models.StatRows
			err := l.fetchJSON(ctx, weeklyStatsFile(season), &rows)
			return []models.StatRow(rows), err
		})
		fetch(models.CategorySummaries, season, func() (interface{}, error) {
			var summary models.SeasonSummary
			err := l.fetchJSON(ctx, summaryFile(season), &summary)
			return summary, err
		})
		fetch(models.CategoryMatchups, season, func() (interface{}, error) {
			var rows models.MatchupRecords
			err := l.fetchJSON(ctx, matchupsFile(season), &rows)
			return []models.MatchupRecord(rows), err
		})
		fetch(models.CategoryTransactions, season, func() (interface{}, error) {
			var rows models.TransactionEntries
			err := l.fetchJSON(ctx, transactionsFile(season), &rows)
			return []models.TransactionEntry(rows), err
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		if result.err != nil {
			// A missing per-season or aggregate-stats file is normal for
			// sparse archives, not a degraded category. The player directory
			// is the exception: without it no identity resolves, so its
			// absence is an error like any other fetch failure.
			if errors.Is(result.err, fs.ErrNotExist) && result.category != models.CategoryPlayers {
				l.logger.Debugf("Snapshot %s season %d not present", result.category, result.season)
				continue
			}
			l.logger.Warnf("Snapshot category %s season %d failed: %v", result.category, result.season, result.err)
			if _, seen := ds.Errors[result.category]; !seen {
				ds.Errors[result.category] = result.err.Error()
			}
			continue
		}
		l.merge(ds, result)
	}

	if msg, failed := ds.Errors[models.CategoryPlayers]; failed {
		return nil, fmt.Errorf("player directory load failed: %s", msg)
	}

	l.join(ds)
	return ds, nil
}

func (l *Loader) fetchJSON(ctx context.Context, name string, dest interface{}) error {
	data, err := l.source.Fetch(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (l *Loader) merge(ds *Dataset, result fetchResult) {
	switch result.category {
	case models.CategoryPlayers:
		ds.Players = result.payload.([]models.PlayerRecord)
	case models.CategorySeasonStats:
		ds.SeasonRows = result.payload.([]models.StatRow)
	case models.CategoryCareerStats:
		ds.CareerRows = result.payload.([]models.StatRow)
	case models.CategoryWeeklyStats:
		ds.Weekly[result.season] = result.payload.([]models.StatRow)
	case models.CategorySummaries:
		summary := result.payload.(models.SeasonSummary)
		if summary.Season == 0 {
			summary.Season = models.FlexInt(result.season)
		}
		ds.Summaries = append(ds.Summaries, summary)
	case models.CategoryMatchups:
		ds.Matchups = append(ds.Matchups, result.payload.([]models.MatchupRecord)...)
	case models.CategoryTransactions:
		ds.Transactions = append(ds.Transactions, result.payload.([]models.TransactionEntry)...)
	}
}

// join runs the post-fetch passes that need the complete set: identity index
// construction, weekly metric normalization, summary ordering, and matchup
// owner backfill.
func (l *Loader) join(ds *Dataset) {
	ds.Index = identity.NewIndex(ds.Players, l.fallback)

	for season, rows := range ds.Weekly {
		ds.Weekly[season] = stats.NormalizeWeekly(rows)
	}

	sort.SliceStable(ds.Summaries, func(a, b int) bool {
		return ds.Summaries[a].Season < ds.Summaries[b].Season
	})

	l.backfillMatchupOwners(ds)

	l.logger.WithFields(logrus.Fields{
		"generation": ds.Generation,
		"players":    len(ds.Players),
		"seasons":    len(ds.Seasons),
		"matchups":   len(ds.Matchups),
		"partial":    ds.Partial(),
	}).Info("Snapshot dataset loaded")
}

// backfillMatchupOwners fills empty matchup owner fields from the season
// summary's roster-to-owner mapping, so head-to-head filtering works on
// older exports that only carried roster IDs.
func (l *Loader) backfillMatchupOwners(ds *Dataset) {
	type rosterKey struct {
		season int
		roster int
	}
	owners := make(map[rosterKey]string)
	for i := range ds.Summaries {
		season := int(ds.Summaries[i].Season)
		for j := range ds.Summaries[i].Teams {
			team := &ds.Summaries[i].Teams[j]
			if team.RosterID > 0 {
				owners[rosterKey{season, int(team.RosterID)}] = team.OwnerIdentity()
			}
		}
	}

	for i := range ds.Matchups {
		m := &ds.Matchups[i]
		season := int(m.Season)
		if m.HomeOwner == "" && m.HomeRosterID > 0 {
			m.HomeOwner = owners[rosterKey{season, int(m.HomeRosterID)}]
		}
		if m.AwayOwner == "" && m.AwayRosterID > 0 {
			m.AwayOwner = owners[rosterKey{season, int(m.AwayRosterID)}]
		}
	}
}

func (l *Loader) resolveSeasons(ctx context.Context) ([]int, error) {
	if len(l.seasons) > 0 {
		seasons := append([]int(nil), l.seasons...)
		sort.Ints(seasons)
		return seasons, nil
	}

	// Prefer the exporter's season index file; fall back to directory
	// discovery for file sources.
	var seasons []int
	if err := l.fetchJSON(ctx, fileSeasonIndex, &seasons); err == nil && len(seasons) > 0 {
		sort.Ints(seasons)
		return seasons, nil
	}
	if lister, ok := l.source.(SeasonLister); ok {
		seasons, err := lister.ListSeasons()
		if err != nil {
			return nil, fmt.Errorf("discover seasons: %w", err)
		}
		if len(seasons) > 0 {
			return seasons, nil
		}
	}
	return nil, fmt.Errorf("no seasons configured and none discoverable")
}

package snapshots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/models"
)

// fakeSource serves snapshots from an in-memory map; absent names behave
// like missing files and entries in fail return a hard error.
type fakeSource struct {
	files map[string]string
	fail  map[string]error
}

func (s *fakeSource) Fetch(_ context.Context, name string) ([]byte, error) {
	if err, ok := s.fail[name]; ok {
		return nil, err
	}
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("read snapshot %s: %w", name, fs.ErrNotExist)
	}
	return []byte(data), nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func archiveFixture() map[string]string {
	return map[string]string{
		"players.json": `[
			{"player_id": "p1", "sleeper_id": "4046", "display_name": "Patrick Mahomes", "position": "QB"},
			{"player_id": "p2", "sleeper_id": "4034", "display_name": "Josh Allen", "position": "QB"}
		]`,
		"season_stats.json": `[
			{"player_id": "p1", "season": 2023, "points": 380.5, "position": "QB", "games": 16, "games_possible": 17}
		]`,
		"career_stats.json": `[]`,
		"weekly_stats_2023.json": `{"rows": [
			{"player_id": "p1", "season": 2023, "week": 1, "position": "QB", "points": "27.5"},
			{"player_id": "p2", "season": 2023, "week": 1, "position": "QB", "points": 22.0}
		]}`,
		"summary_2023.json": `{"season": 2023, "teams": [
			{"team_name": "Team Alice", "owner": "Alice", "roster_id": 1, "wins": 10, "losses": 4, "points_for": 1500.5, "points_against": 1400.0},
			{"team_name": "Team Bob", "owner": "Bob", "roster_id": 2, "wins": 4, "losses": 10, "points_for": 1300.0, "points_against": 1450.0}
		]}`,
		"matchups_2023.json": `[
			{"season": 2023, "week": 1, "home_roster_id": 1, "home_score": 120.5, "away_roster_id": 2, "away_score": 98.0}
		]`,
		"transactions_2023.json": `[
			{"id": "t1", "season": 2023, "week": 2, "type": "waiver", "players": [{"sleeper_id": "4046", "action": "add"}]}
		]`,
	}
}

func newTestLoader(src Source) *Loader {
	return NewLoader(src, []int{2023}, identity.FallbackESPN, testLogger())
}

func TestLoaderFullLoad(t *testing.T) {
	src := &fakeSource{files: archiveFixture()}
	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Generation)
	assert.Equal(t, []int{2023}, ds.Seasons)
	assert.False(t, ds.Partial())
	assert.Empty(t, ds.Degraded())

	require.NotNil(t, ds.Index)
	p, ok := ds.Index.Lookup("4046")
	require.True(t, ok)
	assert.Equal(t, "p1", p.PlayerID)

	// Weekly rows come back normalized: ranks and value-over-replacement
	// are filled in.
	weekly := ds.Weekly[2023]
	require.Len(t, weekly, 2)
	for i := range weekly {
		require.NotNil(t, weekly[i].PositionRank, "row %d", i)
		require.NotNil(t, weekly[i].WAR, "row %d", i)
	}

	// Matchup owners are backfilled from the summary's roster mapping.
	require.Len(t, ds.Matchups, 1)
	assert.Equal(t, "Alice", ds.Matchups[0].HomeOwner)
	assert.Equal(t, "Bob", ds.Matchups[0].AwayOwner)

	require.Len(t, ds.Transactions, 1)
	assert.Equal(t, "t1", ds.Transactions[0].ID)
}

func TestLoaderMissingSeasonFilesAreNotDegraded(t *testing.T) {
	files := archiveFixture()
	delete(files, "matchups_2023.json")
	delete(files, "transactions_2023.json")

	ds, err := newTestLoader(&fakeSource{files: files}).Load(context.Background())
	require.NoError(t, err)

	// Sparse archives are normal: nothing is flagged degraded.
	assert.False(t, ds.Partial())
	assert.Empty(t, ds.Matchups)
	assert.Empty(t, ds.Transactions)
}

func TestLoaderDegradedCategory(t *testing.T) {
	src := &fakeSource{
		files: archiveFixture(),
		fail: map[string]error{
			"season_stats.json": errors.New("upstream 500"),
		},
	}

	ds, err := newTestLoader(src).Load(context.Background())
	require.NoError(t, err)

	assert.True(t, ds.Partial())
	assert.Contains(t, ds.Degraded(), models.CategorySeasonStats)
	assert.Contains(t, ds.Errors[models.CategorySeasonStats], "upstream 500")

	// Unaffected categories still load.
	assert.NotEmpty(t, ds.Weekly[2023])
}

func TestLoaderPlayersFailureFailsLoad(t *testing.T) {
	src := &fakeSource{
		files: archiveFixture(),
		fail: map[string]error{
			"players.json": errors.New("upstream 500"),
		},
	}

	_, err := newTestLoader(src).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player directory")
}

func TestLoaderMissingPlayerDirectoryFailsLoad(t *testing.T) {
	// An absent player directory file must fail the load outright, unlike
	// absent per-season files. A dataset without it would resolve every
	// identity through fallback synthesis.
	files := archiveFixture()
	delete(files, "players.json")

	_, err := newTestLoader(&fakeSource{files: files}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player directory")
}

func TestLoaderMissingAggregateStatsAreNotDegraded(t *testing.T) {
	files := archiveFixture()
	delete(files, "season_stats.json")
	delete(files, "career_stats.json")

	ds, err := newTestLoader(&fakeSource{files: files}).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ds.Partial())
	assert.Empty(t, ds.SeasonRows)
	assert.Empty(t, ds.CareerRows)
}

func TestLoaderSeasonDiscoveryFromIndexFile(t *testing.T) {
	files := archiveFixture()
	files["seasons.json"] = `[2022, 2023]`
	files["weekly_stats_2022.json"] = `[]`

	loader := NewLoader(&fakeSource{files: files}, nil, identity.FallbackESPN, testLogger())
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2023}, ds.Seasons)
}

func TestLoaderNoSeasonsDiscoverable(t *testing.T) {
	loader := NewLoader(&fakeSource{files: map[string]string{}}, nil, identity.FallbackESPN, testLogger())
	_, err := loader.Load(context.Background())
	require.Error(t, err)
}

func TestLoaderMalformedFileIsDegraded(t *testing.T) {
	files := archiveFixture()
	files["weekly_stats_2023.json"] = `{not json`

	ds, err := newTestLoader(&fakeSource{files: files}).Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, ds.Degraded(), models.CategoryWeeklyStats)
}

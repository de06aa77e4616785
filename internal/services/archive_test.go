package services

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/models"
	"github.com/gridironlabs/league-archive/internal/snapshots"
	"github.com/gridironlabs/league-archive/internal/store"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testDataset() *snapshots.Dataset {
	players := []models.PlayerRecord{
		{PlayerID: "p1", SleeperID: "4046", DisplayName: "Patrick Mahomes", Position: "QB"},
		{PlayerID: "p2", SleeperID: "4034", DisplayName: "Josh Allen", Position: "QB"},
	}
	return &snapshots.Dataset{
		Generation: "gen-test",
		LoadedAt:   time.Now().UTC(),
		Seasons:    []int{2022, 2023},
		Players:    players,
		Index:      identity.NewIndex(players, identity.FallbackESPN),
		Weekly: map[int][]models.StatRow{
			2023: {
				{PlayerID: "p1", Season: 2023, Week: 1, Position: "QB", Points: 27.5},
				{PlayerID: "p1", Season: 2023, Week: 2, Position: "QB", Points: 14.0},
				{PlayerID: "p2", Season: 2023, Week: 1, Position: "QB", Points: 22.0},
			},
		},
		SeasonRows: []models.StatRow{
			{PlayerID: "p1", Season: 2023, Position: "QB", Points: 380.5, Games: 16, GamesPossible: 17},
			{PlayerID: "p2", Season: 2023, Position: "QB", Points: 350.0, Games: 17, GamesPossible: 17},
			{PlayerID: "p1", Season: 2022, Position: "QB", Points: 320.0, Games: 17, GamesPossible: 17},
		},
		Summaries: []models.SeasonSummary{
			{Season: 2023, Teams: []models.TeamSeason{
				{Owner: "Alice", Wins: 10, Losses: 4, PointsFor: 1500},
				{Owner: "Bob", Wins: 4, Losses: 10, PointsFor: 1300},
			}},
		},
		Matchups: []models.MatchupRecord{
			{Season: 2023, Week: 1, HomeOwner: "Alice", HomeScore: 120, AwayOwner: "Bob", AwayScore: 98},
		},
		Transactions: []models.TransactionEntry{
			{ID: "t1", Season: 2023, Week: 2, Players: []models.TransactionPlayer{{SleeperID: "4046", Action: "add"}}},
			{ID: "t2", Season: 2023, Week: 5, Players: []models.TransactionPlayer{{SleeperID: "4034", Action: "drop"}}},
		},
		Errors: map[string]string{},
	}
}

func newTestArchiveService(t *testing.T) *ArchiveService {
	t.Helper()
	archiveStore := store.New()
	token := archiveStore.Begin()
	require.True(t, archiveStore.ApplyIf(token, testDataset()))
	return NewArchiveService(archiveStore, nil, time.Minute, testLogger())
}

func TestArchiveServiceNoData(t *testing.T) {
	svc := NewArchiveService(store.New(), nil, time.Minute, testLogger())

	_, err := svc.Seasons()
	assert.ErrorIs(t, err, ErrNoData)
	_, err = svc.PlayerSeasons("4046")
	assert.ErrorIs(t, err, ErrNoData)
	_, err = svc.AllTimeStandings()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestArchiveServiceResolvePlayer(t *testing.T) {
	svc := newTestArchiveService(t)

	player, err := svc.ResolvePlayer("4046")
	require.NoError(t, err)
	assert.Equal(t, "p1", player.PlayerID)

	// Unknown identifiers never fail resolution; they synthesize.
	player, err = svc.ResolvePlayer("999999")
	require.NoError(t, err)
	assert.True(t, player.Synthesized)

	_, err = svc.LookupPlayer("999999")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestArchiveServicePlayerSeasons(t *testing.T) {
	svc := newTestArchiveService(t)

	seasons, err := svc.PlayerSeasons("Patrick Mahomes")
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, 2023, seasons[0].Season)
	assert.InDelta(t, 380.5, seasons[0].Points, 1e-9)
	assert.Equal(t, 1, seasons[0].PositionRank)
}

func TestArchiveServicePlayerCareer(t *testing.T) {
	svc := newTestArchiveService(t)

	career, err := svc.PlayerCareer("4046")
	require.NoError(t, err)
	assert.InDelta(t, 700.5, career.Points, 1e-9)
	assert.Equal(t, 2, career.Seasons)
	assert.False(t, career.Precomputed)
}

func TestArchiveServicePlayerGameLog(t *testing.T) {
	svc := newTestArchiveService(t)

	rows, err := svc.PlayerGameLog("4046", 2023)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.FlexInt(1), rows[0].Week)
	assert.Equal(t, models.FlexInt(2), rows[1].Week)

	rows, err = svc.PlayerGameLog("4046", 2021)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestArchiveServicePlayerBoomBust(t *testing.T) {
	svc := newTestArchiveService(t)

	// Season 0 uses the full career series.
	summary, err := svc.PlayerBoomBust("4046", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Weeks)
	assert.Equal(t, 20.0, summary.Threshold)
}

func TestArchiveServicePlayerTransactions(t *testing.T) {
	svc := newTestArchiveService(t)

	entries, err := svc.PlayerTransactions("4046")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "t1", entries[0].ID)
}

func TestArchiveServiceLeaderboard(t *testing.T) {
	svc := newTestArchiveService(t)

	rows, err := svc.Leaderboard(2023, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "p1", rows[0].PlayerID)

	// Season rows in this fixture carry only IDs; the search must still
	// find them through the identity index.
	rows, err = svc.Leaderboard(2023, "qb", "josh")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].PlayerID)

	rows, err = svc.Leaderboard(2023, "", "mahomes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].PlayerID)

	rows, err = svc.Leaderboard(2023, "", "nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestArchiveServiceHeadToHead(t *testing.T) {
	svc := newTestArchiveService(t)

	record, err := svc.HeadToHead("alice", "BOB")
	require.NoError(t, err)
	assert.Equal(t, 1, record.WinsA)
	assert.Equal(t, 0, record.WinsB)
}

func TestArchiveServiceStandingsAndSummary(t *testing.T) {
	svc := newTestArchiveService(t)

	standings, err := svc.AllTimeStandings()
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "Alice", standings[0].Owner)

	summary, err := svc.SeasonSummary(2023)
	require.NoError(t, err)
	assert.Len(t, summary.Teams, 2)

	_, err = svc.SeasonSummary(2019)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}

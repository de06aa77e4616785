package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/league-archive/internal/models"
)

func summaryWithTeams(season int, teams ...models.TeamSeason) models.SeasonSummary {
	return models.SeasonSummary{Season: models.FlexInt(season), Teams: teams}
}

func teamLine(owner string, wins, losses, ties int, pf, pa float64) models.TeamSeason {
	return models.TeamSeason{
		Owner:         owner,
		Wins:          models.FlexInt(wins),
		Losses:        models.FlexInt(losses),
		Ties:          models.FlexInt(ties),
		PointsFor:     models.FlexFloat(pf),
		PointsAgainst: models.FlexFloat(pa),
	}
}

func TestAllTimeStandings(t *testing.T) {
	summaries := []models.SeasonSummary{
		summaryWithTeams(2020,
			teamLine("Alice", 3, 1, 0, 400, 350),
			teamLine("Bob", 1, 3, 0, 300, 380),
		),
		summaryWithTeams(2021,
			teamLine("Alice", 5, 2, 1, 500, 420),
			teamLine("Bob", 6, 2, 0, 520, 400),
		),
	}

	standings := AllTimeStandings(summaries)
	require.Len(t, standings, 2)

	// Alice: 3-1-0 plus 5-2-1 accumulates to 8-3-1.
	var alice models.StandingsEntry
	for _, e := range standings {
		if e.Owner == "Alice" {
			alice = e
		}
	}
	assert.Equal(t, 8, alice.Wins)
	assert.Equal(t, 3, alice.Losses)
	assert.Equal(t, 1, alice.Ties)
	assert.Equal(t, 2, alice.Seasons)
	assert.InDelta(t, 900.0, alice.PointsFor, 1e-9)
	assert.InDelta(t, 770.0, alice.PointsAgainst, 1e-9)

	// Sorted by total wins descending.
	assert.Equal(t, "Alice", standings[0].Owner)
	assert.Equal(t, "Bob", standings[1].Owner)
}

func TestAllTimeStandingsMergesRenames(t *testing.T) {
	// Same manager, different casing and punctuation across seasons.
	summaries := []models.SeasonSummary{
		summaryWithTeams(2020, teamLine("J.J. Smith", 4, 2, 0, 400, 380)),
		summaryWithTeams(2021, teamLine("jj smith", 6, 1, 0, 450, 360)),
	}

	standings := AllTimeStandings(summaries)
	require.Len(t, standings, 1)
	assert.Equal(t, 10, standings[0].Wins)
	assert.Equal(t, 2, standings[0].Seasons)
	// First-seen raw label is kept for display.
	assert.Equal(t, "J.J. Smith", standings[0].Owner)
}

func TestAllTimeStandingsPointsForTiebreak(t *testing.T) {
	summaries := []models.SeasonSummary{
		summaryWithTeams(2020,
			teamLine("Low", 5, 5, 0, 800, 800),
			teamLine("High", 5, 5, 0, 900, 800),
		),
	}

	standings := AllTimeStandings(summaries)
	require.Len(t, standings, 2)
	assert.Equal(t, "High", standings[0].Owner)
}

func TestAllTimeStandingsOwnerIdentityPriority(t *testing.T) {
	// Owner beats display name beats team name; teams without any identity
	// are skipped.
	summaries := []models.SeasonSummary{
		summaryWithTeams(2020,
			models.TeamSeason{TeamName: "The Crushers", DisplayName: "carol", Wins: 7},
			models.TeamSeason{TeamName: "Leftovers", Wins: 2},
			models.TeamSeason{},
		),
	}

	standings := AllTimeStandings(summaries)
	require.Len(t, standings, 2)
	assert.Equal(t, "carol", standings[0].Owner)
	assert.Equal(t, "Leftovers", standings[1].Owner)
}

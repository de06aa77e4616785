package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/league-archive/internal/models"
)

func seasonRow(id string, season int, position string, points float64, games, possible int) models.StatRow {
	return models.StatRow{
		PlayerID:      id,
		Season:        models.FlexInt(season),
		Position:      position,
		Points:        models.FlexFloat(points),
		Games:         models.FlexInt(games),
		GamesPossible: models.FlexInt(possible),
	}
}

func TestSeasonTotals(t *testing.T) {
	ids := map[string]struct{}{"p1": {}}
	rows := []models.StatRow{
		seasonRow("p1", 2022, "RB", 180, 15, 17),
		seasonRow("p1", 2023, "RB", 210, 17, 17),
		seasonRow("p2", 2023, "RB", 250, 17, 17),
		seasonRow("p3", 2023, "WR", 300, 17, 17),
	}

	seasons := SeasonTotals(rows, ids, nil)
	require.Len(t, seasons, 2)

	// Ordered most recent first.
	assert.Equal(t, 2023, seasons[0].Season)
	assert.InDelta(t, 210.0, seasons[0].Points, 1e-9)
	assert.Equal(t, 17, seasons[0].Games)
	assert.InDelta(t, 1.0, seasons[0].Availability, 1e-9)
	// Ranked among same-position rows only: p2 outscored p1, p3 is a WR.
	assert.Equal(t, 2, seasons[0].PositionRank)

	assert.Equal(t, 2022, seasons[1].Season)
	assert.InDelta(t, 15.0/17.0, seasons[1].Availability, 1e-9)
}

func TestSeasonTotalsPrefersPrecomputedRank(t *testing.T) {
	ids := map[string]struct{}{"p1": {}}
	rank := models.FlexInt(7)
	row := seasonRow("p1", 2023, "QB", 250, 16, 17)
	row.PositionRank = &rank

	seasons := SeasonTotals([]models.StatRow{row}, ids, nil)
	require.Len(t, seasons, 1)
	assert.Equal(t, 7, seasons[0].PositionRank)
}

func TestSeasonTotalsZeroGamesPossible(t *testing.T) {
	ids := map[string]struct{}{"p1": {}}
	seasons := SeasonTotals([]models.StatRow{seasonRow("p1", 2023, "QB", 100, 6, 0)}, ids, nil)
	require.Len(t, seasons, 1)
	assert.Zero(t, seasons[0].Availability)
}

func TestCareerTotalsSumsSeasons(t *testing.T) {
	seasons := []models.SeasonStat{
		{Season: 2023, Points: 210, Games: 17, WAR: 40, Delta: 5},
		{Season: 2022, Points: 180, Games: 15, WAR: 30, Delta: 3},
	}

	career := CareerTotals(nil, seasons, map[string]struct{}{"p1": {}}, nil)
	assert.False(t, career.Precomputed)
	assert.InDelta(t, 390.0, career.Points, 1e-9)
	assert.Equal(t, 32, career.Games)
	assert.InDelta(t, 70.0, career.WAR, 1e-9)
	assert.Equal(t, 2, career.Seasons)
}

func TestCareerTotalsPrefersCareerRow(t *testing.T) {
	ids := map[string]struct{}{"p1": {}}
	war := models.FlexFloat(75)
	careerRow := models.StatRow{
		PlayerID: "p1",
		Points:   models.FlexFloat(400),
		Games:    models.FlexInt(33),
		WAR:      &war,
	}
	seasons := []models.SeasonStat{{Season: 2023, Points: 210}}

	career := CareerTotals([]models.StatRow{careerRow}, seasons, ids, nil)
	assert.True(t, career.Precomputed)
	assert.InDelta(t, 400.0, career.Points, 1e-9)
	assert.Equal(t, 33, career.Games)
	assert.InDelta(t, 75.0, career.WAR, 1e-9)
	assert.Equal(t, 1, career.Seasons)
}

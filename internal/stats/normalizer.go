package stats

import (
	"sort"
	"strings"

	"github.com/gridironlabs/league-archive/internal/models"
)

// Replacement cutoffs per position for an 8-team league with weighted
// starting slots. The baseline is the last eligible starter's score.
var replacementCutoffs = map[string]int{
	"QB":  16,
	"RB":  24,
	"WR":  24,
	"TE":  16,
	"K":   8,
	"DEF": 8,
}

type groupKey struct {
	season   int
	week     int
	position string
}

// NormalizeWeekly augments a season's weekly rows with war, deltaToNext,
// replacementBaseline, and positionRank wherever the export omitted them.
// Existing non-nil values are never overwritten. The input slice is
// modified in place and returned.
func NormalizeWeekly(rows []models.StatRow) []models.StatRow {
	groups := make(map[groupKey][]int)
	for i := range rows {
		if !rows[i].IsWeekly() {
			continue
		}
		key := groupKey{
			season:   int(rows[i].Season),
			week:     int(rows[i].Week),
			position: strings.ToUpper(rows[i].Position),
		}
		groups[key] = append(groups[key], i)
	}

	for key, indices := range groups {
		// Points desc with canonical ID as the tiebreak, so rank order is
		// deterministic even when the underlying sort implementation changes.
		sort.SliceStable(indices, func(a, b int) bool {
			pa, pb := float64(rows[indices[a]].Points), float64(rows[indices[b]].Points)
			if pa != pb {
				return pa > pb
			}
			return rowSortID(&rows[indices[a]]) < rowSortID(&rows[indices[b]])
		})

		baseline := 0.0
		if cutoff, ok := replacementCutoffs[key.position]; ok {
			idx := cutoff - 1
			if idx > len(indices)-1 {
				idx = len(indices) - 1
			}
			baseline = float64(rows[indices[idx]].Points)
		}

		for i, ri := range indices {
			row := &rows[ri]
			points := float64(row.Points)

			if row.ReplacementBaseline == nil {
				v := models.FlexFloat(baseline)
				row.ReplacementBaseline = &v
			}
			if row.WAR == nil {
				v := models.FlexFloat(points - baseline)
				row.WAR = &v
			}
			if row.DeltaToNext == nil {
				delta := 0.0
				if i < len(indices)-1 {
					delta = points - float64(rows[indices[i+1]].Points)
				}
				v := models.FlexFloat(delta)
				row.DeltaToNext = &v
			}
			if row.PositionRank == nil {
				v := models.FlexInt(i + 1)
				row.PositionRank = &v
			}
		}
	}

	return rows
}

// rowSortID gives each row a deterministic secondary sort key.
func rowSortID(row *models.StatRow) string {
	for _, id := range []string{row.PlayerID, row.SleeperID, row.GsisID, row.EspnID} {
		if id != "" {
			return id
		}
	}
	return row.BestName()
}

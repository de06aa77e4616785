package stats

import (
	"sort"
	"strings"

	"github.com/gridironlabs/league-archive/internal/models"
)

// SeasonTotals accumulates per-season aggregates for the target player from
// season-granularity rows. Position rank is recomputed by sorting the
// season's same-position rows by points descending and locating the target;
// a precomputed rank on the row wins when present.
func SeasonTotals(seasonRows []models.StatRow, idSet, nameSet map[string]struct{}) []models.SeasonStat {
	bySeason := make(map[int][]int)
	for i := range seasonRows {
		if !seasonRows[i].IsSeason() {
			continue
		}
		season := int(seasonRows[i].Season)
		bySeason[season] = append(bySeason[season], i)
	}

	var out []models.SeasonStat
	for season, indices := range bySeason {
		targetIdx := -1
		for _, ri := range indices {
			if Matches(&seasonRows[ri], idSet, nameSet) {
				targetIdx = ri
				break
			}
		}
		if targetIdx < 0 {
			continue
		}
		target := &seasonRows[targetIdx]

		stat := models.SeasonStat{
			Season:        season,
			Points:        float64(target.Points),
			Games:         int(target.Games),
			GamesPossible: int(target.GamesPossible),
		}
		if stat.GamesPossible > 0 {
			stat.Availability = float64(stat.Games) / float64(stat.GamesPossible)
		}
		if target.WAR != nil {
			stat.WAR = float64(*target.WAR)
		}
		if target.DeltaToNext != nil {
			stat.Delta = float64(*target.DeltaToNext)
		}

		if target.PositionRank != nil {
			stat.PositionRank = int(*target.PositionRank)
		} else {
			stat.PositionRank = positionRankInSeason(seasonRows, indices, targetIdx)
		}

		out = append(out, stat)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Season > out[b].Season })
	return out
}

// positionRankInSeason ranks the target among same-position rows of one
// season, points descending with a deterministic tiebreak.
func positionRankInSeason(rows []models.StatRow, seasonIndices []int, targetIdx int) int {
	position := strings.ToUpper(rows[targetIdx].Position)

	cohort := make([]int, 0, len(seasonIndices))
	for _, ri := range seasonIndices {
		if strings.ToUpper(rows[ri].Position) == position {
			cohort = append(cohort, ri)
		}
	}
	sort.SliceStable(cohort, func(a, b int) bool {
		pa, pb := float64(rows[cohort[a]].Points), float64(rows[cohort[b]].Points)
		if pa != pb {
			return pa > pb
		}
		return rowSortID(&rows[cohort[a]]) < rowSortID(&rows[cohort[b]])
	})
	for rank, ri := range cohort {
		if ri == targetIdx {
			return rank + 1
		}
	}
	return 0
}

// CareerTotals prefers a single precomputed career row from the export and
// otherwise sums the per-season totals.
func CareerTotals(careerRows []models.StatRow, seasons []models.SeasonStat, idSet, nameSet map[string]struct{}) models.CareerStat {
	for i := range careerRows {
		if !careerRows[i].IsCareer() {
			continue
		}
		if !Matches(&careerRows[i], idSet, nameSet) {
			continue
		}
		row := &careerRows[i]
		stat := models.CareerStat{
			Points:      float64(row.Points),
			Games:       int(row.Games),
			Seasons:     len(seasons),
			Precomputed: true,
		}
		if row.WAR != nil {
			stat.WAR = float64(*row.WAR)
		}
		if row.DeltaToNext != nil {
			stat.Delta = float64(*row.DeltaToNext)
		}
		return stat
	}

	var stat models.CareerStat
	for _, s := range seasons {
		stat.Points += s.Points
		stat.Games += s.Games
		stat.WAR += s.WAR
		stat.Delta += s.Delta
	}
	stat.Seasons = len(seasons)
	return stat
}

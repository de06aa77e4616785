package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/gridironlabs/league-archive/internal/models"
)

// Position-specific scoring thresholds for a "boom" week.
var boomThresholds = map[string]float64{
	"QB":  20,
	"RB":  15,
	"WR":  15,
	"TE":  12,
	"K":   10,
	"DEF": 10,
}

const defaultBoomThreshold = 15

// BoomThreshold returns the boom scoring threshold for a position.
func BoomThreshold(position string) float64 {
	if t, ok := boomThresholds[strings.ToUpper(position)]; ok {
		return t
	}
	return defaultBoomThreshold
}

const rankedWeekCount = 5

// BoomBust summarizes the target player's weekly scoring variability from
// the given weekly rows. Callers pass the fullest weekly series available
// (career preferred over a single season). Standard deviation is the
// population figure. The consistency label is derived locally only when the
// export did not precompute one.
func BoomBust(weekly []models.StatRow, idSet, nameSet map[string]struct{}, position string) models.BoomBustSummary {
	threshold := BoomThreshold(position)
	summary := models.BoomBustSummary{Threshold: threshold}

	var scores []models.WeekScore
	upstreamLabel := ""
	for i := range weekly {
		if !weekly[i].IsWeekly() {
			continue
		}
		if !Matches(&weekly[i], idSet, nameSet) {
			continue
		}
		scores = append(scores, models.WeekScore{
			Season: int(weekly[i].Season),
			Week:   int(weekly[i].Week),
			Points: float64(weekly[i].Points),
		})
		if upstreamLabel == "" && weekly[i].Consistency != "" {
			upstreamLabel = weekly[i].Consistency
		}
	}
	if len(scores) == 0 {
		return summary
	}

	summary.Weeks = len(scores)

	var sum float64
	above := 0
	for _, s := range scores {
		sum += s.Points
		if s.Points >= threshold {
			above++
		}
	}
	summary.Mean = sum / float64(len(scores))

	var sumSq float64
	for _, s := range scores {
		d := s.Points - summary.Mean
		sumSq += d * d
	}
	summary.Variance = sumSq / float64(len(scores))
	summary.StdDev = math.Sqrt(summary.Variance)
	summary.PercentAbove = float64(above) / float64(len(scores)) * 100

	ranked := make([]models.WeekScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Points > ranked[b].Points })

	top := rankedWeekCount
	if top > len(ranked) {
		top = len(ranked)
	}
	summary.TopWeeks = append([]models.WeekScore(nil), ranked[:top]...)

	// Bottom weeks: the lowest scores, worst first.
	bottom := append([]models.WeekScore(nil), ranked[len(ranked)-top:]...)
	for i, j := 0, len(bottom)-1; i < j; i, j = i+1, j-1 {
		bottom[i], bottom[j] = bottom[j], bottom[i]
	}
	summary.BottomWeeks = bottom

	if upstreamLabel != "" {
		summary.Consistency = upstreamLabel
	} else {
		summary.Consistency = consistencyLabel(summary.StdDev)
	}

	return summary
}

func consistencyLabel(stdDev float64) string {
	switch {
	case stdDev <= 6:
		return "High"
	case stdDev <= 10:
		return "Medium"
	default:
		return "Low"
	}
}

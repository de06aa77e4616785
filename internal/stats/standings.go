package stats

import (
	"sort"

	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/models"
)

// AllTimeStandings accumulates every franchise's record across all seasons,
// keyed by normalized owner identity so team renames collapse into one line.
// Output is sorted by total wins descending with points-for as tiebreak.
func AllTimeStandings(summaries []models.SeasonSummary) []models.StandingsEntry {
	type accumulator struct {
		entry models.StandingsEntry
		seen  map[int]bool
	}
	byOwner := make(map[string]*accumulator)
	var order []string

	for i := range summaries {
		season := int(summaries[i].Season)
		for j := range summaries[i].Teams {
			team := &summaries[i].Teams[j]
			raw := team.OwnerIdentity()
			key := identity.NormalizeOwner(raw)
			if key == "" {
				continue
			}

			acc, ok := byOwner[key]
			if !ok {
				acc = &accumulator{
					entry: models.StandingsEntry{Owner: raw},
					seen:  make(map[int]bool),
				}
				byOwner[key] = acc
				order = append(order, key)
			}

			acc.entry.Wins += int(team.Wins)
			acc.entry.Losses += int(team.Losses)
			acc.entry.Ties += int(team.Ties)
			acc.entry.PointsFor += float64(team.PointsFor)
			acc.entry.PointsAgainst += float64(team.PointsAgainst)
			if !acc.seen[season] {
				acc.seen[season] = true
				acc.entry.Seasons++
			}
		}
	}

	out := make([]models.StandingsEntry, 0, len(order))
	for _, key := range order {
		out = append(out, byOwner[key].entry)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Wins != out[b].Wins {
			return out[a].Wins > out[b].Wins
		}
		return out[a].PointsFor > out[b].PointsFor
	})
	return out
}

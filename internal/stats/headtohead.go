package stats

import (
	"sort"

	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/models"
)

// sideOwner resolves a matchup side to its raw owner identity: owner field,
// else team name. Loaders backfill owner fields from the season summary's
// roster mapping before this runs, so team name is the last resort.
func homeOwner(m *models.MatchupRecord) string {
	if m.HomeOwner != "" {
		return m.HomeOwner
	}
	return m.HomeTeam
}

func awayOwner(m *models.MatchupRecord) string {
	if m.AwayOwner != "" {
		return m.AwayOwner
	}
	return m.AwayTeam
}

// HeadToHead derives the rivalry ledger for the unordered pair of owner
// identities from the full matchup history. Matchups are sorted season desc,
// week desc; win totals and longest consecutive-win streaks come from a
// single chronological (oldest-first) pass.
func HeadToHead(matchups []models.MatchupRecord, ownerA, ownerB string) models.HeadToHeadRecord {
	normA := identity.NormalizeOwner(ownerA)
	normB := identity.NormalizeOwner(ownerB)

	record := models.HeadToHeadRecord{OwnerA: ownerA, OwnerB: ownerB}
	if normA == "" || normB == "" || normA == normB {
		return record
	}

	for i := range matchups {
		m := &matchups[i]
		home := identity.NormalizeOwner(homeOwner(m))
		away := identity.NormalizeOwner(awayOwner(m))

		var scoreA, scoreB float64
		var teamA, teamB string
		switch {
		case home == normA && away == normB:
			scoreA, scoreB = float64(m.HomeScore), float64(m.AwayScore)
			teamA, teamB = m.HomeTeam, m.AwayTeam
		case home == normB && away == normA:
			scoreA, scoreB = float64(m.AwayScore), float64(m.HomeScore)
			teamA, teamB = m.AwayTeam, m.HomeTeam
		default:
			continue
		}

		winner := "tie"
		if scoreA > scoreB {
			winner = "a"
		} else if scoreB > scoreA {
			winner = "b"
		}

		record.Matchups = append(record.Matchups, models.HeadToHeadMatchup{
			Season: int(m.Season),
			Week:   int(m.Week),
			ScoreA: scoreA,
			ScoreB: scoreB,
			Winner: winner,
			TeamA:  teamA,
			TeamB:  teamB,
		})
	}

	// Chronological pass for totals and streaks
	chrono := make([]models.HeadToHeadMatchup, len(record.Matchups))
	copy(chrono, record.Matchups)
	sort.SliceStable(chrono, func(a, b int) bool {
		if chrono[a].Season != chrono[b].Season {
			return chrono[a].Season < chrono[b].Season
		}
		return chrono[a].Week < chrono[b].Week
	})

	streakA, streakB := 0, 0
	for _, m := range chrono {
		switch m.Winner {
		case "a":
			record.WinsA++
			streakA++
			streakB = 0
		case "b":
			record.WinsB++
			streakB++
			streakA = 0
		default:
			record.Ties++
			streakA, streakB = 0, 0
		}
		if streakA > record.LongestStreakA {
			record.LongestStreakA = streakA
		}
		if streakB > record.LongestStreakB {
			record.LongestStreakB = streakB
		}
	}

	// Display order: most recent first
	sort.SliceStable(record.Matchups, func(a, b int) bool {
		if record.Matchups[a].Season != record.Matchups[b].Season {
			return record.Matchups[a].Season > record.Matchups[b].Season
		}
		return record.Matchups[a].Week > record.Matchups[b].Week
	})

	return record
}

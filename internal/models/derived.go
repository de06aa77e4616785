package models

import "time"

// SeasonStat is the per-season aggregate computed for one player. Derived
// fresh on each load, never persisted.
type SeasonStat struct {
	Season       int     `json:"season"`
	Points       float64 `json:"points"`
	Games        int     `json:"games"`
	GamesPossible int    `json:"games_possible"`
	Availability float64 `json:"availability"`
	PositionRank int     `json:"position_rank"`
	WAR          float64 `json:"war"`
	Delta        float64 `json:"delta"`
}

// CareerStat sums a player's seasons, or mirrors a precomputed career row
// when the export supplies one.
type CareerStat struct {
	Points      float64 `json:"points"`
	Games       int     `json:"games"`
	WAR         float64 `json:"war"`
	Delta       float64 `json:"delta"`
	Seasons     int     `json:"seasons"`
	Precomputed bool    `json:"precomputed"`
}

// WeekScore is one (season, week, points) observation used by boom/bust
// rankings.
type WeekScore struct {
	Season int     `json:"season"`
	Week   int     `json:"week"`
	Points float64 `json:"points"`
}

// BoomBustSummary classifies a player's weekly scoring variability.
type BoomBustSummary struct {
	Weeks        int         `json:"weeks"`
	Mean         float64     `json:"mean"`
	Variance     float64     `json:"variance"`
	StdDev       float64     `json:"std_dev"`
	Threshold    float64     `json:"threshold"`
	PercentAbove float64     `json:"percent_above"`
	TopWeeks     []WeekScore `json:"top_weeks"`
	BottomWeeks  []WeekScore `json:"bottom_weeks"`
	Consistency  string      `json:"consistency"`
}

// HeadToHeadMatchup is one historical game between the two selected owners,
// tagged with the winning side.
type HeadToHeadMatchup struct {
	Season  int     `json:"season"`
	Week    int     `json:"week"`
	ScoreA  float64 `json:"score_a"`
	ScoreB  float64 `json:"score_b"`
	Winner  string  `json:"winner"` // "a", "b", or "tie"
	TeamA   string  `json:"team_a,omitempty"`
	TeamB   string  `json:"team_b,omitempty"`
}

// HeadToHeadRecord is the full rivalry ledger for an unordered owner pair.
// Matchups are ordered season desc, week desc; streaks come from a single
// chronological pass.
type HeadToHeadRecord struct {
	OwnerA         string              `json:"owner_a"`
	OwnerB         string              `json:"owner_b"`
	Matchups       []HeadToHeadMatchup `json:"matchups"`
	WinsA          int                 `json:"wins_a"`
	WinsB          int                 `json:"wins_b"`
	Ties           int                 `json:"ties"`
	LongestStreakA int                 `json:"longest_streak_a"`
	LongestStreakB int                 `json:"longest_streak_b"`
}

// StandingsEntry is one owner's all-time line across every season they
// appear in, keyed by normalized owner identity.
type StandingsEntry struct {
	Owner         string  `json:"owner"`
	Seasons       int     `json:"seasons"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// Data categories loaded from the snapshot export. Fetch failures are flagged
// per category so the viewer can degrade only the affected views.
const (
	CategoryPlayers      = "players"
	CategoryWeeklyStats  = "weekly_stats"
	CategorySeasonStats  = "season_stats"
	CategoryCareerStats  = "career_stats"
	CategorySummaries    = "summaries"
	CategoryMatchups     = "matchups"
	CategoryTransactions = "transactions"
)

// DatasetStatus reports load health for the current in-memory dataset.
type DatasetStatus struct {
	Generation string            `json:"generation"`
	LoadedAt   time.Time         `json:"loaded_at"`
	Seasons    []int             `json:"seasons"`
	Partial    bool              `json:"partial"`
	Degraded   []string          `json:"degraded,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

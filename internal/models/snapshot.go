package models

// PlayerRecord is the canonical identity for one real player, built once per
// data load from the reference player directory and immutable for the session.
// Each source ID maps to at most one canonical PlayerID.
type PlayerRecord struct {
	PlayerID    string `json:"player_id"`
	SleeperID   string `json:"sleeper_id,omitempty"`
	EspnID      string `json:"espn_id,omitempty"`
	GsisID      string `json:"gsis_id,omitempty"`
	DisplayName string `json:"display_name"`
	Position    string `json:"position,omitempty"`
	Team        string `json:"team,omitempty"`

	// Biographical fields carried through from the directory export
	College   string  `json:"college,omitempty"`
	BirthDate string  `json:"birth_date,omitempty"`
	YearsExp  FlexInt `json:"years_exp,omitempty"`

	// Synthesized marks a minimal fallback record created for an identifier
	// that had no directory match.
	Synthesized bool `json:"synthesized,omitempty"`
}

// StatRow is one statistical observation at weekly, season, or career
// granularity. Identity fields are sparse: different exporters populate
// different subsets, which is why matching is ID-first with a name fallback.
type StatRow struct {
	SleeperID  string `json:"sleeper_id,omitempty"`
	PlayerID   string `json:"player_id,omitempty"`
	GsisID     string `json:"gsis_id,omitempty"`
	EspnID     string `json:"espn_id,omitempty"`
	Name       string `json:"name,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
	FullName   string `json:"full_name,omitempty"`

	Position string `json:"position,omitempty"`
	Team     string `json:"team,omitempty"`

	Season FlexInt `json:"season,omitempty"`
	Week   FlexInt `json:"week,omitempty"`

	Points        FlexFloat `json:"points"`
	Games         FlexInt   `json:"games,omitempty"`
	GamesPossible FlexInt   `json:"games_possible,omitempty"`

	// Position-specific box score stats, keyed by exporter stat name
	Stats map[string]FlexFloat `json:"stats,omitempty"`

	// Precomputed metrics. Pointers distinguish "absent upstream" from zero;
	// the normalizer fills these only when nil.
	WAR                 *FlexFloat `json:"war,omitempty"`
	DeltaToNext         *FlexFloat `json:"delta_to_next,omitempty"`
	ReplacementBaseline *FlexFloat `json:"replacement_baseline,omitempty"`
	PositionRank        *FlexInt   `json:"position_rank,omitempty"`
	ZScore              *FlexFloat `json:"z_score,omitempty"`
	Consistency         string     `json:"consistency,omitempty"`
}

// IsWeekly reports whether the row is a single-week observation.
func (r *StatRow) IsWeekly() bool {
	return r.Week > 0
}

// IsSeason reports whether the row is a season aggregate.
func (r *StatRow) IsSeason() bool {
	return r.Week == 0 && r.Season > 0
}

// IsCareer reports whether the row is a career aggregate.
func (r *StatRow) IsCareer() bool {
	return r.Week == 0 && r.Season == 0
}

// BestName returns the row's best-available display name under the fixed
// fallback order used for name matching.
func (r *StatRow) BestName() string {
	for _, name := range []string{r.Name, r.PlayerName, r.FullName} {
		if name != "" {
			return name
		}
	}
	return ""
}

// StatRows decodes from either a bare array or a {"rows": [...]} envelope.
type StatRows []StatRow

func (s *StatRows) UnmarshalJSON(data []byte) error {
	return unmarshalRows(data, (*[]StatRow)(s))
}

// TransactionPlayer is one player referenced by a transaction, with optional
// identity and action ("add", "drop", or a trade side label).
type TransactionPlayer struct {
	PlayerID  string `json:"player_id,omitempty"`
	SleeperID string `json:"sleeper_id,omitempty"`
	EspnID    string `json:"espn_id,omitempty"`
	GsisID    string `json:"gsis_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Action    string `json:"action,omitempty"`
}

// TransactionEntry is an add/drop/trade event from the league history export.
type TransactionEntry struct {
	ID      string              `json:"id,omitempty"`
	Season  FlexInt             `json:"season,omitempty"`
	Week    FlexInt             `json:"week,omitempty"`
	Type    string              `json:"type,omitempty"`
	Owner   string              `json:"owner,omitempty"`
	Date    string              `json:"date,omitempty"`
	Players []TransactionPlayer `json:"players,omitempty"`
}

// TransactionEntries decodes from either a bare array or a rows envelope.
type TransactionEntries []TransactionEntry

func (t *TransactionEntries) UnmarshalJSON(data []byte) error {
	return unmarshalRows(data, (*[]TransactionEntry)(t))
}

// TeamSeason is one franchise's line in a season summary.
type TeamSeason struct {
	TeamName    string    `json:"team_name"`
	Owner       string    `json:"owner,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	RosterID    FlexInt   `json:"roster_id,omitempty"`
	Wins        FlexInt   `json:"wins"`
	Losses      FlexInt   `json:"losses"`
	Ties        FlexInt   `json:"ties"`
	PointsFor   FlexFloat `json:"points_for"`
	PointsAgainst FlexFloat `json:"points_against"`
	Rank        FlexInt   `json:"rank,omitempty"`
}

// OwnerIdentity returns the raw identity string for the franchise under the
// fixed priority: owner field, then display name, then team name.
func (t *TeamSeason) OwnerIdentity() string {
	for _, s := range []string{t.Owner, t.DisplayName, t.TeamName} {
		if s != "" {
			return s
		}
	}
	return ""
}

// SeasonSummary is the per-season league export: final records per franchise.
type SeasonSummary struct {
	Season FlexInt      `json:"season"`
	Teams  []TeamSeason `json:"teams"`
}

// MatchupRecord is one head-to-head game between two rosters in one week.
// Owner fields may be empty in older exports; the loader backfills them from
// the season summary's roster-to-owner mapping.
type MatchupRecord struct {
	Season FlexInt `json:"season"`
	Week   FlexInt `json:"week"`

	HomeTeam     string    `json:"home_team,omitempty"`
	HomeOwner    string    `json:"home_owner,omitempty"`
	HomeRosterID FlexInt   `json:"home_roster_id,omitempty"`
	HomeScore    FlexFloat `json:"home_score"`

	AwayTeam     string    `json:"away_team,omitempty"`
	AwayOwner    string    `json:"away_owner,omitempty"`
	AwayRosterID FlexInt   `json:"away_roster_id,omitempty"`
	AwayScore    FlexFloat `json:"away_score"`
}

// MatchupRecords decodes from either a bare array or a rows envelope.
type MatchupRecords []MatchupRecord

func (m *MatchupRecords) UnmarshalJSON(data []byte) error {
	return unmarshalRows(data, (*[]MatchupRecord)(m))
}

// PlayerRecords decodes from either a bare array or a rows envelope.
type PlayerRecords []PlayerRecord

func (p *PlayerRecords) UnmarshalJSON(data []byte) error {
	return unmarshalRows(data, (*[]PlayerRecord)(p))
}

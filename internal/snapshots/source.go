package snapshots

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Source fetches one named snapshot file produced by the offline export
// pipeline. Names are flat file names like "players.json" or
// "weekly_stats_2023.json".
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// SeasonLister is implemented by sources that can discover which seasons
// have exported files, used when LEAGUE_SEASONS is not configured.
type SeasonLister interface {
	ListSeasons() ([]int, error)
}

// Snapshot file names
const (
	filePlayers     = "players.json"
	fileSeasonStats = "season_stats.json"
	fileCareerStats = "career_stats.json"
	fileSeasonIndex = "seasons.json"
)

func weeklyStatsFile(season int) string  { return fmt.Sprintf("weekly_stats_%d.json", season) }
func summaryFile(season int) string      { return fmt.Sprintf("summary_%d.json", season) }
func matchupsFile(season int) string     { return fmt.Sprintf("matchups_%d.json", season) }
func transactionsFile(season int) string { return fmt.Sprintf("transactions_%d.json", season) }

// FileSource reads snapshots from a local directory.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	return data, nil
}

var seasonFilePattern = regexp.MustCompile(`^(?:weekly_stats|summary|matchups|transactions)_(\d{4})\.json$`)

// ListSeasons discovers seasons from season-suffixed file names in the
// snapshot directory.
func (s *FileSource) ListSeasons() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list snapshot dir: %w", err)
	}
	seen := make(map[int]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := seasonFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		season, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[season] = true
	}
	seasons := make([]int, 0, len(seen))
	for season := range seen {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons, nil
}

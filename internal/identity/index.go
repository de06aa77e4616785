package identity

import (
	"strings"

	"github.com/gridironlabs/league-archive/internal/models"
)

// FallbackSource names the ID space assumed for a bare numeric identifier
// with no directory match. The historical viewer hard-coded ESPN; keeping
// that the default preserves its behavior while making the guess explicit.
type FallbackSource string

const (
	FallbackESPN    FallbackSource = "espn"
	FallbackSleeper FallbackSource = "sleeper"
	FallbackGSIS    FallbackSource = "gsis"
)

// ParseFallbackSource maps a config string to a FallbackSource, defaulting
// to ESPN for anything unrecognized.
func ParseFallbackSource(s string) FallbackSource {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FallbackSleeper):
		return FallbackSleeper
	case string(FallbackGSIS):
		return FallbackGSIS
	default:
		return FallbackESPN
	}
}

// Index maps every known player-identifier variant to one canonical record.
// Built once per data load; read-only afterwards, so it is safe for
// concurrent lookups.
type Index struct {
	byCanonical map[string]models.PlayerRecord
	bySleeper   map[string]string
	byEspn      map[string]string
	byGsis      map[string]string
	byName      map[string]string

	fallback FallbackSource
}

// NewIndex builds the lookup tables from the reference player directory.
// Each source ID maps to at most one canonical player; on a duplicate the
// first directory entry wins.
func NewIndex(players []models.PlayerRecord, fallback FallbackSource) *Index {
	ix := &Index{
		byCanonical: make(map[string]models.PlayerRecord, len(players)),
		bySleeper:   make(map[string]string),
		byEspn:      make(map[string]string),
		byGsis:      make(map[string]string),
		byName:      make(map[string]string),
		fallback:    fallback,
	}

	for _, p := range players {
		if p.PlayerID == "" {
			// Directory entries without a canonical key anchor on their
			// first source ID instead of being dropped.
			switch {
			case p.SleeperID != "":
				p.PlayerID = p.SleeperID
			case p.EspnID != "":
				p.PlayerID = p.EspnID
			case p.GsisID != "":
				p.PlayerID = p.GsisID
			default:
				continue
			}
		}
		if _, exists := ix.byCanonical[p.PlayerID]; exists {
			continue
		}
		ix.byCanonical[p.PlayerID] = p

		if p.SleeperID != "" {
			if _, exists := ix.bySleeper[p.SleeperID]; !exists {
				ix.bySleeper[p.SleeperID] = p.PlayerID
			}
		}
		if p.EspnID != "" {
			if _, exists := ix.byEspn[p.EspnID]; !exists {
				ix.byEspn[p.EspnID] = p.PlayerID
			}
		}
		if p.GsisID != "" {
			if _, exists := ix.byGsis[p.GsisID]; !exists {
				ix.byGsis[p.GsisID] = p.PlayerID
			}
		}
		if norm := NormalizeName(p.DisplayName); norm != "" {
			if _, exists := ix.byName[norm]; !exists {
				ix.byName[norm] = p.PlayerID
			}
		}
	}

	return ix
}

// Size returns the number of canonical records in the index.
func (ix *Index) Size() int {
	return len(ix.byCanonical)
}

// Lookup resolves any known identifier (canonical, sleeper, espn, gsis) or a
// display name to its canonical record.
func (ix *Index) Lookup(id string) (models.PlayerRecord, bool) {
	if id == "" {
		return models.PlayerRecord{}, false
	}
	if p, ok := ix.byCanonical[id]; ok {
		return p, true
	}
	for _, m := range []map[string]string{ix.bySleeper, ix.byEspn, ix.byGsis} {
		if canonical, ok := m[id]; ok {
			return ix.byCanonical[canonical], true
		}
	}
	if canonical, ok := ix.byName[NormalizeName(id)]; ok {
		return ix.byCanonical[canonical], true
	}
	return models.PlayerRecord{}, false
}

// Resolve returns the canonical record for any identifier, synthesizing a
// minimal fallback record when nothing matches so callers never fail on an
// unresolvable identity. A bare numeric string is provisionally treated as
// coming from the configured fallback ID source; anything else falls back to
// the raw input as a display label.
func (ix *Index) Resolve(id string) models.PlayerRecord {
	if p, ok := ix.Lookup(id); ok {
		return p
	}

	rec := models.PlayerRecord{
		PlayerID:    id,
		DisplayName: id,
		Synthesized: true,
	}
	if IsNumericID(id) {
		switch ix.fallback {
		case FallbackSleeper:
			rec.SleeperID = id
		case FallbackGSIS:
			rec.GsisID = id
		default:
			rec.EspnID = id
		}
	}
	return rec
}

// IdentitySet collects every identifier known for the player, suitable as a
// row-matching target set.
func IdentitySet(p models.PlayerRecord) map[string]struct{} {
	set := make(map[string]struct{}, 4)
	for _, id := range []string{p.PlayerID, p.SleeperID, p.EspnID, p.GsisID} {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// NameSet collects the player's normalized name variants for fallback
// matching. A synthesized record whose display label is just an opaque ID
// contributes no usable names.
func NameSet(p models.PlayerRecord) map[string]struct{} {
	set := make(map[string]struct{}, 2)
	if p.Synthesized && IsNumericID(p.DisplayName) {
		return set
	}
	if norm := NormalizeName(p.DisplayName); norm != "" {
		set[norm] = struct{}{}
	}
	return set
}

package identity

import "strings"

var punctReplacer = strings.NewReplacer(
	".", "", ",", "", "'", "", "`", "", "’", "",
	"-", " ", "–", " ", "—", " ",
	"(", "", ")", "",
)

var nameSuffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// NormalizeName maps any display name to a canonical matching key. It is
// total (every input maps to some string) and idempotent, so name matching
// never drops a row over case, punctuation, or generational suffixes.
func NormalizeName(name string) string {
	s := punctReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	fields := strings.Fields(s)
	if n := len(fields); n > 1 && nameSuffixes[fields[n-1]] {
		fields = fields[:n-1]
	}
	return strings.Join(fields, " ")
}

// NormalizeOwner maps a manager's name or team label to a canonical owner
// identity, merging franchise records across seasons and team renames.
// Same rules as NormalizeName minus the suffix stripping, which only makes
// sense for person names that carry generational suffixes.
func NormalizeOwner(owner string) string {
	s := punctReplacer.Replace(strings.ToLower(strings.TrimSpace(owner)))
	return strings.Join(strings.Fields(s), " ")
}

// IsNumericID reports whether the identifier is a bare numeric string, the
// shape used by ESPN and Sleeper IDs as opposed to GSIS ("00-0031234") or
// free-text names.
func IsNumericID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

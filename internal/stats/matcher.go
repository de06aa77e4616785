package stats

import (
	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/models"
)

// Matches reports whether a stat row belongs to the target player. ID match
// is preferred (cheap, unambiguous); normalized-name match is the fallback
// for sources that only emit free-text names. Rows carrying neither usable
// IDs nor a name never match. Pure and order-independent.
func Matches(row *models.StatRow, idSet, nameSet map[string]struct{}) bool {
	for _, id := range []string{row.SleeperID, row.PlayerID, row.GsisID, row.EspnID} {
		if id == "" {
			continue
		}
		if _, ok := idSet[id]; ok {
			return true
		}
	}

	if len(nameSet) == 0 {
		return false
	}
	name := row.BestName()
	if name == "" {
		return false
	}
	_, ok := nameSet[identity.NormalizeName(name)]
	return ok
}

// FilterRows returns the rows belonging to the target player, preserving
// input order.
func FilterRows(rows []models.StatRow, idSet, nameSet map[string]struct{}) []models.StatRow {
	var out []models.StatRow
	for i := range rows {
		if Matches(&rows[i], idSet, nameSet) {
			out = append(out, rows[i])
		}
	}
	return out
}

// transactionMatches applies the row-matching rule to one transaction
// participant.
func transactionMatches(tp *models.TransactionPlayer, idSet, nameSet map[string]struct{}) bool {
	for _, id := range []string{tp.SleeperID, tp.PlayerID, tp.GsisID, tp.EspnID} {
		if id == "" {
			continue
		}
		if _, ok := idSet[id]; ok {
			return true
		}
	}
	if len(nameSet) == 0 || tp.Name == "" {
		return false
	}
	_, ok := nameSet[identity.NormalizeName(tp.Name)]
	return ok
}

// FilterTransactions returns the transactions referencing the target player
// under the same ID-or-name rule used for stat rows.
func FilterTransactions(entries []models.TransactionEntry, idSet, nameSet map[string]struct{}) []models.TransactionEntry {
	var out []models.TransactionEntry
	for i := range entries {
		for j := range entries[i].Players {
			if transactionMatches(&entries[i].Players[j], idSet, nameSet) {
				out = append(out, entries[i])
				break
			}
		}
	}
	return out
}

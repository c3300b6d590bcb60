package stats

import (
	"sort"

	"github.com/deckstats/playtime/internal/store"
)

// sortSessionsDesc orders sessions by date, most recent first.
func sortSessionsDesc(sessions []store.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return parseSessionTime(sessions[i].Date).After(parseSessionTime(sessions[j].Date))
	})
}

// latestSession returns the most recent session by date, or nil.
func latestSession(sessions []store.Session) *store.Session {
	var latest *store.Session
	for i := range sessions {
		if latest == nil || parseSessionTime(sessions[i].Date).After(parseSessionTime(latest.Date)) {
			latest = &sessions[i]
		}
	}
	return latest
}

// mergeDaysByChecksum combines same-day entries whose games share a file
// checksum. The checksum of an entry's first session stands in for the
// whole entry; the smallest game id in each group becomes the
// representative identity and the day total is recomputed after merging.
func mergeDaysByChecksum(days []DayStatistics) []DayStatistics {
	result := make([]DayStatistics, 0, len(days))

	for _, day := range days {
		var order []string
		groups := make(map[string][]GamePlaytimeDetails)
		for _, entry := range day.Games {
			key := ""
			if len(entry.Sessions) > 0 {
				key = entry.Sessions[0].Checksum
			}
			if key == "" {
				// No checksum: never merged, keyed by own id
				key = "\x00" + entry.Game.ID
			}
			if _, seen := groups[key]; !seen {
				order = append(order, key)
			}
			groups[key] = append(groups[key], entry)
		}

		merged := make([]GamePlaytimeDetails, 0, len(order))
		for _, key := range order {
			group := groups[key]
			if len(group) == 1 {
				merged = append(merged, group[0])
				continue
			}
			merged = append(merged, mergeEntries(group))
		}

		total := 0.0
		for _, entry := range merged {
			total += entry.TotalTime
		}
		result = append(result, DayStatistics{Date: day.Date, Games: merged, Total: total})
	}
	return result
}

// mergeEntries folds a group of entries into one, keyed by the smallest
// game id. Sessions are combined and resorted; the last session is the
// most recent across the group.
func mergeEntries(group []GamePlaytimeDetails) GamePlaytimeDetails {
	rep := group[0]
	for _, entry := range group[1:] {
		if entry.Game.ID < rep.Game.ID {
			rep = entry
		}
	}

	total := 0.0
	var sessions []store.Session
	last := rep.LastSession
	for _, entry := range group {
		total += entry.TotalTime
		sessions = append(sessions, entry.Sessions...)
		if entry.LastSession != nil {
			if last == nil || parseSessionTime(entry.LastSession.Date).After(parseSessionTime(last.Date)) {
				last = entry.LastSession
			}
		}
	}
	sortSessionsDesc(sessions)

	return GamePlaytimeDetails{
		Game:        rep.Game,
		TotalTime:   total,
		Sessions:    sessions,
		LastSession: last,
	}
}

// associationIndex is the flattened association forest used by the merge
// passes: which games are children, and of whom.
type associationIndex struct {
	parentOf map[string]string
}

func buildAssociationIndex(rows []store.AssociationRow) *associationIndex {
	idx := &associationIndex{parentOf: make(map[string]string, len(rows))}
	for _, row := range rows {
		idx.parentOf[row.ChildGameID] = row.ParentGameID
	}
	return idx
}

// mergeDaysByAssociation folds child entries into their parent within each
// day, using the day's own session lists. Children disappear from the
// output; a parent entry is synthesized when the parent played nothing that
// day itself. Day totals are recomputed after merging.
func mergeDaysByAssociation(days []DayStatistics, idx *associationIndex, nameOf func(string) string) []DayStatistics {
	result := make([]DayStatistics, 0, len(days))

	for _, day := range days {
		merged := mergeEntriesByAssociation(day.Games, idx, nameOf)

		total := 0.0
		for _, entry := range merged {
			total += entry.TotalTime
		}
		result = append(result, DayStatistics{Date: day.Date, Games: merged, Total: total})
	}
	return result
}

// mergeEntriesByAssociation folds children into parents in one entry list,
// preserving first-seen order. A parent with no entry of its own is
// synthesized at its first child's position.
func mergeEntriesByAssociation(entries []GamePlaytimeDetails, idx *associationIndex, nameOf func(string) string) []GamePlaytimeDetails {
	var order []string
	byID := make(map[string]GamePlaytimeDetails)

	for _, entry := range entries {
		targetID := entry.Game.ID
		if parent, isChild := idx.parentOf[entry.Game.ID]; isChild {
			targetID = parent
		}

		target, ok := byID[targetID]
		if !ok {
			name := entry.Game.Name
			if targetID != entry.Game.ID {
				name = nameOf(targetID)
			}
			target = GamePlaytimeDetails{Game: Game{ID: targetID, Name: name}}
			order = append(order, targetID)
		}
		if targetID == entry.Game.ID {
			// The parent's own entry carries its real name even if a child
			// synthesized the slot first.
			target.Game = entry.Game
		}

		target.TotalTime += entry.TotalTime
		target.Sessions = append(target.Sessions, entry.Sessions...)
		if entry.LastSession != nil {
			if target.LastSession == nil ||
				parseSessionTime(entry.LastSession.Date).After(parseSessionTime(target.LastSession.Date)) {
				target.LastSession = entry.LastSession
			}
		}
		byID[targetID] = target
	}

	merged := make([]GamePlaytimeDetails, 0, len(order))
	for _, id := range order {
		entry := byID[id]
		sortSessionsDesc(entry.Sessions)
		merged = append(merged, entry)
	}
	return merged
}

// Package stats builds the daily, overall and recent playtime reports from
// raw session records. Every report runs the same pipeline: merge games by
// checksum component, then fold explicit child associations into their
// parents, then drop games hidden by the tracking policy. The order
// matters: visibility is keyed on the canonical game id produced by the two
// merge passes.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/deckstats/playtime/internal/assoc"
	"github.com/deckstats/playtime/internal/identity"
	"github.com/deckstats/playtime/internal/store"
	"github.com/deckstats/playtime/internal/tracking"
)

// Statistics is the aggregation engine over one account's store.
type Statistics struct {
	store    *store.Store
	tracking *tracking.Manager
	assoc    *assoc.Manager

	// now is injectable so the fixed two-week window is testable.
	now func() time.Time
}

// New creates a Statistics engine.
func New(st *store.Store, tm *tracking.Manager, am *assoc.Manager) *Statistics {
	return &Statistics{
		store:    st,
		tracking: tm,
		assoc:    am,
		now:      time.Now,
	}
}

// SetNow overrides the clock used for the fixed two-week window.
func (s *Statistics) SetNow(now func() time.Time) {
	s.now = now
}

// nameLookup returns a resolver for display names backed by the games
// dictionary, used when a merge pass has to synthesize a parent entry.
func (s *Statistics) nameLookup() func(string) string {
	return func(gameID string) string {
		name, err := s.store.GetGameName(gameID)
		if err != nil || name == "" {
			return "[Unknown]"
		}
		return name
	}
}

// PerGameOverallStatistic returns one drill-down entry per canonical game
// identity: totals and sessions summed across checksum groups, children
// folded into parents, hidden games removed.
func (s *Statistics) PerGameOverallStatistic() ([]GamePlaytimeDetails, error) {
	overall, err := s.store.OverallPlaytime()
	if err != nil {
		return nil, err
	}
	allSessions, err := s.store.AllSessions()
	if err != nil {
		return nil, err
	}

	// Group games and sessions by checksum where present, raw id otherwise.
	// OverallPlaytime is ordered by id, so the first game of each group is
	// the smallest-id member: the deterministic representative.
	var order []string
	gamesByKey := make(map[string][]store.GameTime)
	for _, gt := range overall {
		key := gt.Checksum
		if key == "" {
			key = gt.GameID
		}
		if _, seen := gamesByKey[key]; !seen {
			order = append(order, key)
		}
		gamesByKey[key] = append(gamesByKey[key], gt)
	}

	sessionsByKey := make(map[string][]store.Session)
	for _, gs := range allSessions {
		key := gs.Checksum
		if key == "" {
			key = gs.GameID
		}
		sessionsByKey[key] = append(sessionsByKey[key], gs.Session)
	}

	entries := make([]GamePlaytimeDetails, 0, len(order))
	for _, key := range order {
		group := gamesByKey[key]
		first := group[0]

		total := 0.0
		for _, gt := range group {
			total += gt.Seconds
		}

		sessions := sessionsByKey[key]
		last := latestSession(sessions)
		if last == nil {
			last = latestSession(sessionsByKey[first.GameID])
		}

		entries = append(entries, GamePlaytimeDetails{
			Game:        Game{ID: first.GameID, Name: first.GameName},
			TotalTime:   total,
			Sessions:    sessions,
			LastSession: last,
		})
	}

	// Association merge, then visibility filter on the canonical ids.
	assocRows, err := s.store.AllAssociations()
	if err != nil {
		return nil, err
	}
	entries = mergeEntriesByAssociation(entries, buildAssociationIndex(assocRows), s.nameLookup())

	return s.filterVisible(entries)
}

// filterVisible drops entries whose canonical game id is hidden or ignored.
func (s *Statistics) filterVisible(entries []GamePlaytimeDetails) ([]GamePlaytimeDetails, error) {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.Game.ID)
	}
	visible, err := s.tracking.BulkVisibility(ids)
	if err != nil {
		return nil, err
	}

	filtered := entries[:0]
	for _, entry := range entries {
		if visible[entry.Game.ID] {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// expandGameFilter widens a single game id to its full reporting unit: the
// association group plus every checksum-component member of each game in
// that group.
func (s *Statistics) expandGameFilter(gameID string) ([]string, error) {
	ids, err := s.assoc.AssociatedIDs(gameID)
	if err != nil {
		return nil, err
	}

	pairs, err := s.store.ChecksumPairs()
	if err != nil {
		return nil, err
	}
	components := identity.Resolve(ids, pairs)

	seen := make(map[string]bool)
	var expanded []string
	for _, id := range ids {
		for _, member := range components.Members(components.Leader(id)) {
			if !seen[member] {
				seen[member] = true
				expanded = append(expanded, member)
			}
		}
	}
	sort.Strings(expanded)
	return expanded, nil
}

// DailyStatisticsForPeriod builds one DayStatistics per calendar day in
// [start, end] inclusive. When gameID is set, the report is restricted to
// that game's expanded reporting unit. Pagination flags indicate data
// strictly outside the range for the same filter.
func (s *Statistics) DailyStatisticsForPeriod(start, end time.Time, gameID string) (*PagedDayStatistics, error) {
	var filter []string
	if gameID != "" {
		var err error
		filter, err = s.expandGameFilter(gameID)
		if err != nil {
			return nil, err
		}
	}

	startTime := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endTime := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	days, err := s.statisticsForPeriod(startTime, endTime, filter)
	if err != nil {
		return nil, err
	}

	hasPrev, err := s.store.HasDataBefore(startTime, filter)
	if err != nil {
		return nil, err
	}
	hasNext, err := s.store.HasDataAfter(endTime, filter)
	if err != nil {
		return nil, err
	}

	return &PagedDayStatistics{Data: days, HasPrev: hasPrev, HasNext: hasNext}, nil
}

// statisticsForPeriod assembles raw per-day entries and runs the merge
// pipeline on each day.
func (s *Statistics) statisticsForPeriod(startTime, endTime time.Time, filter []string) ([]DayStatistics, error) {
	dailyReports, err := s.store.PerDayReport(startTime, endTime, filter)
	if err != nil {
		return nil, err
	}

	sessionsByDay, err := s.store.SessionsForPeriod(startTime, endTime, filter)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]bool)
	var idsInPeriod []string
	for _, report := range dailyReports {
		if !idSet[report.GameID] {
			idSet[report.GameID] = true
			idsInPeriod = append(idsInPeriod, report.GameID)
		}
	}
	lastSessions, err := s.store.LastSessions(idsInPeriod)
	if err != nil {
		return nil, err
	}

	reportsByDate := make(map[string][]store.DailyGameTime)
	for _, report := range dailyReports {
		reportsByDate[report.Date] = append(reportsByDate[report.Date], report)
	}

	var days []DayStatistics
	for _, day := range dateRange(startTime, endTime.AddDate(0, 0, -1)) {
		date := day.Format(dayLayout)

		var entries []GamePlaytimeDetails
		total := 0.0
		for _, report := range reportsByDate[date] {
			sessions := sessionsByDay[date][report.GameID]
			var last *store.Session
			if ls, ok := lastSessions[report.GameID]; ok {
				last = &ls
			}

			entries = append(entries, GamePlaytimeDetails{
				Game:        Game{ID: report.GameID, Name: report.GameName},
				TotalTime:   report.Seconds,
				Sessions:    sessions,
				LastSession: last,
			})
			total += report.Seconds
		}

		days = append(days, DayStatistics{Date: date, Games: entries, Total: total})
	}

	days = mergeDaysByChecksum(days)

	assocRows, err := s.store.AllAssociations()
	if err != nil {
		return nil, err
	}
	return mergeDaysByAssociation(days, buildAssociationIndex(assocRows), s.nameLookup()), nil
}

// LastTwoWeeks returns flat per-game reports for the 14-day window aligned
// to week boundaries: the current week plus the preceding one.
func (s *Statistics) LastTwoWeeks() ([]GamePlaytimeReport, error) {
	now := s.now()
	start := startOfWeek(now).AddDate(0, 0, -7)
	end := endOfWeek(now)

	periodStats, err := s.store.PeriodGameStats(start, end)
	if err != nil {
		return nil, err
	}
	return s.buildComponentReports(periodStats)
}

// PlaytimeInformation returns the all-time per-identity report, including
// games that have never been played.
func (s *Statistics) PlaytimeInformation() ([]GamePlaytimeReport, error) {
	gameStats, err := s.store.GameStats()
	if err != nil {
		return nil, err
	}
	return s.buildComponentReports(gameStats)
}

// buildComponentReports groups raw per-game stats into checksum components,
// folds associations, filters visibility, and finally expands aliases into
// the flat list shape callers consume: the leader row plus one row per
// alias id, each pointing back at the rest of its component.
func (s *Statistics) buildComponentReports(gameStats []store.GameStat) ([]GamePlaytimeReport, error) {
	pairs, err := s.store.ChecksumPairs()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(gameStats))
	statByID := make(map[string]store.GameStat, len(gameStats))
	for _, st := range gameStats {
		ids = append(ids, st.GameID)
		statByID[st.GameID] = st
	}
	components := identity.Resolve(ids, pairs)

	// Group stats by component leader. gameStats is ordered by id, so
	// members inside each group stay sorted.
	var order []string
	membersByLeader := make(map[string][]store.GameStat)
	for _, st := range gameStats {
		leader := components.Leader(st.GameID)
		if _, seen := membersByLeader[leader]; !seen {
			order = append(order, leader)
		}
		membersByLeader[leader] = append(membersByLeader[leader], st)
	}

	reports := make([]GamePlaytimeReport, 0, len(order))
	aliasesOf := make(map[string][]string)
	for _, leader := range order {
		group := membersByLeader[leader]

		total := 0.0
		lastPlayed := ""
		name := group[0].Name
		var aliases []string
		for _, st := range group {
			total += st.Seconds
			if st.LastPlayed != "" {
				if lastPlayed == "" {
					lastPlayed = st.LastPlayed
				} else {
					lastPlayed = laterDate(lastPlayed, st.LastPlayed)
				}
			}
			if st.GameID == leader {
				name = st.Name
			} else {
				aliases = append(aliases, st.GameID)
			}
		}

		aliasesOf[leader] = aliases
		reports = append(reports, GamePlaytimeReport{
			Game:           Game{ID: leader, Name: name},
			TotalTime:      total,
			LastPlayedDate: lastPlayed,
			AliasesID:      strings.Join(aliases, ","),
		})
	}

	reports, err = s.mergeReportsByAssociation(reports, aliasesOf)
	if err != nil {
		return nil, err
	}

	reports, err = s.filterVisibleReports(reports)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		ti := parseSessionTime(reports[i].LastPlayedDate)
		tj := parseSessionTime(reports[j].LastPlayedDate)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return reports[i].Game.ID > reports[j].Game.ID
	})

	return expandAliases(reports), nil
}

// mergeReportsByAssociation folds child component reports into their
// parent's. The folded child's whole component joins the parent's alias
// list so callers can still resolve its original ids.
func (s *Statistics) mergeReportsByAssociation(reports []GamePlaytimeReport, aliasesOf map[string][]string) ([]GamePlaytimeReport, error) {
	assocRows, err := s.store.AllAssociations()
	if err != nil {
		return nil, err
	}
	idx := buildAssociationIndex(assocRows)
	nameOf := s.nameLookup()

	var order []string
	byID := make(map[string]GamePlaytimeReport)
	for _, report := range reports {
		targetID := report.Game.ID
		if parent, isChild := idx.parentOf[report.Game.ID]; isChild {
			targetID = parent
		}

		target, ok := byID[targetID]
		if !ok {
			target = GamePlaytimeReport{Game: Game{ID: targetID, Name: nameOf(targetID)}}
			order = append(order, targetID)
		}
		if targetID == report.Game.ID {
			target.Game = report.Game
		}

		target.TotalTime += report.TotalTime
		if report.LastPlayedDate != "" {
			if target.LastPlayedDate == "" {
				target.LastPlayedDate = report.LastPlayedDate
			} else {
				target.LastPlayedDate = laterDate(target.LastPlayedDate, report.LastPlayedDate)
			}
		}
		if targetID != report.Game.ID {
			folded := append([]string{report.Game.ID}, aliasesOf[report.Game.ID]...)
			target.AliasesID = joinAliases(target.AliasesID, folded)
		} else if report.AliasesID != "" {
			target.AliasesID = joinAliases(target.AliasesID, strings.Split(report.AliasesID, ","))
		}
		byID[targetID] = target
	}

	merged := make([]GamePlaytimeReport, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	return merged, nil
}

func joinAliases(existing string, more []string) string {
	var aliases []string
	if existing != "" {
		aliases = strings.Split(existing, ",")
	}
	seen := make(map[string]bool, len(aliases))
	for _, id := range aliases {
		seen[id] = true
	}
	for _, id := range more {
		if id != "" && !seen[id] {
			seen[id] = true
			aliases = append(aliases, id)
		}
	}
	return strings.Join(aliases, ",")
}

func (s *Statistics) filterVisibleReports(reports []GamePlaytimeReport) ([]GamePlaytimeReport, error) {
	ids := make([]string, 0, len(reports))
	for _, report := range reports {
		ids = append(ids, report.Game.ID)
	}
	visible, err := s.tracking.BulkVisibility(ids)
	if err != nil {
		return nil, err
	}

	filtered := reports[:0]
	for _, report := range reports {
		if visible[report.Game.ID] {
			filtered = append(filtered, report)
		}
	}
	return filtered, nil
}

// expandAliases appends, before each aliased report row, one row per alias
// id carrying the same totals; the alias's own slot in aliases_id is
// swapped for the leader id so every row can reach the whole component.
func expandAliases(reports []GamePlaytimeReport) []GamePlaytimeReport {
	var result []GamePlaytimeReport
	for _, report := range reports {
		if report.AliasesID != "" {
			aliases := strings.Split(report.AliasesID, ",")
			for _, aliasID := range aliases {
				swapped := make([]string, 0, len(aliases))
				swapped = append(swapped, report.Game.ID)
				for _, other := range aliases {
					if other != aliasID {
						swapped = append(swapped, other)
					}
				}
				result = append(result, GamePlaytimeReport{
					Game:           Game{ID: aliasID, Name: report.Game.Name},
					TotalTime:      report.TotalTime,
					LastPlayedDate: report.LastPlayedDate,
					AliasesID:      strings.Join(swapped, ","),
				})
			}
		}
		result = append(result, report)
	}
	return result
}

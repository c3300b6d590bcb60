package stats

import "github.com/deckstats/playtime/internal/store"

// Game is a reporting identity: a stable id plus display name. After
// merging, the id is the canonical (leader or parent) game id.
type Game struct {
	ID   string
	Name string
}

// GamePlaytimeDetails is one game's drill-down report entry: total time,
// session-level provenance and the most recent session.
type GamePlaytimeDetails struct {
	Game        Game
	TotalTime   float64
	Sessions    []store.Session
	LastSession *store.Session
}

// GamePlaytimeReport is one game's flat summary row with its alias ids.
type GamePlaytimeReport struct {
	Game           Game
	TotalTime      float64
	LastPlayedDate string
	AliasesID      string
}

// DayStatistics is one calendar day's report: one entry per merged game
// active that day plus the day total.
type DayStatistics struct {
	Date  string
	Games []GamePlaytimeDetails
	Total float64
}

// PagedDayStatistics wraps a day range with pagination affordances:
// HasPrev / HasNext indicate data existing strictly outside the range.
type PagedDayStatistics struct {
	Data    []DayStatistics
	HasPrev bool
	HasNext bool
}

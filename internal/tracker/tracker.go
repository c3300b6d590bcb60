// Package tracker is the programmatic entry point of the playtime data
// layer. It validates input, applies the tracking gate, and dispatches to
// the store and the aggregation engine. Error taxonomy: validation errors
// and coded business errors surface synchronously; store failures propagate
// wrapped after rollback.
package tracker

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/deckstats/playtime/internal/assoc"
	"github.com/deckstats/playtime/internal/stats"
	"github.com/deckstats/playtime/internal/store"
	"github.com/deckstats/playtime/internal/tracking"
)

// Tracker bundles one account's store with the managers operating on it.
type Tracker struct {
	store    *store.Store
	tracking *tracking.Manager
	assoc    *assoc.Manager
	stats    *stats.Statistics
	log      *slog.Logger
}

// New creates a Tracker over one account's store. A nil logger discards
// boundary logging.
func New(st *store.Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tm := tracking.NewManager(st)
	am := assoc.NewManager(st)
	return &Tracker{
		store:    st,
		tracking: tm,
		assoc:    am,
		stats:    stats.New(st, tm, am),
		log:      logger,
	}
}

// Store exposes the underlying store for maintenance operations.
func (t *Tracker) Store() *store.Store { return t.store }

// Tracking exposes the tracking policy manager.
func (t *Tracker) Tracking() *tracking.Manager { return t.tracking }

// Associations exposes the association manager.
func (t *Tracker) Associations() *assoc.Manager { return t.assoc }

// Statistics exposes the aggregation engine.
func (t *Tracker) Statistics() *stats.Statistics { return t.stats }

// SaveTime records one play session. The game name is upserted alongside.
// Sessions for paused or ignored games are silently skipped per the
// tracking policy; the caller sees no error because skipping is the
// configured behavior, not a failure.
func (t *Tracker) SaveTime(gameID, gameName string, start time.Time, seconds float64, source string) error {
	if seconds <= 0 {
		return fmt.Errorf("invalid duration %v: must be positive", seconds)
	}
	if gameName == "" {
		return fmt.Errorf("invalid game name: must not be empty")
	}
	if gameID == "" {
		return fmt.Errorf("invalid game id: must not be empty")
	}

	track, err := t.tracking.ShouldTrackSession(gameID)
	if err != nil {
		return err
	}
	if !track {
		t.log.Info("session skipped by tracking policy", "game_id", gameID)
		return nil
	}

	if err := t.store.SaveGame(gameID, gameName); err != nil {
		return err
	}
	if err := t.store.SaveSession(start, seconds, gameID, source); err != nil {
		return err
	}

	t.log.Info("session saved", "game_id", gameID, "duration", seconds)
	return nil
}

// AddTime records the interval [startedAt, endedAt) as one session.
func (t *Tracker) AddTime(startedAt, endedAt time.Time, gameID, gameName string) error {
	return t.SaveTime(gameID, gameName, startedAt, endedAt.Sub(startedAt).Seconds(), "")
}

// ApplyManualTimeForGame reconciles an externally known overall total by
// inserting a single delta session tagged with source. The session log is
// never edited; corrections stay auditable.
func (t *Tracker) ApplyManualTimeForGame(createdAt time.Time, gameID, gameName string, newOverallSeconds float64, source string) error {
	if gameName == "" {
		return fmt.Errorf("invalid game name: must not be empty")
	}
	if err := t.store.ApplyManualTime(createdAt, gameID, gameName, newOverallSeconds, source); err != nil {
		return err
	}
	t.log.Info("manual time applied", "game_id", gameID, "new_total", newOverallSeconds)
	return nil
}

// FetchOverallPlaytime returns one raw row per played game with its
// display checksum.
func (t *Tracker) FetchOverallPlaytime() ([]store.GameTime, error) {
	return t.store.OverallPlaytime()
}

// FetchDailyReport returns the merged day-bucketed report for the period.
func (t *Tracker) FetchDailyReport(start, end time.Time, gameID string) (*stats.PagedDayStatistics, error) {
	return t.stats.DailyStatisticsForPeriod(start, end, gameID)
}

// FetchLastTwoWeeks returns flat per-game reports for the current and
// previous week.
func (t *Tracker) FetchLastTwoWeeks() ([]stats.GamePlaytimeReport, error) {
	return t.stats.LastTwoWeeks()
}

// PerGameOverallStatistic returns drill-down entries per canonical game.
func (t *Tracker) PerGameOverallStatistic() ([]stats.GamePlaytimeDetails, error) {
	return t.stats.PerGameOverallStatistic()
}

// CreateAssociation links child to parent, enforcing every association
// invariant. Violations come back as coded *assoc.Error values.
func (t *Tracker) CreateAssociation(parentGameID, childGameID string) error {
	return t.assoc.Create(parentGameID, childGameID)
}

// RemoveAssociation unlinks a child from its parent.
func (t *Tracker) RemoveAssociation(childGameID string) error {
	return t.assoc.Remove(childGameID)
}

// SetTrackingStatus sets a game's tracking status.
func (t *Tracker) SetTrackingStatus(gameID, status string) error {
	return t.tracking.SetStatus(gameID, status)
}

// GetBulkVisibility resolves UI visibility for many games in one query.
func (t *Tracker) GetBulkVisibility(gameIDs []string) (map[string]bool, error) {
	return t.tracking.BulkVisibility(gameIDs)
}

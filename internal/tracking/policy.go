// Package tracking implements the per-game tracking/visibility policy.
//
// Statuses:
//   - default: shown in statistics, new sessions are tracked
//   - pause:   shown in statistics, new sessions are not tracked
//   - hidden:  hidden from statistics, still tracked in the background
//   - ignore:  hidden from statistics, not tracked
//
// Only non-default statuses are persisted; setting a game back to default
// deletes its row.
package tracking

import (
	"fmt"

	"github.com/deckstats/playtime/internal/store"
)

// Valid status values.
const (
	StatusDefault = "default"
	StatusPause   = "pause"
	StatusHidden  = "hidden"
	StatusIgnore  = "ignore"
)

// ErrInvalidStatus is returned for any status outside the four known values.
type ErrInvalidStatus struct {
	Status string
}

func (e *ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid tracking status %q: must be one of default, pause, hidden, ignore", e.Status)
}

// Manager gates session recording and report visibility per game.
type Manager struct {
	store *store.Store
}

// NewManager creates a tracking manager backed by the given store.
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st}
}

func validStatus(status string) bool {
	switch status {
	case StatusDefault, StatusPause, StatusHidden, StatusIgnore:
		return true
	}
	return false
}

// SetStatus sets a game's tracking status. Setting default removes the
// stored row so the game reverts to the implicit default.
func (m *Manager) SetStatus(gameID, status string) error {
	if !validStatus(status) {
		return &ErrInvalidStatus{Status: status}
	}
	if status == StatusDefault {
		return m.store.DeleteTrackingStatus(gameID)
	}
	return m.store.UpsertTrackingStatus(gameID, status)
}

// Status returns a game's effective tracking status.
func (m *Manager) Status(gameID string) (string, error) {
	status, err := m.store.GetTrackingStatus(gameID)
	if err != nil {
		return "", err
	}
	if status == "" {
		return StatusDefault, nil
	}
	return status, nil
}

// ShouldTrackSession reports whether new sessions are recorded for a game.
func (m *Manager) ShouldTrackSession(gameID string) (bool, error) {
	status, err := m.Status(gameID)
	if err != nil {
		return false, err
	}
	return status == StatusDefault || status == StatusHidden, nil
}

// ShouldShowInUI reports whether a game appears in aggregate views.
func (m *Manager) ShouldShowInUI(gameID string) (bool, error) {
	status, err := m.Status(gameID)
	if err != nil {
		return false, err
	}
	return visible(status), nil
}

func visible(status string) bool {
	return status == StatusDefault || status == StatusPause
}

// BulkVisibility resolves visibility for many games in one store
// round-trip. Every requested id is present in the result; games without a
// stored status default to visible.
func (m *Manager) BulkVisibility(gameIDs []string) (map[string]bool, error) {
	if len(gameIDs) == 0 {
		return map[string]bool{}, nil
	}

	configs, err := m.store.AllTrackingStatuses()
	if err != nil {
		return nil, err
	}

	statusByGame := make(map[string]string, len(configs))
	for _, cfg := range configs {
		statusByGame[cfg.GameID] = cfg.Status
	}

	result := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		status, ok := statusByGame[id]
		if !ok {
			status = StatusDefault
		}
		result[id] = visible(status)
	}
	return result, nil
}

// AllConfigs returns every persisted non-default status with game names.
func (m *Manager) AllConfigs() ([]store.TrackingRow, error) {
	return m.store.AllTrackingStatuses()
}

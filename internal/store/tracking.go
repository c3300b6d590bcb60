package store

import (
	"database/sql"
	"fmt"
)

// Tracking status storage is sparse: only non-default statuses get a row.

// UpsertTrackingStatus stores or replaces a game's tracking status.
func (s *Store) UpsertTrackingStatus(gameID, status string) error {
	query := `
		INSERT INTO tracking_status (game_id, status)
		VALUES (:game_id, :status)
		ON CONFLICT (game_id) DO UPDATE SET status = :status
	`
	_, err := s.db.Exec(query, sql.Named("game_id", gameID), sql.Named("status", status))
	if err != nil {
		return fmt.Errorf("failed to set tracking status for %s: %w", gameID, err)
	}
	return nil
}

// GetTrackingStatus returns the stored status for a game, or "" when the
// game has no row (implicit default).
func (s *Store) GetTrackingStatus(gameID string) (string, error) {
	var status string
	err := s.db.QueryRow(
		`SELECT status FROM tracking_status WHERE game_id = ?`, gameID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get tracking status for %s: %w", gameID, err)
	}
	return status, nil
}

// DeleteTrackingStatus removes a game's status row, reverting it to the
// implicit default.
func (s *Store) DeleteTrackingStatus(gameID string) error {
	_, err := s.db.Exec(`DELETE FROM tracking_status WHERE game_id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete tracking status for %s: %w", gameID, err)
	}
	return nil
}

// AllTrackingStatuses returns every persisted status with the game name.
func (s *Store) AllTrackingStatuses() ([]TrackingRow, error) {
	query := `
		SELECT ts.game_id, g.name, ts.status
		FROM tracking_status ts
		LEFT JOIN games g ON g.id = ts.game_id
		ORDER BY ts.game_id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracking statuses: %w", err)
	}
	defer rows.Close()

	var statuses []TrackingRow
	for rows.Next() {
		var tr TrackingRow
		var name sql.NullString
		if err := rows.Scan(&tr.GameID, &name, &tr.Status); err != nil {
			return nil, fmt.Errorf("failed to scan tracking row: %w", err)
		}
		tr.GameName = name.String
		statuses = append(statuses, tr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracking rows: %w", err)
	}
	return statuses, nil
}

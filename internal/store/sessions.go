package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// timeLayout is the stored timestamp format. All timestamps are normalized
// to UTC so stored strings order the same way the instants do.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Session operations

// SaveSession inserts a play session and adds its duration to the game's
// running overall total in the same transaction.
func (s *Store) SaveSession(start time.Time, seconds float64, gameID, source string) error {
	return s.withTx(func(tx *sql.Tx) error {
		return saveSession(tx, start, seconds, gameID, source)
	})
}

func saveSession(tx *sql.Tx, start time.Time, seconds float64, gameID, source string) error {
	var migrated any
	if source != "" {
		migrated = source
	}

	_, err := tx.Exec(
		`INSERT INTO play_sessions (date_time, duration, game_id, migrated) VALUES (?, ?, ?, ?)`,
		formatTime(start), seconds, gameID, migrated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session for %s: %w", gameID, err)
	}

	return appendOverallTime(tx, gameID, seconds)
}

func appendOverallTime(tx *sql.Tx, gameID string, deltaSeconds float64) error {
	query := `
		INSERT INTO overall_time (game_id, duration)
		VALUES (:game_id, :delta)
		ON CONFLICT (game_id) DO UPDATE SET duration = duration + :delta
	`

	_, err := tx.Exec(query, sql.Named("game_id", gameID), sql.Named("delta", deltaSeconds))
	if err != nil {
		return fmt.Errorf("failed to update overall time for %s: %w", gameID, err)
	}
	return nil
}

// ApplyManualTime reconciles an authoritative external total against the
// tracked log: it computes the delta against the summed session log and, if
// non-zero, inserts exactly one offsetting session tagged with source.
// History is never edited or deleted.
func (s *Store) ApplyManualTime(createdAt time.Time, gameID, gameName string, newOverallSeconds float64, source string) error {
	return s.withTx(func(tx *sql.Tx) error {
		if err := saveGame(tx, gameID, gameName); err != nil {
			return err
		}

		var current sql.NullFloat64
		err := tx.QueryRow(
			`SELECT SUM(duration) FROM play_sessions WHERE game_id = ?`, gameID,
		).Scan(&current)
		if err != nil {
			return fmt.Errorf("failed to sum sessions for %s: %w", gameID, err)
		}

		delta := newOverallSeconds - current.Float64
		if delta == 0 {
			return nil
		}
		return saveSession(tx, createdAt, delta, gameID, source)
	})
}

// HasDataBefore reports whether any session exists strictly before the given
// instant. When gameIDs is non-empty the check is restricted to those games.
func (s *Store) HasDataBefore(t time.Time, gameIDs []string) (bool, error) {
	return s.hasData(`<`, t, gameIDs)
}

// HasDataAfter reports whether any session exists at or after the given
// instant, which callers pass as the exclusive end of their period.
func (s *Store) HasDataAfter(t time.Time, gameIDs []string) (bool, error) {
	return s.hasData(`>=`, t, gameIDs)
}

func (s *Store) hasData(op string, t time.Time, gameIDs []string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM play_sessions WHERE date_time ` + op + ` ?)`
	args := []any{formatTime(t)}

	if len(gameIDs) > 0 {
		query = `SELECT EXISTS(SELECT 1 FROM play_sessions WHERE date_time ` + op + ` ?` +
			` AND game_id IN (` + placeholders(len(gameIDs)) + `))`
		for _, id := range gameIDs {
			args = append(args, id)
		}
	}

	var exists int
	if err := s.db.QueryRow(query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed pagination check: %w", err)
	}
	return exists == 1, nil
}

// AllSessions returns every session exactly once with its game id and the
// game's display checksum, ordered by game then date.
func (s *Store) AllSessions() ([]GameSession, error) {
	query := `
		SELECT ps.game_id, ps.date_time, ps.duration, ps.migrated, gc.checksum
		FROM play_sessions ps
		LEFT JOIN (
			SELECT game_id, MIN(checksum) AS checksum
			FROM game_checksums
			GROUP BY game_id
		) gc ON ps.game_id = gc.game_id
		ORDER BY ps.game_id, ps.date_time
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer rows.Close()

	var sessions []GameSession
	for rows.Next() {
		gs, err := scanGameSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, gs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

func scanGameSession(rows *sql.Rows) (GameSession, error) {
	var gs GameSession
	var migrated, checksum sql.NullString
	if err := rows.Scan(&gs.GameID, &gs.Date, &gs.Duration, &migrated, &checksum); err != nil {
		return gs, fmt.Errorf("failed to scan session row: %w", err)
	}
	gs.Migrated = migrated.String
	gs.Checksum = checksum.String
	return gs, nil
}

// SessionsForPeriod returns session-level detail grouped by day and game for
// sessions in [start, end). When gameIDs is non-empty, only those games'
// sessions are returned.
func (s *Store) SessionsForPeriod(start, end time.Time, gameIDs []string) (map[string]map[string][]Session, error) {
	query := `
		SELECT STRFTIME('%Y-%m-%d', ps.date_time) AS session_date,
		       ps.game_id, ps.date_time, ps.duration, ps.migrated, gc.checksum
		FROM play_sessions ps
		LEFT JOIN (
			SELECT game_id, MIN(checksum) AS checksum
			FROM game_checksums
			GROUP BY game_id
		) gc ON ps.game_id = gc.game_id
		WHERE ps.date_time >= ? AND ps.date_time < ?
	`
	args := []any{formatTime(start), formatTime(end)}

	if len(gameIDs) > 0 {
		query += ` AND ps.game_id IN (` + placeholders(len(gameIDs)) + `)`
		for _, id := range gameIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY session_date, ps.game_id, ps.date_time`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions for period: %w", err)
	}
	defer rows.Close()

	byDayAndGame := make(map[string]map[string][]Session)
	for rows.Next() {
		var day, gameID string
		var sess Session
		var migrated, checksum sql.NullString
		if err := rows.Scan(&day, &gameID, &sess.Date, &sess.Duration, &migrated, &checksum); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sess.Migrated = migrated.String
		sess.Checksum = checksum.String

		if byDayAndGame[day] == nil {
			byDayAndGame[day] = make(map[string][]Session)
		}
		byDayAndGame[day][gameID] = append(byDayAndGame[day][gameID], sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return byDayAndGame, nil
}

// LastSessions returns the most recent session per game for the given ids.
func (s *Store) LastSessions(gameIDs []string) (map[string]Session, error) {
	if len(gameIDs) == 0 {
		return map[string]Session{}, nil
	}

	query := `
		SELECT ps.game_id, ps.date_time, ps.duration, ps.migrated, gc.checksum
		FROM (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY game_id ORDER BY date_time DESC) AS rn
			FROM play_sessions
			WHERE game_id IN (` + placeholders(len(gameIDs)) + `)
		) ps
		LEFT JOIN (
			SELECT game_id, MIN(checksum) AS checksum
			FROM game_checksums
			GROUP BY game_id
		) gc ON gc.game_id = ps.game_id
		WHERE ps.rn = 1
	`

	args := make([]any, len(gameIDs))
	for i, id := range gameIDs {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last sessions: %w", err)
	}
	defer rows.Close()

	last := make(map[string]Session)
	for rows.Next() {
		gs, err := scanGameSession(rows)
		if err != nil {
			return nil, err
		}
		last[gs.GameID] = gs.Session
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating last sessions: %w", err)
	}
	return last, nil
}

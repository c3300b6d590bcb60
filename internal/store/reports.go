package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Report queries

// OverallPlaytime returns one row per game with recorded playtime, carrying
// the game's display checksum (the smallest one when several exist).
func (s *Store) OverallPlaytime() ([]GameTime, error) {
	query := `
		SELECT ot.game_id, g.name, ot.duration, gc.checksum
		FROM overall_time ot
		JOIN games g ON ot.game_id = g.id
		LEFT JOIN (
			SELECT game_id, MIN(checksum) AS checksum
			FROM game_checksums
			GROUP BY game_id
		) gc ON ot.game_id = gc.game_id
		ORDER BY ot.game_id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overall playtime: %w", err)
	}
	defer rows.Close()

	var result []GameTime
	for rows.Next() {
		var gt GameTime
		var checksum sql.NullString
		if err := rows.Scan(&gt.GameID, &gt.GameName, &gt.Seconds, &checksum); err != nil {
			return nil, fmt.Errorf("failed to scan playtime row: %w", err)
		}
		gt.Checksum = checksum.String
		result = append(result, gt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playtime rows: %w", err)
	}
	return result, nil
}

// PerDayReport returns grouped totals per (day, game) for sessions in
// [start, end), each row carrying the game's display checksum. Sessions
// with a migration marker are excluded so that imported history is not
// double counted. When gameIDs is non-empty the report is restricted to
// those games.
func (s *Store) PerDayReport(start, end time.Time, gameIDs []string) ([]DailyGameTime, error) {
	query := `
		SELECT STRFTIME('%Y-%m-%d', ps.date_time) AS date,
		       ps.game_id, g.name, SUM(ps.duration) AS total, COUNT(*) AS sessions, gc.checksum
		FROM play_sessions ps
		LEFT JOIN games g ON ps.game_id = g.id
		LEFT JOIN (
			SELECT game_id, MIN(checksum) AS checksum
			FROM game_checksums
			GROUP BY game_id
		) gc ON gc.game_id = ps.game_id
		WHERE ps.date_time >= ? AND ps.date_time < ?
		  AND ps.migrated IS NULL
	`
	args := []any{formatTime(start), formatTime(end)}

	if len(gameIDs) > 0 {
		query += ` AND ps.game_id IN (` + placeholders(len(gameIDs)) + `)`
		for _, id := range gameIDs {
			args = append(args, id)
		}
	}
	query += `
		GROUP BY date, ps.game_id, gc.checksum
		ORDER BY date, g.name
	`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch per-day report: %w", err)
	}
	defer rows.Close()

	var report []DailyGameTime
	for rows.Next() {
		var d DailyGameTime
		var name, checksum sql.NullString
		if err := rows.Scan(&d.Date, &d.GameID, &name, &d.Seconds, &d.Sessions, &checksum); err != nil {
			return nil, fmt.Errorf("failed to scan daily row: %w", err)
		}
		d.GameName = name.String
		d.Checksum = checksum.String
		report = append(report, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily rows: %w", err)
	}
	return report, nil
}

// GameStats returns every game's all-time total and last played date,
// including games with no sessions at all. Input for the overall
// component-level report.
func (s *Store) GameStats() ([]GameStat, error) {
	query := `
		SELECT g.id, g.name, COALESCE(ot.duration, 0), pa.last_played
		FROM games g
		LEFT JOIN overall_time ot ON g.id = ot.game_id
		LEFT JOIN (
			SELECT game_id, MAX(date_time) AS last_played
			FROM play_sessions
			GROUP BY game_id
		) pa ON g.id = pa.game_id
		ORDER BY g.id
	`
	return s.queryGameStats(query)
}

// PeriodGameStats returns, per game that has any session history, the total
// played inside [start, end) together with the all-time last played date.
// Games with zero playtime in the period are omitted.
func (s *Store) PeriodGameStats(start, end time.Time) ([]GameStat, error) {
	query := `
		SELECT ps.game_id, g.name,
		       SUM(CASE WHEN ps.date_time >= :start AND ps.date_time < :end THEN ps.duration ELSE 0 END) AS period_total,
		       MAX(ps.date_time) AS last_played
		FROM play_sessions ps
		JOIN games g ON ps.game_id = g.id
		GROUP BY ps.game_id
		HAVING period_total > 0
		ORDER BY ps.game_id
	`
	return s.queryGameStats(query,
		sql.Named("start", formatTime(start)), sql.Named("end", formatTime(end)))
}

func (s *Store) queryGameStats(query string, args ...any) ([]GameStat, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game stats: %w", err)
	}
	defer rows.Close()

	var stats []GameStat
	for rows.Next() {
		var st GameStat
		var lastPlayed sql.NullString
		if err := rows.Scan(&st.GameID, &st.Name, &st.Seconds, &lastPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan game stat row: %w", err)
		}
		st.LastPlayed = lastPlayed.String
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game stats: %w", err)
	}
	return stats, nil
}

// OverallTotal returns the cached running total for a game, 0 when absent.
func (s *Store) OverallTotal(gameID string) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		`SELECT duration FROM overall_time WHERE game_id = ?`, gameID,
	).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get overall total for %s: %w", gameID, err)
	}
	return total, nil
}

// CountDriftedTotals reports how many games have a cached overall total
// that disagrees with the sum of their sessions, without touching anything.
func (s *Store) CountDriftedTotals() (int, error) {
	var drifted int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM overall_time ot
		LEFT JOIN (
			SELECT game_id, SUM(duration) AS total
			FROM play_sessions
			GROUP BY game_id
		) ps ON ot.game_id = ps.game_id
		WHERE ot.duration != COALESCE(ps.total, 0)
	`).Scan(&drifted)
	if err != nil {
		return 0, fmt.Errorf("failed to count drifted totals: %w", err)
	}
	return drifted, nil
}

// RecomputeOverallTotals rebuilds the overall_time cache from the session
// log in one transaction and returns the number of games whose cached total
// drifted from the recomputed value. The session log is the source of truth;
// this is the repair path for the denormalized counter.
func (s *Store) RecomputeOverallTotals() (int, error) {
	var drifted int
	err := s.withTx(func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			SELECT COUNT(*)
			FROM overall_time ot
			LEFT JOIN (
				SELECT game_id, SUM(duration) AS total
				FROM play_sessions
				GROUP BY game_id
			) ps ON ot.game_id = ps.game_id
			WHERE ot.duration != COALESCE(ps.total, 0)
		`).Scan(&drifted)
		if err != nil {
			return fmt.Errorf("failed to count drifted totals: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM overall_time`); err != nil {
			return fmt.Errorf("failed to clear overall totals: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO overall_time (game_id, duration)
			SELECT game_id, SUM(duration)
			FROM play_sessions
			GROUP BY game_id
		`)
		if err != nil {
			return fmt.Errorf("failed to rebuild overall totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return drifted, nil
}

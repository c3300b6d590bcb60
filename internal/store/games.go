package store

import (
	"database/sql"
	"fmt"
)

// Game operations

// SaveGame upserts a game. The id is immutable; the name is overwritten
// only when it actually changed.
func (s *Store) SaveGame(gameID, name string) error {
	if name == "" {
		return fmt.Errorf("cannot save game %q with an empty name", gameID)
	}

	return s.withTx(func(tx *sql.Tx) error {
		return saveGame(tx, gameID, name)
	})
}

func saveGame(tx *sql.Tx, gameID, name string) error {
	query := `
		INSERT INTO games (id, name)
		VALUES (:id, :name)
		ON CONFLICT (id) DO UPDATE SET name = :name
		WHERE name != :name
	`

	_, err := tx.Exec(query, sql.Named("id", gameID), sql.Named("name", name))
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", gameID, err)
	}
	return nil
}

// GetGame returns a game with its overall total, or nil when the game has
// no recorded playtime.
func (s *Store) GetGame(gameID string) (*GameInfo, error) {
	query := `
		SELECT g.id, g.name, ot.duration
		FROM games g
		INNER JOIN overall_time ot ON g.id = ot.game_id
		WHERE g.id = ?
	`

	var info GameInfo
	err := s.db.QueryRow(query, gameID).Scan(&info.GameID, &info.Name, &info.Seconds)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	return &info, nil
}

// GameExists reports whether the game is present in the games dictionary,
// regardless of recorded playtime.
func (s *Store) GameExists(gameID string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM games WHERE id = ?)`, gameID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check game %s: %w", gameID, err)
	}
	return exists == 1, nil
}

// GetGameName returns the display name for a game, or "" when unknown.
func (s *Store) GetGameName(gameID string) (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM games WHERE id = ?`, gameID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get name for game %s: %w", gameID, err)
	}
	return name, nil
}

// GamesDictionary returns every game with its overall total and checksum
// rows, ordered by id. Never-played games appear with a zero total.
func (s *Store) GamesDictionary() ([]GameDictEntry, error) {
	query := `
		SELECT g.id, g.name, COALESCE(ot.duration, 0)
		FROM games g
		LEFT JOIN overall_time ot ON g.id = ot.game_id
		ORDER BY g.id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games dictionary: %w", err)
	}
	defer rows.Close()

	var entries []GameDictEntry
	index := make(map[string]int)
	for rows.Next() {
		var e GameDictEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Seconds); err != nil {
			return nil, fmt.Errorf("failed to scan dictionary row: %w", err)
		}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games dictionary: %w", err)
	}

	checksums, err := s.AllChecksums()
	if err != nil {
		return nil, err
	}
	for _, c := range checksums {
		if i, ok := index[c.GameID]; ok {
			entries[i].Checksums = append(entries[i].Checksums, c)
		}
	}
	return entries, nil
}

// ListGames returns the full games dictionary ordered by id.
func (s *Store) ListGames() ([]GameEntry, error) {
	rows, err := s.db.Query(`SELECT id, name FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []GameEntry
	for rows.Next() {
		var g GameEntry
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}
	return games, nil
}

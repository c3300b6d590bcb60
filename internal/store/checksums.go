package store

import (
	"database/sql"
	"fmt"
)

// Checksum operations

// SaveChecksum stores one file checksum for a game. Duplicate
// (game_id, checksum) pairs are ignored.
func (s *Store) SaveChecksum(c ChecksumInput) error {
	return s.withTx(func(tx *sql.Tx) error {
		return saveChecksum(tx, c)
	})
}

// SaveChecksumBulk stores many checksums in a single transaction.
func (s *Store) SaveChecksumBulk(checksums []ChecksumInput) error {
	return s.withTx(func(tx *sql.Tx) error {
		for _, c := range checksums {
			if err := saveChecksum(tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveChecksum(tx *sql.Tx, c ChecksumInput) error {
	var createdAt, updatedAt any
	if c.CreatedAt != "" {
		createdAt = c.CreatedAt
	}
	if c.UpdatedAt != "" {
		updatedAt = c.UpdatedAt
	}

	_, err := tx.Exec(`
		INSERT OR IGNORE INTO game_checksums (game_id, checksum, algorithm, chunk_size, created_at, updated_at)
		VALUES (?, ?, ?, ?, IFNULL(?, CURRENT_TIMESTAMP), IFNULL(?, CURRENT_TIMESTAMP))
	`, c.GameID, c.Checksum, c.Algorithm, c.ChunkSize, createdAt, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to save checksum for %s: %w", c.GameID, err)
	}
	return nil
}

// RemoveChecksum deletes one (game, checksum) pair.
func (s *Store) RemoveChecksum(gameID, checksum string) error {
	_, err := s.db.Exec(
		`DELETE FROM game_checksums WHERE game_id = ? AND checksum = ?`, gameID, checksum,
	)
	if err != nil {
		return fmt.Errorf("failed to remove checksum for %s: %w", gameID, err)
	}
	return nil
}

// RemoveChecksumsForGame deletes all checksum rows of one game.
func (s *Store) RemoveChecksumsForGame(gameID string) error {
	_, err := s.db.Exec(`DELETE FROM game_checksums WHERE game_id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("failed to remove checksums for %s: %w", gameID, err)
	}
	return nil
}

// RemoveAllChecksums deletes every checksum row and returns how many were
// removed. This severs all checksum-based identity links at once.
func (s *Store) RemoveAllChecksums() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM game_checksums`)
	if err != nil {
		return 0, fmt.Errorf("failed to remove all checksums: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// ChecksumsForGame returns all checksum rows of one game with its name.
func (s *Store) ChecksumsForGame(gameID string) ([]ChecksumRow, error) {
	return s.queryChecksums(`
		SELECT gc.id, gc.game_id, g.name, gc.checksum, gc.algorithm, gc.chunk_size, gc.created_at, gc.updated_at
		FROM game_checksums gc
		LEFT JOIN games g ON g.id = gc.game_id
		WHERE gc.game_id = ?
	`, gameID)
}

// AllChecksums returns every checksum row joined with game names.
func (s *Store) AllChecksums() ([]ChecksumRow, error) {
	return s.queryChecksums(`
		SELECT gc.id, gc.game_id, g.name, gc.checksum, gc.algorithm, gc.chunk_size, gc.created_at, gc.updated_at
		FROM game_checksums gc
		LEFT JOIN games g ON g.id = gc.game_id
		ORDER BY gc.game_id, gc.checksum
	`)
}

func (s *Store) queryChecksums(query string, args ...any) ([]ChecksumRow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checksums: %w", err)
	}
	defer rows.Close()

	var checksums []ChecksumRow
	for rows.Next() {
		var c ChecksumRow
		var name, createdAt, updatedAt sql.NullString
		if err := rows.Scan(&c.ID, &c.GameID, &name, &c.Checksum, &c.Algorithm, &c.ChunkSize, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checksum row: %w", err)
		}
		c.GameName = name.String
		c.CreatedAt = createdAt.String
		c.UpdatedAt = updatedAt.String
		checksums = append(checksums, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checksums: %w", err)
	}
	return checksums, nil
}

// ChecksumPairs returns the (game, checksum, algorithm) triples used to
// build the identity graph.
func (s *Store) ChecksumPairs() ([]ChecksumPair, error) {
	rows, err := s.db.Query(`SELECT game_id, checksum, algorithm FROM game_checksums`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checksum pairs: %w", err)
	}
	defer rows.Close()

	var pairs []ChecksumPair
	for rows.Next() {
		var p ChecksumPair
		if err := rows.Scan(&p.GameID, &p.Checksum, &p.Algorithm); err != nil {
			return nil, fmt.Errorf("failed to scan checksum pair: %w", err)
		}
		pairs = append(pairs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checksum pairs: %w", err)
	}
	return pairs, nil
}

// CopyChecksumFromGame copies one of the parent's checksum rows to the
// child, creating an explicit checksum-based identity link between the two.
func (s *Store) CopyChecksumFromGame(childGameID, parentGameID string) error {
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO game_checksums (game_id, checksum, algorithm, chunk_size)
			SELECT ?, gc.checksum, gc.algorithm, gc.chunk_size
			FROM game_checksums gc
			WHERE gc.game_id = ?
			LIMIT 1
		`, childGameID, parentGameID)
		if err != nil {
			return fmt.Errorf("failed to link %s to %s: %w", childGameID, parentGameID, err)
		}
		return nil
	})
}

package store

import (
	"database/sql"
	"fmt"
)

// Association operations. Invariant checks (self-association, role
// conflicts) live in the assoc package; this layer only persists links.

// CreateAssociation persists a parent/child link.
func (s *Store) CreateAssociation(parentGameID, childGameID string) error {
	_, err := s.db.Exec(
		`INSERT INTO game_associations (parent_game_id, child_game_id) VALUES (?, ?)`,
		parentGameID, childGameID,
	)
	if err != nil {
		return fmt.Errorf("failed to create association %s -> %s: %w", parentGameID, childGameID, err)
	}
	return nil
}

// RemoveAssociation deletes the link owning the given child.
func (s *Store) RemoveAssociation(childGameID string) error {
	_, err := s.db.Exec(
		`DELETE FROM game_associations WHERE child_game_id = ?`, childGameID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove association for %s: %w", childGameID, err)
	}
	return nil
}

// IsChild reports whether the game has a parent.
func (s *Store) IsChild(gameID string) (bool, error) {
	return s.existsQuery(
		`SELECT EXISTS(SELECT 1 FROM game_associations WHERE child_game_id = ?)`, gameID)
}

// IsParent reports whether the game has children.
func (s *Store) IsParent(gameID string) (bool, error) {
	return s.existsQuery(
		`SELECT EXISTS(SELECT 1 FROM game_associations WHERE parent_game_id = ?)`, gameID)
}

func (s *Store) existsQuery(query, gameID string) (bool, error) {
	var exists int
	if err := s.db.QueryRow(query, gameID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed association check for %s: %w", gameID, err)
	}
	return exists == 1, nil
}

// ParentOf returns the parent of a child game, or "" when unassociated.
func (s *Store) ParentOf(childGameID string) (string, error) {
	var parent string
	err := s.db.QueryRow(
		`SELECT parent_game_id FROM game_associations WHERE child_game_id = ?`, childGameID,
	).Scan(&parent)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get parent of %s: %w", childGameID, err)
	}
	return parent, nil
}

// ChildrenOf returns the children of a parent game ordered by id.
func (s *Store) ChildrenOf(parentGameID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT child_game_id FROM game_associations WHERE parent_game_id = ? ORDER BY child_game_id`,
		parentGameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get children of %s: %w", parentGameID, err)
	}
	defer rows.Close()

	var children []string
	for rows.Next() {
		var child string
		if err := rows.Scan(&child); err != nil {
			return nil, fmt.Errorf("failed to scan child row: %w", err)
		}
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating children: %w", err)
	}
	return children, nil
}

// AllAssociations returns every link joined with both game names.
func (s *Store) AllAssociations() ([]AssociationRow, error) {
	query := `
		SELECT ga.parent_game_id, pg.name, ga.child_game_id, cg.name, ga.created_at
		FROM game_associations ga
		LEFT JOIN games pg ON pg.id = ga.parent_game_id
		LEFT JOIN games cg ON cg.id = ga.child_game_id
		ORDER BY ga.parent_game_id, ga.child_game_id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch associations: %w", err)
	}
	defer rows.Close()

	var assocs []AssociationRow
	for rows.Next() {
		var a AssociationRow
		var parentName, childName sql.NullString
		if err := rows.Scan(&a.ParentGameID, &parentName, &a.ChildGameID, &childName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan association row: %w", err)
		}
		a.ParentGameName = parentName.String
		a.ChildGameName = childName.String
		assocs = append(assocs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating associations: %w", err)
	}
	return assocs, nil
}

// AssociatedIDs returns the game itself plus every game reachable through
// its association: children for a parent, or the parent and all siblings
// for a child. Unassociated games get a single-element result.
func (s *Store) AssociatedIDs(gameID string) ([]string, error) {
	parent, err := s.ParentOf(gameID)
	if err != nil {
		return nil, err
	}

	root := gameID
	if parent != "" {
		root = parent
	}

	children, err := s.ChildrenOf(root)
	if err != nil {
		return nil, err
	}

	ids := []string{root}
	for _, child := range children {
		if child != gameID {
			ids = append(ids, child)
		}
	}
	if root != gameID {
		ids = append(ids, gameID)
	}
	return ids, nil
}

// CombinedPlaytime sums the overall totals of the game's whole association
// group: the game plus its children, or its parent plus all siblings.
func (s *Store) CombinedPlaytime(gameID string) (float64, error) {
	ids, err := s.AssociatedIDs(gameID)
	if err != nil {
		return 0, err
	}

	query := `SELECT COALESCE(SUM(duration), 0) FROM overall_time WHERE game_id IN (` +
		placeholders(len(ids)) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var total float64
	if err := s.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum combined playtime for %s: %w", gameID, err)
	}
	return total, nil
}

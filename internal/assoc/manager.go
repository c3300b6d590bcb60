// Package assoc manages explicit parent/child game associations: a directed
// forest of depth exactly one, independent of checksum-based identities.
package assoc

import (
	"fmt"

	"github.com/deckstats/playtime/internal/store"
)

// Error codes for association invariant violations. These are expected,
// recoverable business conditions the caller branches on, not faults.
const (
	CodeSelfAssociation = "SELF_ASSOCIATION"
	CodeParentNotFound  = "PARENT_NOT_FOUND"
	CodeChildNotFound   = "CHILD_NOT_FOUND"
	CodeAlreadyChild    = "ALREADY_CHILD"
	CodeIsParent        = "IS_PARENT"
	CodeParentIsChild   = "PARENT_IS_CHILD"
	CodeNotAChild       = "NOT_A_CHILD"
)

// Error is a coded association rule violation.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// ChildInfo is one child entry in a parent's association view.
type ChildInfo struct {
	GameID   string
	GameName string
}

// Association describes a game's role in the association forest. Role is
// "parent" or "child"; exactly one of Children / ParentGameID is set.
type Association struct {
	Role           string
	ParentGameID   string
	ParentGameName string
	Children       []ChildInfo
}

// Manager validates and persists association links.
type Manager struct {
	store *store.Store
}

// NewManager creates an association manager backed by the given store.
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st}
}

// Create links child to parent after checking every invariant: no
// self-links, both games must exist, a child has one parent, parents cannot
// become children and children cannot become parents. Returns a coded
// *Error on violation, nil on success.
func (m *Manager) Create(parentGameID, childGameID string) error {
	if parentGameID == childGameID {
		return &Error{
			Code:    CodeSelfAssociation,
			Message: "cannot associate a game with itself",
		}
	}

	parentExists, err := m.store.GameExists(parentGameID)
	if err != nil {
		return err
	}
	if !parentExists {
		return &Error{
			Code:    CodeParentNotFound,
			Message: fmt.Sprintf("parent game %q does not exist", parentGameID),
		}
	}

	childExists, err := m.store.GameExists(childGameID)
	if err != nil {
		return err
	}
	if !childExists {
		return &Error{
			Code:    CodeChildNotFound,
			Message: fmt.Sprintf("child game %q does not exist", childGameID),
		}
	}

	isChild, err := m.store.IsChild(childGameID)
	if err != nil {
		return err
	}
	if isChild {
		return &Error{
			Code:    CodeAlreadyChild,
			Message: fmt.Sprintf("game %q is already associated with another parent", childGameID),
		}
	}

	isParent, err := m.store.IsParent(childGameID)
	if err != nil {
		return err
	}
	if isParent {
		return &Error{
			Code:    CodeIsParent,
			Message: fmt.Sprintf("game %q has children and cannot become a child itself", childGameID),
		}
	}

	parentIsChild, err := m.store.IsChild(parentGameID)
	if err != nil {
		return err
	}
	if parentIsChild {
		return &Error{
			Code:    CodeParentIsChild,
			Message: fmt.Sprintf("game %q is a child of another game and cannot be a parent", parentGameID),
		}
	}

	return m.store.CreateAssociation(parentGameID, childGameID)
}

// Remove deletes the link owning the given child. Returns NOT_A_CHILD when
// the game has no parent.
func (m *Manager) Remove(childGameID string) error {
	isChild, err := m.store.IsChild(childGameID)
	if err != nil {
		return err
	}
	if !isChild {
		return &Error{
			Code:    CodeNotAChild,
			Message: fmt.Sprintf("game %q is not associated with any parent", childGameID),
		}
	}
	return m.store.RemoveAssociation(childGameID)
}

// All returns every association with game names resolved.
func (m *Manager) All() ([]store.AssociationRow, error) {
	rows, err := m.store.AllAssociations()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ParentGameName == "" {
			rows[i].ParentGameName = "[Unknown]"
		}
		if rows[i].ChildGameName == "" {
			rows[i].ChildGameName = "[Unknown]"
		}
	}
	return rows, nil
}

// ForGame returns the game's association view, or nil when unassociated.
func (m *Manager) ForGame(gameID string) (*Association, error) {
	parentID, err := m.store.ParentOf(gameID)
	if err != nil {
		return nil, err
	}
	if parentID != "" {
		name, err := m.store.GetGameName(parentID)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = "[Unknown]"
		}
		return &Association{
			Role:           "child",
			ParentGameID:   parentID,
			ParentGameName: name,
		}, nil
	}

	children, err := m.store.ChildrenOf(gameID)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, nil
	}

	info := make([]ChildInfo, 0, len(children))
	for _, childID := range children {
		name, err := m.store.GetGameName(childID)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = "[Unknown]"
		}
		info = append(info, ChildInfo{GameID: childID, GameName: name})
	}
	return &Association{Role: "parent", Children: info}, nil
}

// CombinedPlaytime sums the total time of the game's association group.
func (m *Manager) CombinedPlaytime(gameID string) (float64, error) {
	return m.store.CombinedPlaytime(gameID)
}

// AssociatedIDs returns the game plus everything in its association group.
func (m *Manager) AssociatedIDs(gameID string) ([]string, error) {
	return m.store.AssociatedIDs(gameID)
}

// CanBeParent reports whether the game may take on children.
func (m *Manager) CanBeParent(gameID string) (bool, error) {
	isChild, err := m.store.IsChild(gameID)
	if err != nil {
		return false, err
	}
	return !isChild, nil
}

// CanBeChild reports whether the game may be linked under a parent.
func (m *Manager) CanBeChild(gameID string) (bool, error) {
	isChild, err := m.store.IsChild(gameID)
	if err != nil {
		return false, err
	}
	if isChild {
		return false, nil
	}
	isParent, err := m.store.IsParent(gameID)
	if err != nil {
		return false, err
	}
	return !isParent, nil
}

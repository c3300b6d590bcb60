// Package identity resolves checksum-based game identities. Games sharing a
// (checksum, algorithm) pair are aliases of the same underlying content; the
// transitive closure of those links forms connected components, each
// represented externally by its lexicographically smallest member.
package identity

import (
	"sort"
	"strings"

	"github.com/deckstats/playtime/internal/store"
)

// Components maps every known game id to its component leader. It is
// computed fresh per query; checksum links can change at any time, so no
// leader assignment is ever cached across calls.
type Components struct {
	leader  map[string]string
	members map[string][]string
}

// Resolve builds connected components from the given games and checksum
// rows. Games appearing only in pairs (no dictionary entry) still join
// their component. Leaders are deterministic: the smallest member id.
func Resolve(gameIDs []string, pairs []store.ChecksumPair) *Components {
	uf := newUnionFind()
	for _, id := range gameIDs {
		uf.add(id)
	}

	// Edge set: all games sharing a (checksum, algorithm) value.
	byValue := make(map[string][]string)
	for _, p := range pairs {
		key := p.Algorithm + "\x00" + p.Checksum
		uf.add(p.GameID)
		byValue[key] = append(byValue[key], p.GameID)
	}
	for _, group := range byValue {
		for i := 1; i < len(group); i++ {
			uf.union(group[0], group[i])
		}
	}

	// Collect members per root, then pick the smallest id as leader.
	byRoot := make(map[string][]string)
	for id := range uf.parent {
		root := uf.find(id)
		byRoot[root] = append(byRoot[root], id)
	}

	c := &Components{
		leader:  make(map[string]string, len(uf.parent)),
		members: make(map[string][]string, len(byRoot)),
	}
	for _, members := range byRoot {
		sort.Strings(members)
		leader := members[0]
		c.members[leader] = members
		for _, id := range members {
			c.leader[id] = leader
		}
	}
	return c
}

// Leader returns the component leader for a game. Games never seen by
// Resolve are their own leader.
func (c *Components) Leader(gameID string) string {
	if leader, ok := c.leader[gameID]; ok {
		return leader
	}
	return gameID
}

// Members returns the sorted member ids of the component led by leader,
// including the leader itself.
func (c *Components) Members(leader string) []string {
	if members, ok := c.members[leader]; ok {
		return members
	}
	return []string{leader}
}

// Aliases returns the component members other than the leader.
func (c *Components) Aliases(leader string) []string {
	members := c.Members(leader)
	aliases := make([]string, 0, len(members)-1)
	for _, id := range members {
		if id != leader {
			aliases = append(aliases, id)
		}
	}
	return aliases
}

// AliasesID returns the comma-joined alias list for a leader, or "" when
// the component has a single member. This is the wire shape callers use to
// resolve original ids from a merged report row.
func (c *Components) AliasesID(leader string) string {
	return strings.Join(c.Aliases(leader), ",")
}

// unionFind is a plain disjoint-set with path compression and union by
// size. Elements are game ids.
type unionFind struct {
	parent map[string]string
	size   map[string]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[string]string),
		size:   make(map[string]int),
	}
}

func (u *unionFind) add(id string) {
	if _, ok := u.parent[id]; !ok {
		u.parent[id] = id
		u.size[id] = 1
	}
}

func (u *unionFind) find(id string) string {
	for u.parent[id] != id {
		u.parent[id] = u.parent[u.parent[id]]
		id = u.parent[id]
	}
	return id
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}

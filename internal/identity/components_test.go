package identity

import (
	"reflect"
	"testing"

	"github.com/deckstats/playtime/internal/store"
)

func pair(gameID, checksum string) store.ChecksumPair {
	return store.ChecksumPair{GameID: gameID, Checksum: checksum, Algorithm: "sha256"}
}

func TestResolve_NoSharedChecksums(t *testing.T) {
	c := Resolve([]string{"100", "200"}, []store.ChecksumPair{
		pair("100", "aaaa"),
		pair("200", "bbbb"),
	})

	if got := c.Leader("100"); got != "100" {
		t.Errorf("Leader(100) = %q, want itself", got)
	}
	if got := c.Leader("200"); got != "200" {
		t.Errorf("Leader(200) = %q, want itself", got)
	}
	if got := c.AliasesID("100"); got != "" {
		t.Errorf("AliasesID(100) = %q, want empty", got)
	}
}

func TestResolve_SharedChecksumMerges(t *testing.T) {
	c := Resolve([]string{"100", "200"}, []store.ChecksumPair{
		pair("100", "aaaa"),
		pair("200", "aaaa"),
	})

	if got := c.Leader("200"); got != "100" {
		t.Errorf("Leader(200) = %q, want the smallest member 100", got)
	}
	if got := c.Members("100"); !reflect.DeepEqual(got, []string{"100", "200"}) {
		t.Errorf("Members(100) = %v", got)
	}
	if got := c.AliasesID("100"); got != "200" {
		t.Errorf("AliasesID(100) = %q, want 200", got)
	}
}

// TestResolve_Transitive checks that identity is closed transitively: A
// shares with B, B shares with C, so all three form one component even
// though A and C share nothing directly.
func TestResolve_Transitive(t *testing.T) {
	c := Resolve(nil, []store.ChecksumPair{
		pair("300", "aaaa"),
		pair("200", "aaaa"),
		pair("200", "bbbb"),
		pair("100", "bbbb"),
	})

	for _, id := range []string{"100", "200", "300"} {
		if got := c.Leader(id); got != "100" {
			t.Errorf("Leader(%s) = %q, want 100", id, got)
		}
	}
	if got := c.AliasesID("100"); got != "200,300" {
		t.Errorf("AliasesID(100) = %q, want 200,300", got)
	}
}

// TestResolve_AlgorithmScopesEquality checks that the same checksum value
// under different algorithms does not link games.
func TestResolve_AlgorithmScopesEquality(t *testing.T) {
	c := Resolve(nil, []store.ChecksumPair{
		{GameID: "100", Checksum: "aaaa", Algorithm: "sha256"},
		{GameID: "200", Checksum: "aaaa", Algorithm: "md5"},
	})

	if c.Leader("100") == c.Leader("200") {
		t.Error("games with equal checksums under different algorithms must stay separate")
	}
}

func TestResolve_UnknownGameIsOwnLeader(t *testing.T) {
	c := Resolve(nil, nil)

	if got := c.Leader("999"); got != "999" {
		t.Errorf("Leader(999) = %q, want itself", got)
	}
	if got := c.Members("999"); !reflect.DeepEqual(got, []string{"999"}) {
		t.Errorf("Members(999) = %v", got)
	}
}

func TestResolve_GameOnlyInPairsJoinsComponent(t *testing.T) {
	// Game 200 has checksum rows but no dictionary entry.
	c := Resolve([]string{"100"}, []store.ChecksumPair{
		pair("100", "aaaa"),
		pair("200", "aaaa"),
	})

	if got := c.Leader("200"); got != "100" {
		t.Errorf("Leader(200) = %q, want 100", got)
	}
}

func TestAliases_ExcludesLeader(t *testing.T) {
	c := Resolve(nil, []store.ChecksumPair{
		pair("100", "aaaa"),
		pair("200", "aaaa"),
		pair("300", "aaaa"),
	})

	if got := c.Aliases("100"); !reflect.DeepEqual(got, []string{"200", "300"}) {
		t.Errorf("Aliases(100) = %v, want [200 300]", got)
	}
}

package skilltree

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamondGraph: A on the inner ring, B and C above it, ultimate D on top.
func diamondGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph([]Node{
		{ID: "A", Tier: 0},
		{ID: "B", Tier: 1, Prereqs: []NodeID{"A"}},
		{ID: "C", Tier: 1, Prereqs: []NodeID{"A"}},
		{ID: "D", Tier: 2, Prereqs: []NodeID{"B", "C"}, Ultimate: true},
	})
	require.NoError(t, err)
	return g
}

func mustUnlock(t *testing.T, g *Graph, st State, id NodeID) State {
	t.Helper()
	next, err := Unlock(g, st, id)
	require.NoError(t, err)
	return next
}

func TestEligibleNodes_Progression(t *testing.T) {
	g := diamondGraph(t)
	st := NewState(10)

	assert.Equal(t, []NodeID{"A"}, EligibleNodes(g, st))

	st = mustUnlock(t, g, st, "A")
	assert.Equal(t, []NodeID{"B", "C"}, EligibleNodes(g, st))

	st = mustUnlock(t, g, st, "B")
	assert.Equal(t, []NodeID{"C"}, EligibleNodes(g, st), "D needs C before it opens")

	st = mustUnlock(t, g, st, "C")
	assert.Equal(t, []NodeID{"D"}, EligibleNodes(g, st))

	st = mustUnlock(t, g, st, "D")
	assert.Empty(t, EligibleNodes(g, st))
	assert.Equal(t, 6, st.Points())
	assert.Equal(t, []NodeID{"A", "B", "C", "D"}, st.Unlocked())
}

func TestEligibleNodes_NeverIncludesUnlocked(t *testing.T) {
	g := diamondGraph(t)
	st := mustUnlock(t, g, NewState(4), "A")

	for _, id := range EligibleNodes(g, st) {
		if st.IsUnlocked(id) {
			t.Fatalf("eligible set contains unlocked node %s", id)
		}
	}
}

func TestUnlock_ErrorOrder(t *testing.T) {
	g := diamondGraph(t)

	t.Run("points checked before node lookup", func(t *testing.T) {
		_, err := Unlock(g, NewState(0), "no_such_node")
		require.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := Unlock(g, NewState(1), "no_such_node")
		require.ErrorIs(t, err, ErrUnknownNode)
	})

	t.Run("prerequisites not met", func(t *testing.T) {
		_, err := Unlock(g, NewState(1), "D")
		require.ErrorIs(t, err, ErrNotEligible)
	})

	t.Run("already unlocked", func(t *testing.T) {
		st := mustUnlock(t, g, NewState(2), "A")
		_, err := Unlock(g, st, "A")
		require.ErrorIs(t, err, ErrNotEligible)
		assert.Equal(t, 1, st.Points(), "failed unlock must not spend the point")
	})
}

func TestUnlock_FailureLeavesStateUntouched(t *testing.T) {
	g := diamondGraph(t)
	st := mustUnlock(t, g, NewState(5), "A")

	before := st
	_, err := Unlock(g, st, "D")
	require.ErrorIs(t, err, ErrNotEligible)

	assert.Equal(t, before.Points(), st.Points())
	assert.Equal(t, before.Unlocked(), st.Unlocked())
}

func TestUnlock_DoesNotMutateInput(t *testing.T) {
	g := diamondGraph(t)
	st := NewState(3)

	next := mustUnlock(t, g, st, "A")

	assert.Equal(t, 3, st.Points(), "input state points changed")
	assert.False(t, st.IsUnlocked("A"), "input state gained the unlock")
	assert.Equal(t, 2, next.Points())
	assert.True(t, next.IsUnlocked("A"))
}

func TestUnlock_UltimateNeedsAllAdjacent(t *testing.T) {
	// U is ultimate mid-graph: its dependent W counts as adjacent, and W
	// itself needs U first. U can therefore never open, which makes a
	// mid-graph ultimate a dead end under the strict adjacency rule.
	g, err := NewGraph([]Node{
		{ID: "A", Tier: 0},
		{ID: "U", Tier: 1, Prereqs: []NodeID{"A"}, Ultimate: true},
		{ID: "W", Tier: 2, Prereqs: []NodeID{"U"}},
	})
	require.NoError(t, err)

	st := mustUnlock(t, g, NewState(5), "A")
	assert.NotContains(t, EligibleNodes(g, st), NodeID("U"))

	_, err = Unlock(g, st, "U")
	require.ErrorIs(t, err, ErrNotEligible)
}

func TestAddPoints(t *testing.T) {
	st := NewState(0)
	st = st.AddPoints(3)
	assert.Equal(t, 3, st.Points())

	next := st.AddPoints(2)
	assert.Equal(t, 3, st.Points(), "AddPoints must not mutate the receiver")
	assert.Equal(t, 5, next.Points())
}

func TestRestoreState(t *testing.T) {
	st := RestoreState(2, []NodeID{"C", "A", "B"})

	assert.Equal(t, 2, st.Points())
	assert.Equal(t, 3, st.UnlockedCount())
	assert.Equal(t, []NodeID{"A", "B", "C"}, st.Unlocked())
	assert.True(t, st.IsUnlocked("B"))
	assert.False(t, st.IsUnlocked("D"))
}

func TestUnlock_ClosedSetInvariant(t *testing.T) {
	// Random walk over a generated graph: after every successful unlock
	// the unlocked set must stay closed under prerequisites.
	g, err := Generate(314, 40, 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rng := rand.New(rand.NewPCG(7, 0))
	st := NewState(40)

	for range 40 {
		eligible := EligibleNodes(g, st)
		if len(eligible) == 0 {
			break
		}
		pick := eligible[rng.IntN(len(eligible))]
		st, err = Unlock(g, st, pick)
		if err != nil {
			t.Fatalf("unlock %s: %v", pick, err)
		}

		for _, id := range st.Unlocked() {
			n, ok := g.Node(id)
			if !ok {
				t.Fatalf("unlocked id %s not in graph", id)
			}
			for _, pid := range n.Prereqs {
				if !st.IsUnlocked(pid) {
					t.Fatalf("closure violated: %s unlocked without prerequisite %s", id, pid)
				}
			}
		}
	}

	if st.Points()+st.UnlockedCount() != 40 {
		t.Errorf("points not conserved: %d left + %d spent != 40", st.Points(), st.UnlockedCount())
	}
}

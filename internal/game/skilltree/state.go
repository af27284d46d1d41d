package skilltree

import (
	"errors"
	"fmt"
	"sort"
)

// Unlock failure kinds, checked in this order. All are recoverable by the
// caller; none aborts the surrounding game flow.
var (
	ErrInsufficientPoints = errors.New("insufficient skill points")
	ErrUnknownNode        = errors.New("unknown skill node")
	ErrNotEligible        = errors.New("skill node not eligible")
)

// State is one character's progress through a skill graph: the set of
// unlocked nodes plus unspent points. Operations return a new State and
// never touch the receiver, so a failed unlock leaves the caller's value
// exactly as it was. The caller serializes concurrent writers per
// character; State itself holds no lock.
type State struct {
	points   int
	unlocked map[NodeID]struct{}
}

// NewState returns a fresh state with no unlocked nodes.
func NewState(points int) State {
	return State{points: points, unlocked: map[NodeID]struct{}{}}
}

// RestoreState rebuilds a state from persisted data. The ids are not
// checked against any graph here; the character loader cross-validates.
func RestoreState(points int, unlocked []NodeID) State {
	st := NewState(points)
	for _, id := range unlocked {
		st.unlocked[id] = struct{}{}
	}
	return st
}

// Points returns the number of unspent skill points.
func (s State) Points() int {
	return s.points
}

// IsUnlocked reports whether the node is unlocked.
func (s State) IsUnlocked(id NodeID) bool {
	_, ok := s.unlocked[id]
	return ok
}

// UnlockedCount returns how many nodes are unlocked.
func (s State) UnlockedCount() int {
	return len(s.unlocked)
}

// Unlocked returns the unlocked node ids, sorted.
func (s State) Unlocked() []NodeID {
	out := make([]NodeID, 0, len(s.unlocked))
	for id := range s.unlocked {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddPoints returns a state with n more points. Used on level-up and boss
// rewards; n must not be negative.
func (s State) AddPoints(n int) State {
	next := s.clone()
	next.points += n
	return next
}

func (s State) clone() State {
	next := State{points: s.points, unlocked: make(map[NodeID]struct{}, len(s.unlocked))}
	for id := range s.unlocked {
		next.unlocked[id] = struct{}{}
	}
	return next
}

// eligible reports whether the node can be unlocked right now: not yet
// unlocked, all prerequisites unlocked and, for ultimate nodes, every
// adjacent node (prerequisites and dependents both) unlocked.
func eligible(g *Graph, s State, n Node) bool {
	if s.IsUnlocked(n.ID) {
		return false
	}
	for _, pid := range n.Prereqs {
		if !s.IsUnlocked(pid) {
			return false
		}
	}
	if n.Ultimate {
		for _, did := range g.Dependents(n.ID) {
			if !s.IsUnlocked(did) {
				return false
			}
		}
	}
	return true
}

// EligibleNodes returns the ids of every node unlockable in the current
// state, sorted. An empty result is a valid answer.
func EligibleNodes(g *Graph, s State) []NodeID {
	var out []NodeID
	for _, n := range g.nodes {
		if eligible(g, s, n) {
			out = append(out, n.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Unlock spends one point to unlock the node and returns the updated
// state. Preconditions, first failure wins:
//
//  1. at least one unspent point, else ErrInsufficientPoints;
//  2. the id exists in the graph, else ErrUnknownNode;
//  3. the node is eligible, else ErrNotEligible (already-unlocked and
//     unmet-prerequisites both surface as this kind).
//
// On failure the returned state is the input, unchanged.
func Unlock(g *Graph, s State, id NodeID) (State, error) {
	if s.points < 1 {
		return s, fmt.Errorf("unlock %s: %w", id, ErrInsufficientPoints)
	}
	n, ok := g.Node(id)
	if !ok {
		return s, fmt.Errorf("unlock %s: %w", id, ErrUnknownNode)
	}
	if !eligible(g, s, n) {
		return s, fmt.Errorf("unlock %s: %w", id, ErrNotEligible)
	}

	next := s.clone()
	next.unlocked[id] = struct{}{}
	next.points--
	return next, nil
}

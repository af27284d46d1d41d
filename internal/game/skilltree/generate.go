package skilltree

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Prerequisite fan-in for generated nodes: each non-root node depends on
// 1 to 3 nodes from the ring directly below it.
const (
	genMinPrereqs = 1
	genMaxPrereqs = 3
)

// Stats cycled through when assigning generated node effects.
var genStats = []string{"strength", "agility", "intelligence", "vitality"}

// Generate procedurally builds a radial skill graph: nodeCount nodes
// spread over the given number of tiers, outer rings at least as populated
// as inner ones, every non-root node wired to 1–3 prerequisites on the
// ring directly below, and the whole outermost ring tagged ultimate.
//
// The layout is a pure function of its arguments: the same seed, count and
// tier shape always produce a structurally identical graph. Shape errors
// (a ring that would end up empty) are configuration mistakes surfaced at
// startup, not at play time.
func Generate(seed uint64, nodeCount, tiers int) (*Graph, error) {
	if tiers < 1 {
		return nil, fmt.Errorf("generate skill graph: tiers = %d, want >= 1", tiers)
	}
	if nodeCount < tiers {
		return nil, fmt.Errorf("generate skill graph: %d nodes cannot fill %d tiers", nodeCount, tiers)
	}

	rng := rand.New(rand.NewPCG(seed, 0))

	// Even split; the remainder pads the outermost rings.
	base := nodeCount / tiers
	rem := nodeCount % tiers
	tierSize := make([]int, tiers)
	for t := range tierSize {
		tierSize[t] = base
		if t >= tiers-rem {
			tierSize[t]++
		}
	}

	nodes := make([]Node, 0, nodeCount)
	var prevTier []NodeID
	ordinal := 0

	for t := range tiers {
		ids := make([]NodeID, 0, tierSize[t])
		for range tierSize[t] {
			id := NodeID(fmt.Sprintf("node_%03d", ordinal))
			n := Node{
				ID:       id,
				Tier:     t,
				Ultimate: t == tiers-1 && tiers > 1,
				Effect: Effect{
					Stat:   genStats[ordinal%len(genStats)],
					Amount: t + 1,
				},
			}
			if n.Ultimate {
				n.Effect.Amount *= 2
			}
			if t > 0 {
				n.Prereqs = pickPrereqs(rng, prevTier)
			}
			nodes = append(nodes, n)
			ids = append(ids, id)
			ordinal++
		}
		prevTier = ids
	}

	g, err := NewGraph(nodes)
	if err != nil {
		return nil, fmt.Errorf("generate skill graph: %w", err)
	}
	return g, nil
}

// pickPrereqs draws 1–3 distinct ids from the ring below, clamped to its
// size, returned sorted so the prereq list is stable across runs.
func pickPrereqs(rng *rand.Rand, below []NodeID) []NodeID {
	k := genMinPrereqs + rng.IntN(genMaxPrereqs-genMinPrereqs+1)
	if k > len(below) {
		k = len(below)
	}

	picked := make([]NodeID, 0, k)
	for _, idx := range rng.Perm(len(below))[:k] {
		picked = append(picked, below[idx])
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i] < picked[j] })
	return picked
}

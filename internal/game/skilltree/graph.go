package skilltree

import (
	"fmt"
	"sort"
)

// NodeID identifies a single node in a skill graph.
type NodeID string

// Effect is the payload a node grants when unlocked: a flat stat bonus, an
// ability, or both. The graph itself never interprets it; the progression
// layer applies it to the character.
type Effect struct {
	Stat      string `yaml:"stat,omitempty"`
	Amount    int    `yaml:"amount,omitempty"`
	AbilityID string `yaml:"ability,omitempty"`
}

// Node is one unlockable entry in a skill graph. Tier 0 is the innermost
// ring; every prerequisite sits on a strictly lower tier. Ultimate nodes
// additionally require all adjacent nodes unlocked before they become
// eligible.
type Node struct {
	ID       NodeID   `yaml:"id"`
	Tier     int      `yaml:"tier"`
	Prereqs  []NodeID `yaml:"prereqs,omitempty"`
	Effect   Effect   `yaml:"effect,omitempty"`
	Ultimate bool     `yaml:"ultimate,omitempty"`
}

// Graph is an immutable skill topology shared by every character. Built
// once via NewGraph (or Generate) and only read afterwards, so concurrent
// lookups need no locking.
type Graph struct {
	nodes      map[NodeID]Node
	dependents map[NodeID][]NodeID
	maxTier    int
}

// NewGraph validates the node list and builds the graph with its reverse
// (dependent) edge index.
//
// Every prerequisite edge points from a strictly lower tier to a higher
// one, which rules out cycles without a separate walk.
func NewGraph(nodes []Node) (*Graph, error) {
	g := &Graph{
		nodes:      make(map[NodeID]Node, len(nodes)),
		dependents: make(map[NodeID][]NodeID),
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("skill node without id")
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate skill node id %q", n.ID)
		}
		if n.Tier < 0 {
			return nil, fmt.Errorf("skill node %q: negative tier %d", n.ID, n.Tier)
		}
		if n.Tier == 0 && len(n.Prereqs) > 0 {
			return nil, fmt.Errorf("skill node %q: tier-0 node has prerequisites", n.ID)
		}
		if n.Tier > 0 && len(n.Prereqs) == 0 {
			return nil, fmt.Errorf("skill node %q: tier-%d node has no prerequisites", n.ID, n.Tier)
		}
		g.nodes[n.ID] = n
		if n.Tier > g.maxTier {
			g.maxTier = n.Tier
		}
	}

	for _, n := range g.nodes {
		seen := make(map[NodeID]struct{}, len(n.Prereqs))
		for _, pid := range n.Prereqs {
			p, ok := g.nodes[pid]
			if !ok {
				return nil, fmt.Errorf("skill node %q: unknown prerequisite %q", n.ID, pid)
			}
			if _, dup := seen[pid]; dup {
				return nil, fmt.Errorf("skill node %q: duplicate prerequisite %q", n.ID, pid)
			}
			seen[pid] = struct{}{}
			if p.Tier >= n.Tier {
				return nil, fmt.Errorf("skill node %q (tier %d): prerequisite %q is on tier %d, want lower",
					n.ID, n.Tier, pid, p.Tier)
			}
			g.dependents[pid] = append(g.dependents[pid], n.ID)
		}
	}

	for id := range g.dependents {
		deps := g.dependents[id]
		sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
	}

	return g, nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Contains reports whether the graph has a node with the given id.
func (g *Graph) Contains(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// MaxTier returns the highest tier index present in the graph.
func (g *Graph) MaxTier() int {
	return g.maxTier
}

// Dependents returns the ids of nodes that list id as a prerequisite,
// sorted for stable iteration.
func (g *Graph) Dependents(id NodeID) []NodeID {
	return g.dependents[id]
}

// Nodes returns every node ordered by tier, then id. The slice is freshly
// allocated; callers may keep it.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TierNodes returns the ids of all nodes on the given tier, sorted.
func (g *Graph) TierNodes(tier int) []NodeID {
	var out []NodeID
	for id, n := range g.nodes {
		if n.Tier == tier {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Package field implements a toy global-workspace activation
// simulation: a fixed small-world graph of nodes whose scalar
// activation levels are advanced tick by tick through stimulus,
// neighbor blending, winner-take-most broadcast, and decay.
//
// The aggregate "integration" score is a deterministic placeholder
// metric with no claimed scientific validity; it exists so runs can be
// compared and tested, nothing more.
package field

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Config holds the simulation parameters.
type Config struct {
	// Topology generation
	LocalRadius int     // index distance considered "nearby"
	LocalProb   float64 // link probability for nearby nodes
	LongProb    float64 // link probability for far nodes

	// Tick dynamics
	Threshold     float64 // activation level above which a node is "active"
	SelfWeight    float64 // self fraction in the neighbor blend
	BroadcastTop  int     // number of winners per tick
	BroadcastGain float64 // fraction of winner activation sent to each neighbor
	Decay         float64 // multiplicative decay per tick
	TickDelta     float64 // simulated seconds per tick, for timestamps
}

// DefaultConfig returns the standard parameter set.
func DefaultConfig() Config {
	return Config{
		LocalRadius:   3,
		LocalProb:     0.7,
		LongProb:      0.05,
		Threshold:     0.5,
		SelfWeight:    0.7,
		BroadcastTop:  3,
		BroadcastGain: 0.2,
		Decay:         0.95,
		TickDelta:     0.1,
	}
}

// Node is a single activation unit. Neighbors is fixed at
// construction; Activation stays in [0, 1].
type Node struct {
	ID         int
	Activation float64
	Neighbors  []int
	LastUpdate float64
}

// Field owns the node set and advances it one tick at a time.
// It is not safe for concurrent use; the expected caller is a single
// simulation loop.
type Field struct {
	cfg   Config
	nodes []Node
	clock float64

	received []bool // scratch: nodes stimulated this tick
}

// New builds a field of n nodes with randomly generated small-world
// adjacency: nearby-indexed nodes connect with cfg.LocalProb,
// far-indexed nodes with cfg.LongProb. Links are undirected. There is
// no connectivity guarantee; isolated nodes are permitted.
func New(n int, cfg Config, rng *rand.Rand) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("field: node count must be positive, got %d", n)
	}
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p := cfg.LongProb
			if j-i <= cfg.LocalRadius {
				p = cfg.LocalProb
			}
			if rng.Float64() < p {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	return NewWithAdjacency(adj, cfg)
}

// NewWithAdjacency builds a field from an explicit adjacency list.
// adj[i] holds the neighbor ids of node i; ids must be in range and
// distinct from i. Used by callers that need a fixed topology (tests,
// parameter sweeps).
func NewWithAdjacency(adj [][]int, cfg Config) (*Field, error) {
	n := len(adj)
	if n == 0 {
		return nil, fmt.Errorf("field: adjacency must not be empty")
	}
	nodes := make([]Node, n)
	for i, neighbors := range adj {
		for _, nb := range neighbors {
			if nb < 0 || nb >= n {
				return nil, fmt.Errorf("field: node %d has out-of-range neighbor %d", i, nb)
			}
			if nb == i {
				return nil, fmt.Errorf("field: node %d links to itself", i)
			}
		}
		nodes[i] = Node{ID: i, Neighbors: neighbors}
	}
	return &Field{
		cfg:      cfg,
		nodes:    nodes,
		received: make([]bool, n),
	}, nil
}

// Len returns the number of nodes.
func (f *Field) Len() int {
	return len(f.nodes)
}

// Config returns the parameter set the field was built with.
func (f *Field) Config() Config {
	return f.cfg
}

// Activation returns the current activation of a node, or 0 for an
// unknown id.
func (f *Field) Activation(id int) float64 {
	if id < 0 || id >= len(f.nodes) {
		return 0
	}
	return f.nodes[id].Activation
}

// Activations copies the current activation levels into a new slice,
// indexed by node id.
func (f *Field) Activations() []float64 {
	out := make([]float64, len(f.nodes))
	for i := range f.nodes {
		out[i] = f.nodes[i].Activation
	}
	return out
}

// Neighbors returns the neighbor ids of a node. The returned slice is
// the field's own storage and must not be mutated.
func (f *Field) Neighbors(id int) []int {
	if id < 0 || id >= len(f.nodes) {
		return nil
	}
	return f.nodes[id].Neighbors
}

// Step advances the simulation one tick:
//
//  1. External stimulus is added to its target nodes, clamped to 1.
//  2. Stimulated nodes blend their activation with the mean of their
//     neighbors (SelfWeight self, remainder neighbors).
//  3. Nodes above Threshold compete; the top BroadcastTop by
//     activation send BroadcastGain of their activation to every
//     neighbor, clamped to 1. Ties break by ascending node id.
//  4. Every activation decays by the Decay factor.
//
// Stimulus keys that name no node are skipped and returned in
// ascending order so the caller can see exactly which part of the
// batch was dropped. Step itself uses no randomness: a fixed topology
// and stimulus sequence replays to identical trajectories.
func (f *Field) Step(stimulus map[int]float64) []int {
	f.clock += f.cfg.TickDelta

	for i := range f.received {
		f.received[i] = false
	}

	// Stimulus in ascending key order keeps the tick deterministic.
	keys := make([]int, 0, len(stimulus))
	for id := range stimulus {
		keys = append(keys, id)
	}
	sort.Ints(keys)

	var rejected []int
	for _, id := range keys {
		if id < 0 || id >= len(f.nodes) {
			rejected = append(rejected, id)
			continue
		}
		n := &f.nodes[id]
		n.Activation = math.Min(1, n.Activation+stimulus[id])
		f.received[id] = true
	}

	// Local integration: stimulated nodes pull toward their
	// neighborhood mean.
	for i := range f.nodes {
		if !f.received[i] {
			continue
		}
		n := &f.nodes[i]
		if len(n.Neighbors) == 0 {
			continue
		}
		sum := 0.0
		for _, nb := range n.Neighbors {
			sum += f.nodes[nb].Activation
		}
		avg := sum / float64(len(n.Neighbors))
		n.Activation = f.cfg.SelfWeight*n.Activation + (1-f.cfg.SelfWeight)*avg
	}

	// Winner-take-most broadcast.
	var active []int
	for i := range f.nodes {
		if f.nodes[i].Activation > f.cfg.Threshold {
			active = append(active, i)
		}
	}
	sort.SliceStable(active, func(a, b int) bool {
		return f.nodes[active[a]].Activation > f.nodes[active[b]].Activation
	})
	winners := active
	if len(winners) > f.cfg.BroadcastTop {
		winners = winners[:f.cfg.BroadcastTop]
	}
	for _, id := range winners {
		strength := f.nodes[id].Activation * f.cfg.BroadcastGain
		for _, nb := range f.nodes[id].Neighbors {
			t := &f.nodes[nb]
			t.Activation = math.Min(1, t.Activation+strength)
		}
	}

	// Decay.
	for i := range f.nodes {
		f.nodes[i].Activation *= f.cfg.Decay
		f.nodes[i].LastUpdate = f.clock
	}

	return rejected
}

package field

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Aggregate summarizes the field after a tick. All values derive
// deterministically from current state.
type Aggregate struct {
	// MeanActivation is the mean over active nodes (those above
	// Threshold); 0 when nothing is active.
	MeanActivation float64
	// ActiveNodes counts nodes above Threshold.
	ActiveNodes int
	// Integration is total active activation over the whole node
	// count.
	Integration float64
	// Phi sums the toy integrated-information score over a handful of
	// growing active-node subsets.
	Phi float64
	// Coherence is 1/(1+variance) of active activations; high when
	// active nodes sit at similar levels. 0 with fewer than two
	// active nodes.
	Coherence float64
}

// Aggregate computes the current readout.
func (f *Field) Aggregate() Aggregate {
	var active []int
	for i := range f.nodes {
		if f.nodes[i].Activation > f.cfg.Threshold {
			active = append(active, i)
		}
	}
	if len(active) == 0 {
		return Aggregate{}
	}

	acts := make([]float64, len(active))
	total := 0.0
	for i, id := range active {
		acts[i] = f.nodes[id].Activation
		total += acts[i]
	}

	agg := Aggregate{
		MeanActivation: stat.Mean(acts, nil),
		ActiveNodes:    len(active),
		Integration:    total / float64(len(f.nodes)),
	}

	// Phi over growing subsets of the active set, ascending id order.
	limit := len(active)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		end := i + 2
		if end > len(active) {
			end = len(active)
		}
		agg.Phi += f.Phi(active[:end])
	}

	if len(active) >= 2 {
		agg.Coherence = 1 / (1 + stat.PopVariance(acts, nil))
	}

	return agg
}

// Phi computes the toy integrated-information score of a node subset:
// subset mean activation, times internal edge density, times
// log(size+1). Subsets smaller than two score 0, as do subsets with
// unknown ids.
func (f *Field) Phi(subset []int) float64 {
	if len(subset) < 2 {
		return 0
	}
	inSubset := make(map[int]bool, len(subset))
	for _, id := range subset {
		if id < 0 || id >= len(f.nodes) {
			return 0
		}
		inSubset[id] = true
	}

	acts := make([]float64, 0, len(subset))
	internal := 0
	for _, id := range subset {
		acts = append(acts, f.nodes[id].Activation)
		for _, nb := range f.nodes[id].Neighbors {
			// Count each undirected edge once.
			if inSubset[nb] && nb > id {
				internal++
			}
		}
	}

	possible := float64(len(subset)*(len(subset)-1)) / 2
	density := float64(internal) / possible
	phi := stat.Mean(acts, nil) * density * math.Log(float64(len(subset))+1)
	if phi < 0 {
		return 0
	}
	return phi
}

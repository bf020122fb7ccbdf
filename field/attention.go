package field

import "math"

const (
	attentionFloor = 0.3 // minimum activation to capture attention
	attentionBoost = 1.2 // multiplier applied to the focused node
	historyCap     = 100
	stabilityTail  = 10 // history entries consulted for stability
)

// Attention is a crude attention schema layered over a field: the
// single most active node captures focus, gets a small boost, and the
// recent focus history yields a stability readout.
type Attention struct {
	f *Field

	// Focus is the currently attended node id, -1 before anything has
	// captured attention.
	Focus int
	// Strength is the focused node's activation at capture time.
	Strength float64

	history []focusEntry
}

type focusEntry struct {
	id       int
	strength float64
}

// AttentionMetrics summarizes recent attention behavior.
type AttentionMetrics struct {
	// FocusStability is the fraction of recent ticks spent on the
	// most common focus; 0 with no history.
	FocusStability float64
	// Strength is the mean capture strength over recent ticks.
	Strength float64
}

// NewAttention creates an attention schema over the field.
func NewAttention(f *Field) *Attention {
	return &Attention{f: f, Focus: -1}
}

// Update re-evaluates the focus after a field tick. The most active
// node becomes the focus when it clears the floor; the focused node is
// then boosted and clamped. Focus persists across ticks where nothing
// clears the floor.
func (a *Attention) Update() {
	maxAct := 0.0
	candidate := -1
	for i := range a.f.nodes {
		if a.f.nodes[i].Activation > maxAct {
			maxAct = a.f.nodes[i].Activation
			candidate = i
		}
	}

	if candidate >= 0 && maxAct > attentionFloor {
		a.Focus = candidate
		a.Strength = maxAct
		n := &a.f.nodes[candidate]
		n.Activation = math.Min(1, n.Activation*attentionBoost)
	}

	if a.Focus >= 0 {
		a.history = append(a.history, focusEntry{a.Focus, a.Strength})
		if len(a.history) > historyCap {
			a.history = a.history[1:]
		}
	}
}

// Metrics derives stability and strength from the recent focus
// history.
func (a *Attention) Metrics() AttentionMetrics {
	if len(a.history) == 0 {
		return AttentionMetrics{}
	}
	tail := a.history
	if len(tail) > stabilityTail {
		tail = tail[len(tail)-stabilityTail:]
	}

	counts := make(map[int]int, len(tail))
	sum := 0.0
	for _, e := range tail {
		counts[e.id]++
		sum += e.strength
	}
	most := 0
	for _, c := range counts {
		if c > most {
			most = c
		}
	}
	return AttentionMetrics{
		FocusStability: float64(most) / float64(len(tail)),
		Strength:       sum / float64(len(tail)),
	}
}

package telemetry

import "sort"

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowEndTick int32   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Population at window end
	Programs  int `csv:"programs"`
	Derezzed  int `csv:"derezzed"`
	Buildings int `csv:"buildings"`

	// Events during window
	Derezzes        int `csv:"derezzes"`
	TrailPoints     int `csv:"trail_points"`
	RejectedStimuli int `csv:"rejected_stimuli"`
	BuildingsPlaced int `csv:"buildings_placed"`

	// Activation field readout (sampled at window end)
	MeanActivation float64 `csv:"mean_activation"`
	ActiveNodes    int     `csv:"active_nodes"`
	Integration    float64 `csv:"integration"`
	PhiTotal       float64 `csv:"phi_total"`
	Coherence      float64 `csv:"coherence"`

	// Activation distribution across all nodes
	ActP10 float64 `csv:"act_p10"`
	ActP50 float64 `csv:"act_p50"`
	ActP90 float64 `csv:"act_p90"`

	// Attention
	FocusNode      int     `csv:"focus_node"`
	FocusStability float64 `csv:"focus_stability"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeActivationStats calculates mean and percentiles from
// activation values. The input slice is not modified.
func ComputeActivationStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, p10, p50, p90
}

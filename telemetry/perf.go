package telemetry

import "time"

// PerfCollector tracks tick timing over a rolling window.
type PerfCollector struct {
	window    int
	durations []time.Duration
	next      int
	filled    bool
}

// PerfStats is a timing summary.
type PerfStats struct {
	AvgTickDuration time.Duration
	TicksPerSecond  float64
}

// NewPerfCollector creates a collector averaging over the last
// window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 1
	}
	return &PerfCollector{
		window:    window,
		durations: make([]time.Duration, window),
	}
}

// RecordTick records the duration of one simulation tick.
func (p *PerfCollector) RecordTick(d time.Duration) {
	p.durations[p.next] = d
	p.next++
	if p.next == p.window {
		p.next = 0
		p.filled = true
	}
}

// Stats summarizes the recorded window.
func (p *PerfCollector) Stats() PerfStats {
	n := p.next
	if p.filled {
		n = p.window
	}
	if n == 0 {
		return PerfStats{}
	}
	var total time.Duration
	for i := 0; i < n; i++ {
		total += p.durations[i]
	}
	avg := total / time.Duration(n)
	stats := PerfStats{AvgTickDuration: avg}
	if avg > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(avg)
	}
	return stats
}

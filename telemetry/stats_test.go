package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeActivationStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90 := ComputeActivationStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeActivationStatsDoesNotMutate(t *testing.T) {
	values := []float64{0.9, 0.1, 0.5}
	ComputeActivationStats(values)
	if values[0] != 0.9 || values[1] != 0.1 || values[2] != 0.5 {
		t.Error("input slice was reordered")
	}
}

func TestComputeActivationStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeActivationStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10 ticks per window

	if c.WindowReady(5) {
		t.Error("window ready too early")
	}
	if !c.WindowReady(10) {
		t.Error("window not ready at boundary")
	}

	c.RecordDerez()
	c.RecordDerez()
	c.RecordTrailPoint()
	c.RecordRejectedStimuli(3)
	c.RecordBuildingPlaced()

	ws := c.Snapshot(10)
	if ws.WindowEndTick != 10 {
		t.Errorf("WindowEndTick = %d, want 10", ws.WindowEndTick)
	}
	if math.Abs(ws.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %g, want 1.0", ws.SimTimeSec)
	}
	if ws.Derezzes != 2 || ws.TrailPoints != 1 || ws.RejectedStimuli != 3 || ws.BuildingsPlaced != 1 {
		t.Errorf("counters = %+v", ws)
	}

	// Counters reset after snapshot; next window starts at tick 10.
	if c.WindowReady(15) {
		t.Error("window ready too early after reset")
	}
	ws2 := c.Snapshot(20)
	if ws2.Derezzes != 0 {
		t.Errorf("Derezzes = %d after reset, want 0", ws2.Derezzes)
	}
}

func TestPerfCollector(t *testing.T) {
	p := NewPerfCollector(4)
	if got := p.Stats(); got.AvgTickDuration != 0 {
		t.Errorf("empty stats = %+v", got)
	}

	for i := 0; i < 6; i++ {
		p.RecordTick(2_000_000) // 2ms
	}
	stats := p.Stats()
	if stats.AvgTickDuration != 2_000_000 {
		t.Errorf("AvgTickDuration = %v, want 2ms", stats.AvgTickDuration)
	}
	if math.Abs(stats.TicksPerSecond-500) > 0.01 {
		t.Errorf("TicksPerSecond = %g, want 500", stats.TicksPerSecond)
	}
}

package telemetry

// Collector accumulates events within stats windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	tickDelta           float64

	windowStartTick int32

	// Event counters for current window
	derezzes        int
	trailPoints     int
	rejectedStimuli int
	buildingsPlaced int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// tickDelta: simulated seconds per tick.
func NewCollector(windowDurationSec, tickDelta float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / tickDelta)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		tickDelta:           tickDelta,
	}
}

// RecordDerez records a program derez.
func (c *Collector) RecordDerez() {
	c.derezzes++
}

// RecordTrailPoint records an emitted trail point.
func (c *Collector) RecordTrailPoint() {
	c.trailPoints++
}

// RecordRejectedStimuli records stimulus keys dropped by the field.
func (c *Collector) RecordRejectedStimuli(n int) {
	c.rejectedStimuli += n
}

// RecordBuildingPlaced records a building placement.
func (c *Collector) RecordBuildingPlaced() {
	c.buildingsPlaced++
}

// WindowReady reports whether the current window ends at this tick.
func (c *Collector) WindowReady(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Snapshot finalizes the current window: counters are folded into a
// WindowStats skeleton (field and population figures are filled in by
// the caller), and the window resets.
func (c *Collector) Snapshot(tick int32) WindowStats {
	ws := WindowStats{
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * c.tickDelta,
		Derezzes:        c.derezzes,
		TrailPoints:     c.trailPoints,
		RejectedStimuli: c.rejectedStimuli,
		BuildingsPlaced: c.buildingsPlaced,
	}

	c.windowStartTick = tick
	c.derezzes = 0
	c.trailPoints = 0
	c.rejectedStimuli = 0
	c.buildingsPlaced = 0

	return ws
}

package game

import (
	"math"
	"time"
)

func (g *Game) perfStart() time.Time {
	return time.Now()
}

func (g *Game) perfEnd(start time.Time) {
	g.perf.RecordTick(time.Since(start))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// clampFloat clamps x to [lo, hi].
func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// rotateXZ rotates the vector (x, z) by angle radians in the grid
// plane.
func rotateXZ(x, z, angle float64) (float64, float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	return x*c - z*s, x*s + z*c
}

// segmentDistXZ returns the distance in the grid plane from point
// (px, pz) to the segment (ax, az)-(bx, bz).
func segmentDistXZ(px, pz, ax, az, bx, bz float64) float64 {
	dx := bx - ax
	dz := bz - az
	lenSq := dx*dx + dz*dz
	if lenSq == 0 {
		return math.Hypot(px-ax, pz-az)
	}
	t := ((px-ax)*dx + (pz-az)*dz) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(ax+t*dx), pz-(az+t*dz))
}

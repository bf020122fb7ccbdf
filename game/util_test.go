package game

import (
	"math"
	"testing"
)

func TestSegmentDistXZ(t *testing.T) {
	tests := []struct {
		name           string
		px, pz         float64
		ax, az, bx, bz float64
		want           float64
	}{
		{"perpendicular to middle", 0, 5, -10, 0, 10, 0, 5},
		{"on the segment", 3, 0, -10, 0, 10, 0, 0},
		{"beyond endpoint a", -13, 4, -10, 0, 10, 0, 5},
		{"beyond endpoint b", 13, -4, -10, 0, 10, 0, 5},
		{"degenerate segment", 3, 4, 0, 0, 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segmentDistXZ(tt.px, tt.pz, tt.ax, tt.az, tt.bx, tt.bz)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("segmentDistXZ = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateXZ(t *testing.T) {
	x, z := rotateXZ(1, 0, math.Pi/2)
	if math.Abs(x) > 1e-12 || math.Abs(z-1) > 1e-12 {
		t.Errorf("rotateXZ(1, 0, pi/2) = (%v, %v), want (0, 1)", x, z)
	}

	// Rotation preserves length.
	x, z = rotateXZ(3, 4, 1.234)
	if math.Abs(math.Hypot(x, z)-5) > 1e-12 {
		t.Errorf("rotation changed vector length: %v", math.Hypot(x, z))
	}
}

func TestClamp(t *testing.T) {
	if got := clamp01(1.5); got != 1 {
		t.Errorf("clamp01(1.5) = %v", got)
	}
	if got := clamp01(-0.2); got != 0 {
		t.Errorf("clamp01(-0.2) = %v", got)
	}
	if got := clampFloat(7, 0, 5); got != 5 {
		t.Errorf("clampFloat(7, 0, 5) = %v", got)
	}
}

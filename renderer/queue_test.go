package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestQueueSortsBackToFront(t *testing.T) {
	q := NewQueue(1280, 720, 16)
	q.Disc(0, 0, 5, 10.0, rl.White)
	q.Disc(0, 0, 5, 50.0, rl.White)
	q.Line(0, 0, 1, 1, 30.0, rl.White)
	q.Circle(0, 0, 5, 90.0, rl.White)

	q.sortBackToFront()

	want := []float64{90, 50, 30, 10}
	if len(q.items) != len(want) {
		t.Fatalf("Len = %d, want %d", len(q.items), len(want))
	}
	for i, d := range want {
		if q.items[i].Depth != d {
			t.Errorf("items[%d].Depth = %g, want %g", i, q.items[i].Depth, d)
		}
	}
}

func TestQueueStableOnEqualDepth(t *testing.T) {
	q := NewQueue(1280, 720, 4)
	q.Disc(1, 0, 5, 10.0, rl.White)
	q.Disc(2, 0, 5, 10.0, rl.White)
	q.Disc(3, 0, 5, 10.0, rl.White)

	q.sortBackToFront()

	// Equal depths keep queue order, so layering within a plane is
	// under caller control.
	for i, wantX := range []int32{1, 2, 3} {
		if q.items[i].X1 != wantX {
			t.Errorf("items[%d].X1 = %d, want %d", i, q.items[i].X1, wantX)
		}
	}
}

func TestQueueReset(t *testing.T) {
	q := NewQueue(1280, 720, 4)
	q.Disc(0, 0, 5, 1.0, rl.White)
	q.Reset()
	if q.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", q.Len())
	}
}

func TestOnScreen(t *testing.T) {
	q := NewQueue(100, 100, 4)
	tests := []struct {
		x, y, margin int32
		want         bool
	}{
		{50, 50, 0, true},
		{0, 0, 0, true},
		{100, 100, 0, true},
		{-1, 50, 0, false},
		{50, 101, 0, false},
		{-10, 50, 10, true},
		{150, 50, 10, false},
	}
	for _, tt := range tests {
		if got := q.OnScreen(tt.x, tt.y, tt.margin); got != tt.want {
			t.Errorf("OnScreen(%d, %d, %d) = %v, want %v", tt.x, tt.y, tt.margin, got, tt.want)
		}
	}
}

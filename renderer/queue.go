// Package renderer draws projected primitives with painter's-algorithm
// ordering: items are queued with a depth value, sorted far to near
// once per frame, and drawn back to front so nearer items overdraw
// farther ones.
package renderer

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind selects the primitive an Item draws.
type Kind uint8

const (
	KindLine Kind = iota
	KindCircle // outline
	KindDisc   // filled
)

// Item is one queued draw call in screen space.
type Item struct {
	Kind   Kind
	X1, Y1 int32
	X2, Y2 int32 // line end point; unused for circles
	Radius float32
	Depth  float64
	Color  rl.Color
}

// Queue collects projected primitives for one frame.
// It is reused across frames; Reset keeps the backing storage.
type Queue struct {
	items []Item

	viewportW, viewportH int32
}

// NewQueue creates a queue for the given viewport.
func NewQueue(viewportW, viewportH int32, capacity int) *Queue {
	return &Queue{
		items:     make([]Item, 0, capacity),
		viewportW: viewportW,
		viewportH: viewportH,
	}
}

// Reset discards queued items, keeping capacity.
func (q *Queue) Reset() {
	q.items = q.items[:0]
}

// Resize updates the viewport used for the OnScreen check.
func (q *Queue) Resize(viewportW, viewportH int32) {
	q.viewportW = viewportW
	q.viewportH = viewportH
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// OnScreen reports whether a point is inside the viewport, expanded by
// margin on every side. Projection happily returns coordinates far off
// screen; callers use this to cull before queueing.
func (q *Queue) OnScreen(x, y int32, margin int32) bool {
	return x >= -margin && x <= q.viewportW+margin &&
		y >= -margin && y <= q.viewportH+margin
}

// Line queues a line segment.
func (q *Queue) Line(x1, y1, x2, y2 int32, depth float64, color rl.Color) {
	q.items = append(q.items, Item{
		Kind: KindLine,
		X1:   x1, Y1: y1, X2: x2, Y2: y2,
		Depth: depth,
		Color: color,
	})
}

// Circle queues a circle outline.
func (q *Queue) Circle(x, y int32, radius float32, depth float64, color rl.Color) {
	q.items = append(q.items, Item{
		Kind: KindCircle,
		X1:   x, Y1: y,
		Radius: radius,
		Depth:  depth,
		Color:  color,
	})
}

// Disc queues a filled circle.
func (q *Queue) Disc(x, y int32, radius float32, depth float64, color rl.Color) {
	q.items = append(q.items, Item{
		Kind: KindDisc,
		X1:   x, Y1: y,
		Radius: radius,
		Depth:  depth,
		Color:  color,
	})
}

// sortBackToFront orders items far to near. The sort is stable so
// items queued later win ties, letting callers layer coplanar
// primitives by queue order.
func (q *Queue) sortBackToFront() {
	sort.SliceStable(q.items, func(a, b int) bool {
		return q.items[a].Depth > q.items[b].Depth
	})
}

// Flush sorts and draws all queued items, then resets the queue.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (q *Queue) Flush() {
	q.sortBackToFront()
	for i := range q.items {
		it := &q.items[i]
		switch it.Kind {
		case KindLine:
			rl.DrawLine(it.X1, it.Y1, it.X2, it.Y2, it.Color)
		case KindCircle:
			rl.DrawCircleLines(it.X1, it.Y1, it.Radius, it.Color)
		case KindDisc:
			rl.DrawCircle(it.X1, it.Y1, it.Radius, it.Color)
		}
	}
	q.Reset()
}

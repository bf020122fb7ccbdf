package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/encom-labs/gridsim/projection"
)

// Grid emits the floor-plane wireframe. Lines are split into per-cell
// segments so depth sorting interleaves them correctly with entities
// standing on the grid.
type Grid struct {
	Extent  float64 // half-width of the grid square
	Spacing float64 // distance between lines
	Color   rl.Color
}

// Emit projects the grid into the queue. Segments whose endpoints both
// project outside the viewport (with margin) are culled; segments with
// non-finite coordinates never occur for a finite grid, but projection
// errors are skipped defensively.
func (g Grid) Emit(q *Queue, pose projection.Pose, cfg projection.Config) {
	for x := -g.Extent; x <= g.Extent; x += g.Spacing {
		for z := -g.Extent; z < g.Extent; z += g.Spacing {
			g.emitSegment(q, pose, cfg,
				projection.Vec3{X: x, Z: z},
				projection.Vec3{X: x, Z: z + g.Spacing})
			g.emitSegment(q, pose, cfg,
				projection.Vec3{X: z, Z: x},
				projection.Vec3{X: z + g.Spacing, Z: x})
		}
	}
}

func (g Grid) emitSegment(q *Queue, pose projection.Pose, cfg projection.Config, a, b projection.Vec3) {
	ra, err := projection.Project(a, pose, cfg)
	if err != nil {
		return
	}
	rb, err := projection.Project(b, pose, cfg)
	if err != nil {
		return
	}
	const margin = 50
	if !q.OnScreen(int32(ra.X), int32(ra.Y), margin) && !q.OnScreen(int32(rb.X), int32(rb.Y), margin) {
		return
	}
	depth := (ra.Depth + rb.Depth) / 2
	q.Line(int32(ra.X), int32(ra.Y), int32(rb.X), int32(rb.Y), depth, g.Color)
}

// EmitBox projects a wireframe box standing on the grid plane,
// centered at (cx, cz) with the given half-width and height.
func EmitBox(q *Queue, pose projection.Pose, cfg projection.Config, cx, cz, halfW, height float64, color rl.Color) {
	base := [4]projection.Vec3{
		{X: cx - halfW, Y: 0, Z: cz - halfW},
		{X: cx + halfW, Y: 0, Z: cz - halfW},
		{X: cx + halfW, Y: 0, Z: cz + halfW},
		{X: cx - halfW, Y: 0, Z: cz + halfW},
	}
	var top [4]projection.Vec3
	for i, v := range base {
		top[i] = projection.Vec3{X: v.X, Y: height, Z: v.Z}
	}

	edge := func(a, b projection.Vec3) {
		ra, err := projection.Project(a, pose, cfg)
		if err != nil {
			return
		}
		rb, err := projection.Project(b, pose, cfg)
		if err != nil {
			return
		}
		const margin = 100
		if !q.OnScreen(int32(ra.X), int32(ra.Y), margin) && !q.OnScreen(int32(rb.X), int32(rb.Y), margin) {
			return
		}
		q.Line(int32(ra.X), int32(ra.Y), int32(rb.X), int32(rb.Y), (ra.Depth+rb.Depth)/2, color)
	}

	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		edge(base[i], base[j])
		edge(top[i], top[j])
		edge(base[i], top[i])
	}
}

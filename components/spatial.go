package components

// Position is an entity's world-space position. Y is height above the
// grid plane.
type Position struct {
	X, Y, Z float64
}

// Velocity is an entity's per-tick displacement.
type Velocity struct {
	X, Y, Z float64
}

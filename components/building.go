package components

// BuildingKind selects a building silhouette.
type BuildingKind uint8

const (
	BuildingSpire BuildingKind = iota
	BuildingBlock
	BuildingDome
)

// String returns the kind name.
func (k BuildingKind) String() string {
	switch k {
	case BuildingSpire:
		return "spire"
	case BuildingBlock:
		return "block"
	case BuildingDome:
		return "dome"
	}
	return "unknown"
}

// Building is a static wireframe structure on the grid.
type Building struct {
	Kind   BuildingKind
	Width  float64
	Height float64
}

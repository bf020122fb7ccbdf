package components

// ProgramKind classifies grid inhabitants.
type ProgramKind uint8

const (
	KindPlayer ProgramKind = iota
	KindBasic
	KindSecurity
	KindISO
)

// String returns the kind name.
func (k ProgramKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBasic:
		return "basic"
	case KindSecurity:
		return "security"
	case KindISO:
		return "iso"
	}
	return "unknown"
}

// Program identifies a grid inhabitant.
type Program struct {
	ID   uint32
	Kind ProgramKind
	Name string
	// Resonance couples the program into the activation field, 0..1.
	Resonance float64
	Derezzed  bool
}

// TrailPoint is one vertex of a light-cycle trail.
type TrailPoint struct {
	X, Y, Z float64
}

// Trail is the light-cycle wall a program leaves behind. Points are
// ordered oldest first and capped at Max.
type Trail struct {
	Active    bool
	Points    []TrailPoint
	Max       int
	EmitEvery int32 // ticks between emitted points
	SinceEmit int32
}

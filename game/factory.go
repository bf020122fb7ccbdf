package game

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/encom-labs/gridsim/components"
	"github.com/encom-labs/gridsim/config"
)

// Initial resonance per program kind. Resonance scales the stimulus a
// program feeds into the activation field each tick.
const (
	playerResonance   = 1.0
	basicResonance    = 0.0
	securityResonance = 0.1
	isoResonance      = 0.8
)

// spawnInitialPopulation creates the player and the configured program
// counts. Basic programs scatter widely, security programs patrol the
// middle ring, ISOs cluster near the center.
func (g *Game) spawnInitialPopulation() {
	cfg := config.Cfg()
	extent := cfg.Grid.Extent

	g.player = g.spawnProgram(0, 0, components.KindPlayer)

	for i := 0; i < cfg.Population.Basic; i++ {
		x := (g.rng.Float64()*2 - 1) * extent * 0.8
		z := (g.rng.Float64()*2 - 1) * extent * 0.8
		g.spawnProgram(x, z, components.KindBasic)
	}
	for i := 0; i < cfg.Population.Security; i++ {
		x := (g.rng.Float64()*2 - 1) * extent * 0.5
		z := (g.rng.Float64()*2 - 1) * extent * 0.5
		g.spawnProgram(x, z, components.KindSecurity)
	}
	for i := 0; i < cfg.Population.ISO; i++ {
		x := (g.rng.Float64()*2 - 1) * extent * 0.3
		z := (g.rng.Float64()*2 - 1) * extent * 0.3
		g.spawnProgram(x, z, components.KindISO)
	}
}

// spawnProgram creates a program entity at (x, z) on the grid plane.
func (g *Game) spawnProgram(x, z float64, kind components.ProgramKind) ecs.Entity {
	cfg := config.Cfg()

	id := g.nextID
	g.nextID++

	var name string
	var resonance float64
	switch kind {
	case components.KindPlayer:
		name = "USER-1"
		resonance = playerResonance
	case components.KindSecurity:
		name = fmt.Sprintf("SEC-%03d", id)
		resonance = securityResonance
	case components.KindISO:
		name = fmt.Sprintf("ISO-%03d", id)
		resonance = isoResonance
	default:
		name = fmt.Sprintf("PRG-%03d", id)
		resonance = basicResonance
	}

	pos := components.Position{X: x, Z: z}
	vel := components.Velocity{}
	if kind != components.KindPlayer {
		heading := g.rng.Float64() * 2 * math.Pi
		vel.X = math.Cos(heading) * cfg.Population.MoveSpeed
		vel.Z = math.Sin(heading) * cfg.Population.MoveSpeed
	}
	prog := components.Program{
		ID:        id,
		Kind:      kind,
		Name:      name,
		Resonance: resonance,
	}
	trail := components.Trail{
		Max:       cfg.Trails.MaxPoints,
		EmitEvery: int32(cfg.Trails.EmitEvery),
	}

	entity := g.programMapper.NewEntity(&pos, &vel, &prog, &trail)
	g.aliveCount++
	return entity
}

// placeBuilding creates a building at (x, z) with a random silhouette
// and height.
func (g *Game) placeBuilding(x, z float64) {
	cfg := config.Cfg()

	kind := components.BuildingKind(g.rng.Intn(3))
	height := cfg.Buildings.MinHeight +
		g.rng.Float64()*(cfg.Buildings.MaxHeight-cfg.Buildings.MinHeight)

	pos := components.Position{X: x, Z: z}
	b := components.Building{
		Kind:   kind,
		Width:  cfg.Buildings.Width,
		Height: height,
	}
	g.buildingMapper.NewEntity(&pos, &b)
	g.buildingCount++
	g.collector.RecordBuildingPlaced()
}

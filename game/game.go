// Package game wires the grid world together: an ECS population of
// programs, the activation field they stimulate, the camera pose, and
// the draw queue, advanced one tick at a time.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/encom-labs/gridsim/components"
	"github.com/encom-labs/gridsim/config"
	"github.com/encom-labs/gridsim/field"
	"github.com/encom-labs/gridsim/projection"
	"github.com/encom-labs/gridsim/renderer"
	"github.com/encom-labs/gridsim/telemetry"
	"github.com/encom-labs/gridsim/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options configures game startup.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Program entities: position, velocity, identity, trail
	programMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Program,
		components.Trail,
	]
	programFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Program,
		components.Trail,
	]

	// Building entities: static position + silhouette
	buildingMapper *ecs.Map2[components.Position, components.Building]
	buildingFilter *ecs.Filter2[components.Position, components.Building]

	player ecs.Entity
	nextID uint32

	// Camera
	pose    projection.Pose
	projCfg projection.Config

	// Activation field
	field     *field.Field
	attention *field.Attention
	lastAgg   field.Aggregate

	// Scratch buffers reused across ticks
	stimulus map[int]float64
	segments []trailSegment

	// Rendering
	queue *renderer.Queue
	grid  renderer.Grid
	hud   *ui.Panel

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	aliveCount     int
	derezCount     int
	buildingCount  int

	screenW, screenH float32
}

// NewGameWithOptions creates a game instance. config.Init must have
// been called first.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		world: world,
		rng:   rng,
		programMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Program,
			components.Trail,
		](world),
		programFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Program,
			components.Trail,
		](world),
		buildingMapper: ecs.NewMap2[components.Position, components.Building](world),
		buildingFilter: ecs.NewFilter2[components.Position, components.Building](world),

		stimulus: make(map[int]float64),

		headless:       opts.Headless,
		logStats:       opts.LogStats,
		stepsPerUpdate: opts.StepsPerUpdate,

		screenW: cfg.Derived.ScreenW32,
		screenH: cfg.Derived.ScreenH32,
	}
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = 1
	}

	// Camera pose from config
	mode := projection.ModeOrbit
	if cfg.Camera.Mode == "first_person" {
		mode = projection.ModeFirstPerson
	}
	g.pose = projection.Pose{
		Mode: mode,
		Orbit: projection.Orbit{
			Distance: cfg.Camera.Distance,
			Yaw:      cfg.Camera.Yaw,
			Pitch:    cfg.Camera.Pitch,
		},
		Look: projection.Look{Yaw: cfg.Camera.Yaw},
	}
	g.projCfg = projection.Config{
		ViewportW: cfg.Screen.Width,
		ViewportH: cfg.Screen.Height,
		FOV:       cfg.Camera.FOV,
		Zoom:      cfg.Camera.Zoom,
		NearClip:  cfg.Camera.NearClip,
	}

	// Activation field
	f, err := field.New(cfg.Field.Nodes, fieldParams(cfg), rng)
	if err != nil {
		// Unreachable: config.Validate rejects non-positive node counts.
		panic(fmt.Sprintf("game: building field: %v", err))
	}
	g.field = f
	g.attention = field.NewAttention(f)

	// Rendering
	g.queue = renderer.NewQueue(int32(cfg.Screen.Width), int32(cfg.Screen.Height), 4096)
	g.grid = renderer.Grid{
		Extent:  cfg.Grid.Extent,
		Spacing: cfg.Grid.Spacing,
		Color:   rl.NewColor(0, 120, 160, 255),
	}
	if !opts.Headless {
		g.hud = ui.NewPanel(int32(cfg.Screen.Width))
	}

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Field.TickDelta)
	g.perf = telemetry.NewPerfCollector(120)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else {
		g.output = om
		if err := g.output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	g.spawnInitialPopulation()

	return g
}

// fieldParams maps the loaded configuration onto field parameters.
func fieldParams(cfg *config.Config) field.Config {
	return field.Config{
		LocalRadius:   cfg.Field.LocalRadius,
		LocalProb:     cfg.Field.LocalProb,
		LongProb:      cfg.Field.LongProb,
		Threshold:     cfg.Field.Threshold,
		SelfWeight:    cfg.Field.SelfWeight,
		BroadcastTop:  cfg.Field.BroadcastTop,
		BroadcastGain: cfg.Field.BroadcastGain,
		Decay:         cfg.Field.Decay,
		TickDelta:     cfg.Field.TickDelta,
	}
}

// Update runs input handling and simulation steps for one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without any raylib calls.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single tick.
func (g *Game) simulationStep() {
	start := g.perfStart()

	g.tick++

	// 1. Move programs and follow the player with the camera
	g.updateMovement()

	// 2. Emit trail points
	g.updateTrails()

	// 3. Trail collisions derez programs
	g.updateCollisions()

	// 4. Couple the population into the activation field
	g.updateField()

	// 5. Remove derezzed programs
	g.cleanupDerezzed()

	// 6. Flush the stats window if due
	g.flushTelemetry()

	g.perfEnd(start)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Field returns the activation field, for inspection by tools.
func (g *Game) Field() *field.Field {
	return g.field
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/encom-labs/gridsim/components"
	"github.com/encom-labs/gridsim/config"
	"github.com/encom-labs/gridsim/projection"
	"github.com/encom-labs/gridsim/telemetry"
)

// resonanceDrift pulls basic-program resonance toward the field's
// integration score, so an integrated field slowly wakes the plain
// population up.
const resonanceDrift = 0.05

// trailSegment is one wall piece collected for collision checks,
// tagged with its owner and whether it is within the owner's
// ignore-recent window.
type trailSegment struct {
	owner          uint32
	ax, az, bx, bz float64
	recent         bool
}

// updateMovement advances program positions and keeps the camera
// subject on the player.
func (g *Game) updateMovement() {
	cfg := config.Cfg()
	extent := cfg.Grid.Extent
	jitter := cfg.Population.WanderJitter

	query := g.programFilter.Query()
	for query.Next() {
		pos, vel, prog, _ := query.Get()
		if prog.Derezzed {
			continue
		}

		// The player is steered by input; everything else wanders.
		// In headless runs the player wanders too.
		wanders := prog.Kind != components.KindPlayer || g.headless
		if wanders && g.rng.Float64() < jitter {
			turn := (g.rng.Float64() - 0.5) * 1.5
			vel.X, vel.Z = rotateXZ(vel.X, vel.Z, turn)
			if prog.Kind == components.KindPlayer && vel.X == 0 && vel.Z == 0 {
				vel.X = cfg.Population.MoveSpeed
			}
		}

		pos.X += vel.X
		pos.Z += vel.Z

		// Bounce off the grid edge.
		if pos.X > extent {
			pos.X = extent
			vel.X = -vel.X
		} else if pos.X < -extent {
			pos.X = -extent
			vel.X = -vel.X
		}
		if pos.Z > extent {
			pos.Z = extent
			vel.Z = -vel.Z
		} else if pos.Z < -extent {
			pos.Z = -extent
			vel.Z = -vel.Z
		}
	}

	g.followPlayer()
}

// followPlayer re-centers the camera subject on the player's position.
// First-person eye height sits a little above the grid plane.
func (g *Game) followPlayer() {
	if !g.world.Alive(g.player) {
		return
	}
	pos, _, _, _ := g.programMapper.Get(g.player)
	g.pose.Subject.X = pos.X
	g.pose.Subject.Z = pos.Z
	if g.pose.Mode == projection.ModeFirstPerson {
		g.pose.Subject.Y = 2
	} else {
		g.pose.Subject.Y = 0
	}
}

// updateTrails emits trail points for programs with active trails.
func (g *Game) updateTrails() {
	query := g.programFilter.Query()
	for query.Next() {
		pos, _, prog, trail := query.Get()
		if prog.Derezzed || !trail.Active {
			continue
		}

		trail.SinceEmit++
		if trail.SinceEmit < trail.EmitEvery {
			continue
		}
		trail.SinceEmit = 0

		trail.Points = append(trail.Points, components.TrailPoint{X: pos.X, Y: pos.Y, Z: pos.Z})
		if len(trail.Points) > trail.Max {
			trail.Points = trail.Points[1:]
		}
		g.collector.RecordTrailPoint()
	}
}

// updateCollisions derezzes programs that ride into a trail wall.
// Segments are collected first so collision checks see a consistent
// snapshot of all walls.
func (g *Game) updateCollisions() {
	cfg := config.Cfg()
	hitRadius := cfg.Trails.HitRadius
	ignoreRecent := cfg.Trails.IgnoreRecent

	g.segments = g.segments[:0]
	query := g.programFilter.Query()
	for query.Next() {
		_, _, prog, trail := query.Get()
		if prog.Derezzed || len(trail.Points) < 2 {
			continue
		}
		segCount := len(trail.Points) - 1
		for i := 0; i < segCount; i++ {
			a, b := trail.Points[i], trail.Points[i+1]
			g.segments = append(g.segments, trailSegment{
				owner: prog.ID,
				ax:    a.X, az: a.Z,
				bx: b.X, bz: b.Z,
				recent: segCount-i <= ignoreRecent,
			})
		}
	}
	if len(g.segments) == 0 {
		return
	}

	query = g.programFilter.Query()
	for query.Next() {
		pos, _, prog, _ := query.Get()
		if prog.Derezzed {
			continue
		}
		for _, seg := range g.segments {
			// A program never collides with the wall it is still
			// laying down.
			if seg.owner == prog.ID && seg.recent {
				continue
			}
			if segmentDistXZ(pos.X, pos.Z, seg.ax, seg.az, seg.bx, seg.bz) < hitRadius {
				prog.Derezzed = true
				g.collector.RecordDerez()
				break
			}
		}
	}
}

// updateField feeds program resonance into the activation field,
// advances it one tick, and drifts basic-program resonance toward the
// field's integration score.
func (g *Game) updateField() {
	cfg := config.Cfg()
	n := g.field.Len()

	for k := range g.stimulus {
		delete(g.stimulus, k)
	}

	query := g.programFilter.Query()
	for query.Next() {
		_, _, prog, _ := query.Get()
		if prog.Derezzed || prog.Resonance <= 0 {
			continue
		}
		node := int(prog.ID) % n
		g.stimulus[node] += prog.Resonance * cfg.Field.StimulusGain
	}

	rejected := g.field.Step(g.stimulus)
	if len(rejected) > 0 {
		g.collector.RecordRejectedStimuli(len(rejected))
		slog.Debug("stimulus rejected", "nodes", rejected)
	}

	g.attention.Update()
	g.lastAgg = g.field.Aggregate()

	integration := g.lastAgg.Integration
	query = g.programFilter.Query()
	for query.Next() {
		_, _, prog, _ := query.Get()
		if prog.Derezzed || prog.Kind != components.KindBasic {
			continue
		}
		prog.Resonance = clamp01(prog.Resonance + (integration-prog.Resonance)*resonanceDrift)
	}
}

// cleanupDerezzed removes derezzed programs. The player respawns at
// the grid origin instead of being removed.
func (g *Game) cleanupDerezzed() {
	var toRemove []ecs.Entity
	playerDown := false

	query := g.programFilter.Query()
	for query.Next() {
		_, _, prog, _ := query.Get()
		if !prog.Derezzed {
			continue
		}
		if prog.Kind == components.KindPlayer {
			playerDown = true
		}
		toRemove = append(toRemove, query.Entity())
	}

	for _, entity := range toRemove {
		g.programMapper.Remove(entity)
		g.aliveCount--
		g.derezCount++
	}

	if playerDown {
		g.player = g.spawnProgram(0, 0, components.KindPlayer)
	}
}

// flushTelemetry emits the stats window when due.
func (g *Game) flushTelemetry() {
	if !g.collector.WindowReady(g.tick) {
		return
	}

	ws := g.collector.Snapshot(g.tick)
	ws.Programs = g.aliveCount
	ws.Derezzed = g.derezCount
	ws.Buildings = g.buildingCount

	ws.MeanActivation = g.lastAgg.MeanActivation
	ws.ActiveNodes = g.lastAgg.ActiveNodes
	ws.Integration = g.lastAgg.Integration
	ws.PhiTotal = g.lastAgg.Phi
	ws.Coherence = g.lastAgg.Coherence

	_, p10, p50, p90 := telemetry.ComputeActivationStats(g.field.Activations())
	ws.ActP10 = p10
	ws.ActP50 = p50
	ws.ActP90 = p90

	ws.FocusNode = g.attention.Focus
	ws.FocusStability = g.attention.Metrics().FocusStability

	if g.logStats {
		perf := g.perf.Stats()
		slog.Info("window_stats",
			"tick", ws.WindowEndTick,
			"programs", ws.Programs,
			"derezzed", ws.Derezzed,
			"mean_activation", ws.MeanActivation,
			"active_nodes", ws.ActiveNodes,
			"integration", ws.Integration,
			"phi_total", ws.PhiTotal,
			"coherence", ws.Coherence,
			"focus_node", ws.FocusNode,
			"focus_stability", ws.FocusStability,
			"ticks_per_second", perf.TicksPerSecond,
		)
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(ws); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}
}

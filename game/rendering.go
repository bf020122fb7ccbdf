package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/encom-labs/gridsim/components"
	"github.com/encom-labs/gridsim/projection"
	"github.com/encom-labs/gridsim/renderer"
	"github.com/encom-labs/gridsim/ui"
)

var (
	colorPlayer   = rl.NewColor(240, 250, 255, 255)
	colorBasic    = rl.NewColor(0, 190, 255, 255)
	colorSecurity = rl.NewColor(255, 120, 40, 255)
	colorISO      = rl.NewColor(255, 215, 80, 255)
	colorBuilding = rl.NewColor(60, 160, 220, 255)
	colorFocus    = rl.NewColor(255, 230, 120, 255)
)

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(4, 8, 16, 255))

	g.grid.Emit(g.queue, g.pose, g.projCfg)
	g.queueBuildings()
	g.queueTrails()
	g.queuePrograms()
	g.queue.Flush()

	g.drawHUD()

	rl.EndDrawing()
}

// queuePrograms projects program bodies into the draw queue. Discs
// shrink with distance; a program mapped to the attention focus node
// gets a highlight ring.
func (g *Game) queuePrograms() {
	n := g.field.Len()
	focus := g.attention.Focus

	query := g.programFilter.Query()
	for query.Next() {
		pos, _, prog, _ := query.Get()
		if prog.Derezzed {
			continue
		}

		p := projection.Vec3{X: pos.X, Y: pos.Y + 1, Z: pos.Z}
		res, err := projection.Project(p, g.pose, g.projCfg)
		if err != nil {
			continue
		}
		if !g.queue.OnScreen(int32(res.X), int32(res.Y), 50) {
			continue
		}

		radius := float32(clampFloat(300/res.Depth, 2, 14))
		color := programColor(prog)
		g.queue.Disc(int32(res.X), int32(res.Y), radius, res.Depth, color)

		if focus >= 0 && int(prog.ID)%n == focus {
			g.queue.Circle(int32(res.X), int32(res.Y), radius+4, res.Depth, colorFocus)
		}
	}
}

// programColor maps a program to its body color, with brightness
// scaled by resonance.
func programColor(prog *components.Program) rl.Color {
	var base rl.Color
	switch prog.Kind {
	case components.KindPlayer:
		base = colorPlayer
	case components.KindSecurity:
		base = colorSecurity
	case components.KindISO:
		base = colorISO
	default:
		base = colorBasic
	}
	base.A = uint8(140 + 115*clamp01(prog.Resonance))
	return base
}

// queueTrails projects trail walls as line segments.
func (g *Game) queueTrails() {
	query := g.programFilter.Query()
	for query.Next() {
		_, _, prog, trail := query.Get()
		if prog.Derezzed || len(trail.Points) < 2 {
			continue
		}
		color := programColor(prog)
		for i := 0; i < len(trail.Points)-1; i++ {
			a := trail.Points[i]
			b := trail.Points[i+1]
			ra, err := projection.Project(projection.Vec3{X: a.X, Y: a.Y + 1, Z: a.Z}, g.pose, g.projCfg)
			if err != nil {
				continue
			}
			rb, err := projection.Project(projection.Vec3{X: b.X, Y: b.Y + 1, Z: b.Z}, g.pose, g.projCfg)
			if err != nil {
				continue
			}
			if !g.queue.OnScreen(int32(ra.X), int32(ra.Y), 50) && !g.queue.OnScreen(int32(rb.X), int32(rb.Y), 50) {
				continue
			}
			g.queue.Line(int32(ra.X), int32(ra.Y), int32(rb.X), int32(rb.Y), (ra.Depth+rb.Depth)/2, color)
		}
	}
}

// queueBuildings projects building silhouettes.
func (g *Game) queueBuildings() {
	query := g.buildingFilter.Query()
	for query.Next() {
		pos, b := query.Get()

		switch b.Kind {
		case components.BuildingSpire:
			renderer.EmitBox(g.queue, g.pose, g.projCfg, pos.X, pos.Z, b.Width*0.3, b.Height, colorBuilding)
		case components.BuildingDome:
			renderer.EmitBox(g.queue, g.pose, g.projCfg, pos.X, pos.Z, b.Width/2, b.Height*0.5, colorBuilding)
			top := projection.Vec3{X: pos.X, Y: b.Height * 0.5, Z: pos.Z}
			if res, err := projection.Project(top, g.pose, g.projCfg); err == nil {
				radius := float32(clampFloat(b.Width*300/res.Depth/2, 2, 80))
				g.queue.Circle(int32(res.X), int32(res.Y), radius, res.Depth, colorBuilding)
			}
		default:
			renderer.EmitBox(g.queue, g.pose, g.projCfg, pos.X, pos.Z, b.Width/2, b.Height, colorBuilding)
		}
	}
}

// drawHUD renders the overlay text and the control panel.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Programs: %d  Derezzed: %d  Buildings: %d",
		g.aliveCount, g.derezCount, g.buildingCount), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Camera: %s  Speed: %dx  [</>]",
		g.pose.Mode, g.stepsPerUpdate), 10, 60, 20, rl.White)
	if g.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}

	if g.hud == nil {
		return
	}

	cam := ui.CameraState{
		Mode:     g.pose.Mode.String(),
		FOV:      float32(g.projCfg.FOV),
		Distance: float32(g.pose.Orbit.Distance),
		Zoom:     float32(g.projCfg.Zoom),
	}
	fs := ui.FieldState{
		MeanActivation: g.lastAgg.MeanActivation,
		ActiveNodes:    g.lastAgg.ActiveNodes,
		Integration:    g.lastAgg.Integration,
		Phi:            g.lastAgg.Phi,
		Coherence:      g.lastAgg.Coherence,
		FocusNode:      g.attention.Focus,
		FocusStability: g.attention.Metrics().FocusStability,
	}
	g.hud.Draw(&cam, fs, g.field.Activations())

	// Sliders write back through the camera state.
	g.projCfg.FOV = clampFloat(float64(cam.FOV), minFOV, maxFOV)
	g.projCfg.Zoom = clampFloat(float64(cam.Zoom), 0.25, 4)
	g.pose.Orbit.Distance = clampFloat(float64(cam.Distance), minOrbitDistance, maxOrbitDistance)
}

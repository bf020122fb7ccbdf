package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/encom-labs/gridsim/config"
	"github.com/encom-labs/gridsim/projection"
)

// Camera parameter bounds enforced by input handling.
const (
	minOrbitDistance = 5.0
	maxOrbitDistance = 200.0
	minFOV           = 30.0
	maxFOV           = 120.0
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Camera mode toggle
	if rl.IsKeyPressed(rl.KeyC) {
		if g.pose.Mode == projection.ModeOrbit {
			g.pose.Mode = projection.ModeFirstPerson
			// Carry the orbit heading into first person so the view
			// direction does not jump.
			g.pose.Look.Yaw = g.pose.Orbit.Yaw + 180
			g.pose.Look.Pitch = 0
		} else {
			g.pose.Mode = projection.ModeOrbit
		}
	}

	// HUD panel toggle
	if rl.IsKeyPressed(rl.KeyTab) && g.hud != nil {
		g.hud.Toggle()
	}

	if g.paused {
		return
	}

	g.handleCameraInput()
	g.handlePlayerInput()
}

// handleResize propagates window resizes to the projection config and
// the draw queue.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW = w
	g.screenH = h

	g.projCfg.ViewportW = int(w)
	g.projCfg.ViewportH = int(h)
	g.queue.Resize(int32(w), int32(h))
	if g.hud != nil {
		g.hud.Resize(int32(w))
	}
}

// handleCameraInput adjusts the camera pose.
func (g *Game) handleCameraInput() {
	cfg := config.Cfg()
	turn := cfg.Camera.TurnSpeed
	pitchLimit := cfg.Camera.PitchLimit

	switch g.pose.Mode {
	case projection.ModeOrbit:
		if rl.IsKeyDown(rl.KeyQ) {
			g.pose.Orbit.Yaw -= turn
		}
		if rl.IsKeyDown(rl.KeyE) {
			g.pose.Orbit.Yaw += turn
		}
		if rl.IsKeyDown(rl.KeyR) {
			g.pose.Orbit.Pitch = clampFloat(g.pose.Orbit.Pitch+turn, -pitchLimit, pitchLimit)
		}
		if rl.IsKeyDown(rl.KeyF) {
			g.pose.Orbit.Pitch = clampFloat(g.pose.Orbit.Pitch-turn, -pitchLimit, pitchLimit)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			g.pose.Orbit.Distance = clampFloat(
				g.pose.Orbit.Distance-float64(wheel)*4,
				minOrbitDistance, maxOrbitDistance)
		}
	case projection.ModeFirstPerson:
		if rl.IsKeyDown(rl.KeyQ) || rl.IsKeyDown(rl.KeyLeft) {
			g.pose.Look.Yaw -= turn
		}
		if rl.IsKeyDown(rl.KeyE) || rl.IsKeyDown(rl.KeyRight) {
			g.pose.Look.Yaw += turn
		}
		if rl.IsKeyDown(rl.KeyUp) {
			g.pose.Look.Pitch = clampFloat(g.pose.Look.Pitch+turn, -pitchLimit, pitchLimit)
		}
		if rl.IsKeyDown(rl.KeyDown) {
			g.pose.Look.Pitch = clampFloat(g.pose.Look.Pitch-turn, -pitchLimit, pitchLimit)
		}
		// In first person the wheel adjusts the lens instead of the
		// (nonexistent) orbit distance.
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			g.projCfg.FOV = clampFloat(g.projCfg.FOV-float64(wheel)*2, minFOV, maxFOV)
		}
	}
}

// handlePlayerInput steers the player and triggers world actions.
func (g *Game) handlePlayerInput() {
	if !g.world.Alive(g.player) {
		return
	}
	cfg := config.Cfg()
	speed := cfg.Population.MoveSpeed

	pos, vel, _, trail := g.programMapper.Get(g.player)

	// Movement is relative to the camera heading: W rides away from an
	// orbit camera, or forward along the first-person view.
	var heading float64
	if g.pose.Mode == projection.ModeOrbit {
		heading = (g.pose.Orbit.Yaw + 180) * math.Pi / 180
	} else {
		heading = g.pose.Look.Yaw * math.Pi / 180
	}
	fx, fz := math.Sin(heading), math.Cos(heading)
	rx, rz := fz, -fx

	vel.X, vel.Z = 0, 0
	if rl.IsKeyDown(rl.KeyW) {
		vel.X += fx * speed
		vel.Z += fz * speed
	}
	if rl.IsKeyDown(rl.KeyS) {
		vel.X -= fx * speed
		vel.Z -= fz * speed
	}
	if rl.IsKeyDown(rl.KeyA) {
		vel.X -= rx * speed
		vel.Z -= rz * speed
	}
	if rl.IsKeyDown(rl.KeyD) {
		vel.X += rx * speed
		vel.Z += rz * speed
	}

	// Light-cycle trail toggle
	if rl.IsKeyPressed(rl.KeyL) {
		trail.Active = !trail.Active
		if !trail.Active {
			trail.Points = trail.Points[:0]
			trail.SinceEmit = 0
		}
	}

	// Drop a building a few units ahead of the player
	if rl.IsKeyPressed(rl.KeyB) {
		bx := clampFloat(pos.X+fx*15, -cfg.Grid.Extent, cfg.Grid.Extent)
		bz := clampFloat(pos.Z+fz*15, -cfg.Grid.Extent, cfg.Grid.Extent)
		g.placeBuilding(bx, bz)
	}
}

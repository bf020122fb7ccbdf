package game

import (
	"math"
	"testing"

	"github.com/encom-labs/gridsim/components"
	"github.com/encom-labs/gridsim/config"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	config.MustInit("")
	return NewGameWithOptions(Options{Seed: seed, Headless: true, StepsPerUpdate: 1})
}

func TestInitialPopulation(t *testing.T) {
	g := newTestGame(t, 1)
	cfg := config.Cfg()

	want := 1 + cfg.Population.Basic + cfg.Population.Security + cfg.Population.ISO
	if g.aliveCount != want {
		t.Errorf("aliveCount = %d, want %d", g.aliveCount, want)
	}

	counts := map[components.ProgramKind]int{}
	query := g.programFilter.Query()
	for query.Next() {
		_, _, prog, _ := query.Get()
		counts[prog.Kind]++
	}
	if counts[components.KindPlayer] != 1 {
		t.Errorf("players = %d, want 1", counts[components.KindPlayer])
	}
	if counts[components.KindBasic] != cfg.Population.Basic {
		t.Errorf("basic = %d, want %d", counts[components.KindBasic], cfg.Population.Basic)
	}
	if counts[components.KindSecurity] != cfg.Population.Security {
		t.Errorf("security = %d, want %d", counts[components.KindSecurity], cfg.Population.Security)
	}
	if counts[components.KindISO] != cfg.Population.ISO {
		t.Errorf("iso = %d, want %d", counts[components.KindISO], cfg.Population.ISO)
	}
}

func TestHeadlessRunInvariants(t *testing.T) {
	g := newTestGame(t, 7)
	cfg := config.Cfg()
	extent := cfg.Grid.Extent

	for i := 0; i < 100; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 100 {
		t.Errorf("tick = %d, want 100", g.Tick())
	}
	if g.aliveCount < 1 {
		t.Error("player should always survive via respawn")
	}

	query := g.programFilter.Query()
	for query.Next() {
		pos, _, prog, _ := query.Get()
		if math.Abs(pos.X) > extent || math.Abs(pos.Z) > extent {
			t.Errorf("%s escaped the grid: (%g, %g)", prog.Name, pos.X, pos.Z)
		}
	}

	for id, a := range g.field.Activations() {
		if a < 0 || a > 1 {
			t.Errorf("node %d activation %g outside [0, 1]", id, a)
		}
	}
}

func TestHeadlessRunIsDeterministic(t *testing.T) {
	g1 := newTestGame(t, 42)
	g2 := newTestGame(t, 42)

	for i := 0; i < 300; i++ {
		g1.UpdateHeadless()
		g2.UpdateHeadless()
	}

	if g1.aliveCount != g2.aliveCount || g1.derezCount != g2.derezCount {
		t.Errorf("population diverged: %d/%d vs %d/%d",
			g1.aliveCount, g1.derezCount, g2.aliveCount, g2.derezCount)
	}

	a1 := g1.field.Activations()
	a2 := g2.field.Activations()
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("node %d activation diverged: %g vs %g", i, a1[i], a2[i])
		}
	}
}

func TestFieldCouplingFromPlayer(t *testing.T) {
	g := newTestGame(t, 5)

	// The player (id 0, resonance 1) drives node 0 every tick.
	g.updateField()

	if got := g.field.Activation(0); got < 0.2 {
		t.Errorf("node 0 activation after one coupled tick = %g, want > 0.2", got)
	}
}

func TestTrailCollisionDerez(t *testing.T) {
	g := newTestGame(t, 3)

	// Lay a player wall and park one basic program on it; everyone
	// else is moved far away and stopped.
	_, _, _, playerTrail := g.programMapper.Get(g.player)
	playerTrail.Points = []components.TrailPoint{{X: -10, Z: 5}, {X: 10, Z: 5}}

	var victim *components.Program
	query := g.programFilter.Query()
	for query.Next() {
		pos, vel, prog, _ := query.Get()
		vel.X, vel.Z = 0, 0
		switch {
		case prog.Kind == components.KindPlayer:
			pos.X, pos.Z = 0, -20
		case prog.Kind == components.KindBasic && victim == nil:
			pos.X, pos.Z = 0, 5
			victim = prog
		default:
			pos.X, pos.Z = 80, 80
		}
	}

	g.updateCollisions()

	if !victim.Derezzed {
		t.Error("program on a trail wall should derez")
	}

	_, _, playerProg, _ := g.programMapper.Get(g.player)
	if playerProg.Derezzed {
		t.Error("player far from the wall should not derez")
	}
}

func TestOwnRecentWallIgnored(t *testing.T) {
	g := newTestGame(t, 3)
	cfg := config.Cfg()
	if cfg.Trails.IgnoreRecent != 3 {
		t.Skip("test assumes default ignore_recent")
	}

	// Five points form four segments; the last three are within the
	// owner's ignore window, the first is not.
	playerPos, vel, _, playerTrail := g.programMapper.Get(g.player)
	vel.X, vel.Z = 0, 0
	playerTrail.Points = []components.TrailPoint{
		{X: 0, Z: 0}, {X: 4, Z: 0}, {X: 8, Z: 0}, {X: 12, Z: 0}, {X: 16, Z: 0},
	}

	// Clear everyone else away from the wall.
	query := g.programFilter.Query()
	for query.Next() {
		pos, v, prog, _ := query.Get()
		if prog.Kind != components.KindPlayer {
			pos.X, pos.Z = 80, 80
			v.X, v.Z = 0, 0
		}
	}

	// Riding on a recent segment is safe.
	playerPos.X, playerPos.Z = 14, 0
	g.updateCollisions()
	_, _, playerProg, _ := g.programMapper.Get(g.player)
	if playerProg.Derezzed {
		t.Fatal("player derezzed on its own recent wall")
	}

	// Riding back into an old segment is not.
	playerPos.X, playerPos.Z = 2, 0
	g.updateCollisions()
	_, _, playerProg, _ = g.programMapper.Get(g.player)
	if !playerProg.Derezzed {
		t.Error("player should derez on its own old wall")
	}
}

func TestPlaceBuilding(t *testing.T) {
	g := newTestGame(t, 9)
	cfg := config.Cfg()

	g.placeBuilding(10, -20)

	if g.buildingCount != 1 {
		t.Fatalf("buildingCount = %d, want 1", g.buildingCount)
	}

	found := 0
	query := g.buildingFilter.Query()
	for query.Next() {
		pos, b := query.Get()
		found++
		if pos.X != 10 || pos.Z != -20 {
			t.Errorf("building at (%g, %g), want (10, -20)", pos.X, pos.Z)
		}
		if b.Height < cfg.Buildings.MinHeight || b.Height > cfg.Buildings.MaxHeight {
			t.Errorf("building height %g outside [%g, %g]",
				b.Height, cfg.Buildings.MinHeight, cfg.Buildings.MaxHeight)
		}
	}
	if found != 1 {
		t.Errorf("found %d building entities, want 1", found)
	}
}

func TestPlayerRespawnAfterDerez(t *testing.T) {
	g := newTestGame(t, 11)

	_, _, playerProg, _ := g.programMapper.Get(g.player)
	playerProg.Derezzed = true
	oldID := playerProg.ID

	g.cleanupDerezzed()

	if !g.world.Alive(g.player) {
		t.Fatal("player entity not respawned")
	}
	pos, _, prog, _ := g.programMapper.Get(g.player)
	if prog.ID == oldID {
		t.Error("respawned player kept the old id")
	}
	if pos.X != 0 || pos.Z != 0 {
		t.Errorf("respawn at (%g, %g), want origin", pos.X, pos.Z)
	}
	if g.derezCount != 1 {
		t.Errorf("derezCount = %d, want 1", g.derezCount)
	}
}

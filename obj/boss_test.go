package obj

import (
	"testing"

	"github.com/milk9111/memoryparasite/levels"
	"github.com/milk9111/memoryparasite/physics"
)

func newTestBoss(t *testing.T) (*Boss, *Player, *physics.World) {
	t.Helper()
	world := physics.NewWorld(physics.Vec2{})
	boss := NewBoss(world, physics.Vec2{X: 640, Y: 200})
	player := NewPlayer(world, physics.Vec2{X: 100, Y: 600})
	return boss, player, world
}

func TestBossRageStaysInBounds(t *testing.T) {
	cases := []struct {
		name  string
		hp    float64
		boost float64
		want  float64
	}{
		{"full_health_base_boost", 300, 0.1, 0.1},
		{"half_health", 150, 0.1, 0.7},
		{"low_health_clamps_high", 10, 0.5, 1.0},
		{"frozen_boost_clamps_low", 300, -0.5, 0.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			boss, player, _ := newTestBoss(t)
			boss.HP = c.hp
			boss.RageBoost = c.boost

			boss.Update(1e-9, player, NopParticles{}, NopAudio{})

			if boss.Rage < 0 || boss.Rage > 1 {
				t.Fatalf("rage %f out of [0,1]", boss.Rage)
			}
			if diff := boss.Rage - c.want; diff > 1e-6 || diff < -1e-6 {
				t.Fatalf("rage = %f, want %f", boss.Rage, c.want)
			}
		})
	}
}

func TestBossFreezeSuspendsAndDeescalates(t *testing.T) {
	boss, player, _ := newTestBoss(t)
	boss.RageBoost = 0.3

	boss.Freeze(2.0)
	if diff := boss.RageBoost - (-0.1); diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("RageBoost = %f, want -0.1 after freeze", boss.RageBoost)
	}

	// Boost floors at -0.5 no matter how many freezes land.
	boss.Freeze(2.0)
	boss.Freeze(2.0)
	if boss.RageBoost != -0.5 {
		t.Fatalf("RageBoost = %f, want floor -0.5", boss.RageBoost)
	}

	// Freeze suspends everything, including arrows already in flight.
	arrow := &Arrow{Pos: physics.Vec2{X: 400, Y: 300}, Vel: physics.Vec2{X: 500}}
	boss.Attacks = []*Arrow{arrow}

	anim := boss.AnimT
	boss.Update(0.5, player, NopParticles{}, NopAudio{})
	if boss.AnimT != anim {
		t.Fatal("frozen boss still animating")
	}
	if boss.FreezeTimer >= 2.0 {
		t.Fatal("freeze timer not ticking down")
	}
	if arrow.Pos.X != 400 {
		t.Fatalf("in-flight arrow moved to x=%f while boss frozen", arrow.Pos.X)
	}
}

func TestBossDashHit(t *testing.T) {
	boss, player, _ := newTestBoss(t)

	player.Body.Position = boss.Body.Position.Add(physics.Vec2{X: boss.R + 10})
	player.IsDashing = true

	hit := boss.Update(1e-9, player, NopParticles{}, NopAudio{})
	if !hit {
		t.Fatal("dash in range did not connect")
	}
	if boss.HP != boss.MaxHP-15 {
		t.Fatalf("HP = %f, want %f", boss.HP, boss.MaxHP-15)
	}
	if boss.RageBoost <= 0.1 {
		t.Fatalf("RageBoost = %f, want raised above base", boss.RageBoost)
	}
	if boss.Body.Velocity.Length() == 0 {
		t.Fatal("no knockback applied")
	}

	// Same position without the dash is harmless.
	boss2, player2, _ := newTestBoss(t)
	player2.Body.Position = boss2.Body.Position.Add(physics.Vec2{X: boss2.R + 10})
	if boss2.Update(1e-9, player2, NopParticles{}, NopAudio{}) {
		t.Fatal("non-dash contact counted as a hit")
	}
}

func TestBossDeathBelowZeroHP(t *testing.T) {
	boss, player, _ := newTestBoss(t)
	boss.HP = 10

	player.Body.Position = boss.Body.Position
	player.Body.Position.X += 5
	player.IsDashing = true

	boss.Update(1e-9, player, NopParticles{}, NopAudio{})
	if !boss.IsDead {
		t.Fatalf("HP = %f but boss not dead", boss.HP)
	}
	if boss.Update(1.0, player, NopParticles{}, NopAudio{}) {
		t.Fatal("dead boss still registering hits")
	}
}

func TestArrowPenetrationLifecycle(t *testing.T) {
	boss, _, _ := newTestBoss(t)

	first := &levels.Platform{ID: 1, X: 90, Y: 90, W: 40, H: 40}
	second := &levels.Platform{ID: 2, X: 290, Y: 90, W: 40, H: 40}
	platforms := []*levels.Platform{first, second}

	arrow := &Arrow{Pos: physics.Vec2{X: 100, Y: 100}, Vel: physics.Vec2{X: 500}}
	boss.Attacks = []*Arrow{arrow}

	// Entering the first platform: penetrate at half speed.
	boss.CheckPlatformHits(platforms, NopParticles{}, NopAudio{})
	if !arrow.Penetrated {
		t.Fatal("arrow did not penetrate first platform")
	}
	if arrow.PenetratingID != first.ID {
		t.Fatalf("PenetratingID = %d, want %d", arrow.PenetratingID, first.ID)
	}
	if arrow.Vel.X != 250 {
		t.Fatalf("velocity after penetration = %f, want 250", arrow.Vel.X)
	}

	// Still inside the same platform: no second reaction.
	boss.CheckPlatformHits(platforms, NopParticles{}, NopAudio{})
	if len(boss.Attacks) != 1 || arrow.Vel.X != 250 {
		t.Fatal("arrow re-triggered inside the platform it is passing through")
	}

	// Clear of both platforms: the current-platform marker resets but the
	// penetrated flag is permanent.
	arrow.Pos = physics.Vec2{X: 200, Y: 100}
	boss.CheckPlatformHits(platforms, NopParticles{}, NopAudio{})
	if arrow.PenetratingID != 0 {
		t.Fatalf("PenetratingID = %d after leaving platform, want 0", arrow.PenetratingID)
	}
	if !arrow.Penetrated {
		t.Fatal("penetrated flag lost on exit")
	}

	// Second distinct platform: explode and remove.
	arrow.Pos = physics.Vec2{X: 300, Y: 100}
	boss.CheckPlatformHits(platforms, NopParticles{}, NopAudio{})
	if len(boss.Attacks) != 0 {
		t.Fatalf("arrow survived second platform: %d attacks left", len(boss.Attacks))
	}
}

func TestArrowPlatformEdgeIsOutside(t *testing.T) {
	boss, _, _ := newTestBoss(t)
	platform := &levels.Platform{ID: 1, X: 100, Y: 100, W: 40, H: 40}

	arrow := &Arrow{Pos: physics.Vec2{X: 100, Y: 120}, Vel: physics.Vec2{X: 500}}
	boss.Attacks = []*Arrow{arrow}

	boss.CheckPlatformHits([]*levels.Platform{platform}, NopParticles{}, NopAudio{})
	if arrow.Penetrated {
		t.Fatal("arrow exactly on the boundary counted as inside")
	}
}

func TestNoiseRayHits(t *testing.T) {
	boss, player, _ := newTestBoss(t)

	player.Body.Position = physics.Vec2{X: 500, Y: 400}
	boss.NoiseRays = []*NoiseRay{{
		Start: physics.Vec2{X: 0, Y: 400},
		End:   physics.Vec2{X: 1000, Y: 400},
		Timer: 0.5,
		MaxT:  0.5,
	}}

	if !boss.NoiseRayHits(player) {
		t.Fatal("player on the ray not hit")
	}

	player.Body.Position = physics.Vec2{X: 500, Y: 400 + player.Cfg.R + 50}
	if boss.NoiseRayHits(player) {
		t.Fatal("player far off the ray reported hit")
	}
}

func TestNoiseRayDrainsMemoryOverTime(t *testing.T) {
	boss, player, _ := newTestBoss(t)
	player.Body.Position = physics.Vec2{X: 640, Y: 400}

	boss.NoiseRays = []*NoiseRay{{
		Start: boss.Body.Position,
		End:   player.Body.Position,
		Timer: 1.0,
		MaxT:  1.0,
	}}

	before := player.Memory
	boss.updateNoiseRays(0.5, player)
	if diff := (before - player.Memory) - 4.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("memory drained %f, want 4.0 (8/s for 0.5s)", before-player.Memory)
	}

	boss.updateNoiseRays(0.6, player)
	if len(boss.NoiseRays) != 0 {
		t.Fatal("expired ray still active")
	}
}

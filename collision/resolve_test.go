package collision

import (
	"testing"

	"github.com/milk9111/memoryparasite/physics"
)

func TestResolveRectVsStaticLanding(t *testing.T) {
	const (
		width   = 42.0
		height  = 57.0
		epsilon = 0.01
	)
	platform := StaticRect{X: 0, Y: 500, W: 400, H: 20}

	body := physics.NewBody(physics.Vec2{X: 100, Y: 500 - height/2 + 5})
	body.Velocity = physics.Vec2{Y: 300}

	grounded, hitCeiling := ResolveRectVsStatic(body, width, height, []StaticRect{platform}, 4.0, epsilon)

	if !grounded {
		t.Fatal("expected grounded after landing snap")
	}
	if hitCeiling {
		t.Fatal("unexpected ceiling hit")
	}
	wantY := platform.Y - height/2 - epsilon
	if !near(body.Position.Y, wantY) {
		t.Fatalf("snapped Y = %f, want %f", body.Position.Y, wantY)
	}
	if body.Velocity.Y != 0 {
		t.Fatalf("velocity.Y = %f, want 0", body.Velocity.Y)
	}
}

func TestResolveRectVsStaticGroundedRequiresDownwardVelocity(t *testing.T) {
	platform := StaticRect{X: 0, Y: 500, W: 400, H: 20}

	// Overlapping the platform top but moving upward: position snaps, the
	// grounded flag stays false and velocity is untouched.
	body := physics.NewBody(physics.Vec2{X: 100, Y: 500 - 25 + 5})
	body.Velocity = physics.Vec2{Y: -100}

	grounded, _ := ResolveRectVsStatic(body, 40, 50, []StaticRect{platform}, 4.0, 0.01)
	if grounded {
		t.Fatal("grounded must not be set while moving upward")
	}
	if body.Velocity.Y != -100 {
		t.Fatalf("velocity.Y = %f, want -100", body.Velocity.Y)
	}
}

func TestResolveRectVsStaticCeiling(t *testing.T) {
	platform := StaticRect{X: 0, Y: 100, W: 400, H: 20}

	// Jumping up into the platform underside.
	body := physics.NewBody(physics.Vec2{X: 100, Y: 120 + 25 - 5})
	body.Velocity = physics.Vec2{Y: -400}

	grounded, hitCeiling := ResolveRectVsStatic(body, 40, 50, []StaticRect{platform}, 4.0, 0.01)
	if grounded {
		t.Fatal("unexpected grounded")
	}
	if !hitCeiling {
		t.Fatal("expected ceiling hit")
	}
	wantY := platform.Y + platform.H + 25 + 0.01
	if !near(body.Position.Y, wantY) {
		t.Fatalf("snapped Y = %f, want %f", body.Position.Y, wantY)
	}
	if body.Velocity.Y != 0 {
		t.Fatalf("velocity.Y = %f, want 0", body.Velocity.Y)
	}
}

func TestResolveRectVsStaticWall(t *testing.T) {
	wall := StaticRect{X: 200, Y: 0, W: 20, H: 400}

	// Shallow graze: the horizontal penetration stays under the padding so
	// the vertical pass ignores the wall and the horizontal pass owns it.
	body := physics.NewBody(physics.Vec2{X: 182, Y: 200})
	body.Velocity = physics.Vec2{X: 250}

	ResolveRectVsStatic(body, 40, 50, []StaticRect{wall}, 4.0, 0.01)

	wantX := wall.X - 20 - 0.01
	if !near(body.Position.X, wantX) {
		t.Fatalf("snapped X = %f, want %f", body.Position.X, wantX)
	}
	if body.Velocity.X != 0 {
		t.Fatalf("velocity.X = %f, want 0", body.Velocity.X)
	}
}

func TestResolveRectVsStaticVerticalPassRunsFirst(t *testing.T) {
	// Landing near a platform edge: the Y pass lifts the box onto the top
	// surface, after which the X pass no longer sees an overlap. A single
	// mixed pass would also shove the box sideways off the edge.
	platform := StaticRect{X: 100, Y: 500, W: 200, H: 20}

	body := physics.NewBody(physics.Vec2{X: 100 + 5, Y: 500 - 25 + 6})
	body.Velocity = physics.Vec2{X: 50, Y: 300}

	grounded, _ := ResolveRectVsStatic(body, 40, 50, []StaticRect{platform}, 4.0, 0.01)
	if !grounded {
		t.Fatal("expected grounded")
	}
	if body.Velocity.X != 50 {
		t.Fatalf("velocity.X = %f, want 50 (horizontal motion preserved)", body.Velocity.X)
	}
	if !near(body.Position.X, 105) {
		t.Fatalf("position.X = %f, want 105 (no sideways shove)", body.Position.X)
	}
}

func TestResolveImpulse(t *testing.T) {
	t.Run("dynamic_vs_static", func(t *testing.T) {
		a := physics.NewBody(physics.Vec2{})
		a.Restitution = 0.5
		a.Velocity = physics.Vec2{X: 10}

		b := physics.NewBody(physics.Vec2{X: 18})
		b.Restitution = 0.5
		b.IsStatic = true

		info := Info{Hit: true, Normal: physics.Vec2{X: 1}, Depth: 2}
		Resolve(a, b, info)

		// The static body absorbs nothing: A backs out the full depth and
		// bounces with the shared restitution.
		if !near(a.Position.X, -2) {
			t.Fatalf("a.Position.X = %f, want -2", a.Position.X)
		}
		if b.Position.X != 18 {
			t.Fatalf("static body moved to %f", b.Position.X)
		}
		if !near(a.Velocity.X, -5) {
			t.Fatalf("a.Velocity.X = %f, want -5", a.Velocity.X)
		}
	})

	t.Run("separating_pair_gets_no_impulse", func(t *testing.T) {
		a := physics.NewBody(physics.Vec2{})
		b := physics.NewBody(physics.Vec2{X: 5})
		b.Velocity = physics.Vec2{X: 100}

		info := Info{Hit: true, Normal: physics.Vec2{X: 1}, Depth: 1}
		Resolve(a, b, info)

		if !near(b.Velocity.X, 100) {
			t.Fatalf("separating body velocity changed to %f", b.Velocity.X)
		}
	})

	t.Run("dynamic_pair_splits_depth", func(t *testing.T) {
		a := physics.NewBody(physics.Vec2{})
		b := physics.NewBody(physics.Vec2{X: 4})

		info := Info{Hit: true, Normal: physics.Vec2{X: 1}, Depth: 2}
		Resolve(a, b, info)

		if !near(a.Position.X, -1) || !near(b.Position.X, 5) {
			t.Fatalf("positions = %f, %f; want -1, 5", a.Position.X, b.Position.X)
		}
	})
}

func TestWorldCheckAndResolveSeparatesCircles(t *testing.T) {
	w := NewWorld()

	a := physics.NewBody(physics.Vec2{X: 100, Y: 100})
	b := physics.NewBody(physics.Vec2{X: 110, Y: 100})
	w.AddCircle(a, 10)
	w.AddCircle(b, 10)

	w.CheckAndResolve()

	dist := b.Position.Sub(a.Position).Length()
	if dist < 20-1e-9 {
		t.Fatalf("circles still overlapping after resolve: dist = %f", dist)
	}
}

func TestWorldRemoveBodyDropsColliders(t *testing.T) {
	w := NewWorld()

	a := physics.NewBody(physics.Vec2{X: 100, Y: 100})
	b := physics.NewBody(physics.Vec2{X: 105, Y: 100})
	w.AddCircle(a, 10)
	w.AddCircle(b, 10)
	w.RemoveBody(a)

	w.CheckAndResolve()

	if a.Position != (physics.Vec2{X: 100, Y: 100}) || b.Position != (physics.Vec2{X: 105, Y: 100}) {
		t.Fatal("removed collider still participated in resolution")
	}
}

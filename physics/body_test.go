package physics

import (
	"math"
	"testing"
)

func TestBodyUpdateIntegration(t *testing.T) {
	cases := []struct {
		name    string
		drag    float64
		vel     Vec2
		force   Vec2
		mass    float64
		dt      float64
		wantVel Vec2
		wantPos Vec2
	}{
		{
			name:    "drag_damps_before_accel",
			drag:    0.01,
			vel:     Vec2{X: 100},
			mass:    1,
			dt:      1,
			wantVel: Vec2{X: 99},
			wantPos: Vec2{X: 99},
		},
		{
			name:    "accel_applies_before_position",
			drag:    0,
			force:   Vec2{X: 10},
			mass:    1,
			dt:      1,
			wantVel: Vec2{X: 10},
			wantPos: Vec2{X: 10},
		},
		{
			name:    "mass_divides_force",
			drag:    0,
			force:   Vec2{Y: 10},
			mass:    2,
			dt:      1,
			wantVel: Vec2{Y: 5},
			wantPos: Vec2{Y: 5},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBody(Vec2{})
			b.Drag = c.drag
			b.Mass = c.mass
			b.Velocity = c.vel
			b.ApplyForce(c.force)
			b.Update(c.dt)

			if !vecNear(b.Velocity, c.wantVel) {
				t.Fatalf("velocity = %+v, want %+v", b.Velocity, c.wantVel)
			}
			if !vecNear(b.Position, c.wantPos) {
				t.Fatalf("position = %+v, want %+v", b.Position, c.wantPos)
			}
			if b.Acceleration != (Vec2{}) {
				t.Fatalf("acceleration not cleared after update: %+v", b.Acceleration)
			}
		})
	}
}

func TestStaticBodyNeverMoves(t *testing.T) {
	b := NewBody(Vec2{X: 50, Y: 50})
	b.IsStatic = true
	b.ApplyForce(Vec2{X: 1000})
	b.ApplyImpulse(Vec2{Y: 1000})
	b.Update(1.0)

	if b.Position != (Vec2{X: 50, Y: 50}) {
		t.Fatalf("static body moved to %+v", b.Position)
	}
	if b.Velocity != (Vec2{}) {
		t.Fatalf("static body gained velocity %+v", b.Velocity)
	}
}

func TestDragMonotonicDecay(t *testing.T) {
	b := NewBody(Vec2{})
	b.Drag = 0.05
	b.Velocity = Vec2{X: 200}

	prev := b.Velocity.X
	for i := 0; i < 100; i++ {
		b.Update(1.0 / 60.0)
		if b.Velocity.X >= prev {
			t.Fatalf("step %d: velocity did not decay (%f -> %f)", i, prev, b.Velocity.X)
		}
		if b.Velocity.X < 0 {
			t.Fatalf("step %d: drag reversed velocity to %f", i, b.Velocity.X)
		}
		prev = b.Velocity.X
	}
}

func TestWorldStepAppliesGravity(t *testing.T) {
	w := NewWorld(Vec2{Y: 100})
	b := NewBody(Vec2{})
	b.Drag = 0
	w.AddBody(b)

	w.Step(0.5)

	// vel = 100*0.5 = 50, pos = 50*0.5 = 25
	if !near(b.Velocity.Y, 50) {
		t.Fatalf("velocity.Y = %f, want 50", b.Velocity.Y)
	}
	if !near(b.Position.Y, 25) {
		t.Fatalf("position.Y = %f, want 25", b.Position.Y)
	}
}

func TestWorldRemoveBody(t *testing.T) {
	w := NewWorld(Vec2{Y: 100})
	a := NewBody(Vec2{})
	b := NewBody(Vec2{X: 10})
	w.AddBody(a)
	w.AddBody(b)

	w.RemoveBody(a)
	if len(w.Bodies()) != 1 || w.Bodies()[0] != b {
		t.Fatalf("expected only second body tracked, got %d bodies", len(w.Bodies()))
	}

	w.Step(1.0)
	if a.Velocity != (Vec2{}) {
		t.Fatalf("removed body kept integrating: %+v", a.Velocity)
	}
}

func TestConstrainToBoundsReflects(t *testing.T) {
	w := NewWorld(Vec2{})
	b := NewBody(Vec2{X: -5, Y: 50})
	b.Restitution = 0.5
	b.Velocity = Vec2{X: -40}

	w.ConstrainToBounds(b, 10, 0, 0, 100, 100)

	if !near(b.Position.X, 10) {
		t.Fatalf("position.X = %f, want 10", b.Position.X)
	}
	if !near(b.Velocity.X, 20) {
		t.Fatalf("velocity.X = %f, want 20 (reflected at half speed)", b.Velocity.X)
	}
}

func TestNormalizedZeroVector(t *testing.T) {
	v := Vec2{}.Normalized()
	if v != (Vec2{}) {
		t.Fatalf("zero vector normalized to %+v", v)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func vecNear(a, b Vec2) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

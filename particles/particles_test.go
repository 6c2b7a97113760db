package particles

import (
	"image/color"
	"testing"

	"github.com/milk9111/memoryparasite/physics"
)

func TestEmitAndExpire(t *testing.T) {
	s := NewSystem()
	s.Emit(physics.Vec2{X: 100, Y: 100}, 25, color.NRGBA{R: 255, A: 255},
		Options{LifeMin: 0.2, LifeMax: 0.4})

	if s.Count() != 25 {
		t.Fatalf("count = %d after emit, want 25", s.Count())
	}

	s.Update(0.1)
	if s.Count() != 25 {
		t.Fatalf("count = %d mid-life, want 25", s.Count())
	}

	s.Update(0.5)
	if s.Count() != 0 {
		t.Fatalf("count = %d after max life, want 0", s.Count())
	}
}

func TestEmitZeroValueDefaults(t *testing.T) {
	s := NewSystem()
	s.Emit(physics.Vec2{}, 10, color.NRGBA{A: 255}, Options{})

	// Default lifetime is 0.4..1.0s: all survive a short step, none a long
	// one.
	s.Update(0.3)
	if s.Count() != 10 {
		t.Fatalf("count = %d, want 10", s.Count())
	}
	s.Update(1.0)
	if s.Count() != 0 {
		t.Fatalf("count = %d, want 0", s.Count())
	}
}

func TestNilSystemIsSafe(t *testing.T) {
	var s *System
	s.Emit(physics.Vec2{}, 10, color.NRGBA{}, Options{})
	s.Update(0.1)
	if s.Count() != 0 {
		t.Fatal("nil system reported particles")
	}
}

package physics

import (
	"errors"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func unitCube() Collider {
	return Collider{Size: rl.NewVector3(1, 1, 1)}
}

func mustBody(t *testing.T, opts BodyOptions) *Body {
	t.Helper()
	b, err := NewBody(opts)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func TestNewBodyRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name     string
		mass     float32
		friction float32
		want     error
	}{
		{"zero_mass", 0, 0.1, ErrInvalidMass},
		{"negative_mass", -2, 0.1, ErrInvalidMass},
		{"nan_mass", float32(math.NaN()), 0.1, ErrInvalidMass},
		{"negative_friction", 1, -0.5, ErrInvalidFriction},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := NewBody(BodyOptions{Mass: c.mass, Friction: c.friction, Collider: unitCube()})
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if b != nil {
				t.Fatalf("expected nil body on error")
			}
		})
	}
}

func TestNewBodyStartsAtRest(t *testing.T) {
	pos := rl.NewVector3(1, 2, 3)
	b := mustBody(t, BodyOptions{Position: pos, Mass: 1, Collider: unitCube(), Simulate: true})
	if b.Force() != (Force{}) {
		t.Fatalf("expected zero force, got %v", b.Force())
	}
	if b.Position() != pos || b.PreviousPosition() != pos {
		t.Fatalf("expected position and previous position %v, got %v / %v", pos, b.Position(), b.PreviousPosition())
	}
	if b.IsColliding() {
		t.Fatalf("new body should not be colliding")
	}
}

func TestApplyImpulse(t *testing.T) {
	t.Run("divides_by_mass", func(t *testing.T) {
		b := mustBody(t, BodyOptions{Mass: 4, Collider: unitCube(), Simulate: true})
		b.ApplyImpulse(AxisRight, 6)
		if got := b.Force()[AxisRight]; got != 1.5 {
			t.Fatalf("expected 1.5, got %v", got)
		}
	})

	t.Run("sequential_equals_combined", func(t *testing.T) {
		split := mustBody(t, BodyOptions{Mass: 2, Collider: unitCube(), Simulate: true})
		whole := mustBody(t, BodyOptions{Mass: 2, Collider: unitCube(), Simulate: true})
		split.ApplyImpulse(AxisUp, 1.5)
		split.ApplyImpulse(AxisUp, 2.5)
		whole.ApplyImpulse(AxisUp, 4)
		if split.Force() != whole.Force() {
			t.Fatalf("expected %v, got %v", whole.Force(), split.Force())
		}
	})

	t.Run("convenience_methods", func(t *testing.T) {
		b := mustBody(t, BodyOptions{Mass: 1, Collider: unitCube(), Simulate: true})
		b.AddForceForward(1)
		b.AddForceRight(2)
		b.AddForceUp(3)
		if want := (Force{1, 2, 3}); b.Force() != want {
			t.Fatalf("expected %v, got %v", want, b.Force())
		}
	})

	t.Run("ignored_when_not_simulating", func(t *testing.T) {
		b := mustBody(t, BodyOptions{Mass: 1, Collider: unitCube()})
		b.ApplyImpulse(AxisForward, 10)
		if b.Force() != (Force{}) {
			t.Fatalf("expected no change, got %v", b.Force())
		}
	})
}

func TestBoundsFollowPositionAndOffset(t *testing.T) {
	b := mustBody(t, BodyOptions{
		Position: rl.NewVector3(1, 1, 1),
		Mass:     1,
		Collider: Collider{Size: rl.NewVector3(2, 4, 6), Offset: rl.NewVector3(0, 1, 0)},
	})
	box := b.Bounds()
	if want := rl.NewVector3(0, 0, -2); box.Min != want {
		t.Fatalf("expected min %v, got %v", want, box.Min)
	}
	if want := rl.NewVector3(2, 4, 4); box.Max != want {
		t.Fatalf("expected max %v, got %v", want, box.Max)
	}

	b.SetPosition(rl.NewVector3(3, 1, 1))
	if got := b.Bounds().Min.X; got != 2 {
		t.Fatalf("expected bounds to follow position, min.x=%v", got)
	}
}

func TestHostTransformIsUsed(t *testing.T) {
	tr := &PointTransform{P: rl.NewVector3(0, 5, 0)}
	b := mustBody(t, BodyOptions{Transform: tr, Position: rl.NewVector3(9, 9, 9), Mass: 1, Collider: unitCube()})
	if b.Position() != tr.P {
		t.Fatalf("expected transform position %v, got %v", tr.P, b.Position())
	}
	b.SetPosition(rl.NewVector3(1, 1, 1))
	if tr.P != rl.NewVector3(1, 1, 1) {
		t.Fatalf("expected write-through to transform, got %v", tr.P)
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range Axes {
		got, err := ParseAxis(a.String())
		if err != nil || got != a {
			t.Fatalf("ParseAxis(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAxis("sideways"); err == nil {
		t.Fatalf("expected error for unknown axis")
	}
}

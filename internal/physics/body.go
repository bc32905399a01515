package physics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	// ErrInvalidMass is returned by NewBody when mass is zero, negative or NaN.
	ErrInvalidMass = errors.New("physics: mass must be greater than zero")
	// ErrInvalidFriction is returned when friction is negative or NaN.
	ErrInvalidFriction = errors.New("physics: friction must not be negative")
)

// Transform is the host's view of where a body is. The simulation reads the
// position at the start of integration and writes it back after every translation.
type Transform interface {
	Position() rl.Vector3
	SetPosition(p rl.Vector3)
}

// PointTransform is a Transform that keeps the position in place. NewBody uses it
// when the host does not supply its own.
type PointTransform struct {
	P rl.Vector3
}

func (t *PointTransform) Position() rl.Vector3     { return t.P }
func (t *PointTransform) SetPosition(p rl.Vector3) { t.P = p }

// Collider is an axis-aligned box of Size centered at position + Offset.
type Collider struct {
	Size   rl.Vector3
	Offset rl.Vector3
}

// BodyOptions configures NewBody. Position is ignored when Transform is set.
type BodyOptions struct {
	Position     rl.Vector3
	Transform    Transform
	Collider     Collider
	Mass         float32
	Friction     float32
	GravityScale float32
	Simulate     bool
}

// Body is one simulated entity. It is owned by the host; a Registry only references it.
// All mutation happens on the goroutine that calls World.Step.
type Body struct {
	transform    Transform
	collider     Collider
	previous     rl.Vector3
	force        Force
	mass         float32
	friction     float32
	gravityScale float32
	simulate     bool

	// contacts is the overlap count from the most recent step.
	contacts int
}

// NewBody validates opts and returns a body at rest.
func NewBody(opts BodyOptions) (*Body, error) {
	if !(opts.Mass > 0) {
		return nil, ErrInvalidMass
	}
	if !(opts.Friction >= 0) {
		return nil, ErrInvalidFriction
	}
	t := opts.Transform
	if t == nil {
		t = &PointTransform{P: opts.Position}
	}
	return &Body{
		transform:    t,
		collider:     opts.Collider,
		previous:     t.Position(),
		mass:         opts.Mass,
		friction:     opts.Friction,
		gravityScale: opts.GravityScale,
		simulate:     opts.Simulate,
	}, nil
}

// Position returns the current position from the body's transform.
func (b *Body) Position() rl.Vector3 {
	return b.transform.Position()
}

// SetPosition moves the body. Hosts use it to teleport; the next step treats the
// new position as the start of the tick.
func (b *Body) SetPosition(p rl.Vector3) {
	b.transform.SetPosition(p)
}

// PreviousPosition is the position at the start of the most recent tick.
func (b *Body) PreviousPosition() rl.Vector3 {
	return b.previous
}

// Bounds returns the body's extent around its current position.
func (b *Body) Bounds() rl.BoundingBox {
	center := rl.Vector3Add(b.transform.Position(), b.collider.Offset)
	half := rl.Vector3Scale(b.collider.Size, 0.5)
	return rl.NewBoundingBox(rl.Vector3Subtract(center, half), rl.Vector3Add(center, half))
}

func (b *Body) Collider() Collider { return b.collider }

// Force returns a copy of the per-axis speed.
func (b *Body) Force() Force { return b.force }

func (b *Body) Mass() float32         { return b.mass }
func (b *Body) Friction() float32     { return b.friction }
func (b *Body) GravityScale() float32 { return b.gravityScale }
func (b *Body) Simulate() bool        { return b.simulate }

// SetFriction changes the per-tick horizontal decay. Negative values are rejected.
func (b *Body) SetFriction(f float32) error {
	if !(f >= 0) {
		return ErrInvalidFriction
	}
	b.friction = f
	return nil
}

func (b *Body) SetGravityScale(g float32) { b.gravityScale = g }

// SetSimulate toggles whether the step moves this body. A body that stops
// simulating keeps its force but nothing changes it until simulation resumes.
func (b *Body) SetSimulate(on bool) { b.simulate = on }

// ApplyImpulse adds magnitude/mass to force[axis]. It does nothing while the body
// is not simulating.
func (b *Body) ApplyImpulse(axis Axis, magnitude float32) {
	if !b.simulate || axis < AxisForward || axis > AxisUp {
		return
	}
	b.force[axis] += magnitude / b.mass
}

func (b *Body) AddForceForward(magnitude float32) { b.ApplyImpulse(AxisForward, magnitude) }
func (b *Body) AddForceRight(magnitude float32)   { b.ApplyImpulse(AxisRight, magnitude) }
func (b *Body) AddForceUp(magnitude float32)      { b.ApplyImpulse(AxisUp, magnitude) }

// IsColliding reports whether the body overlapped any other body in the most recent step.
func (b *Body) IsColliding() bool {
	return b.contacts > 0
}

// valid reports whether b can take part in a step.
func (b *Body) valid() bool {
	return b != nil && b.transform != nil && b.mass > 0
}

// translate moves the body along one world axis and writes the result back to the transform.
func (b *Body) translate(a Axis, delta float32) {
	p := b.transform.Position()
	setComponent(&p, a, component(p, a)+delta)
	b.transform.SetPosition(p)
}

// restore snaps one axis of the position back to its value at the start of the tick.
func (b *Body) restore(a Axis) {
	p := b.transform.Position()
	setComponent(&p, a, component(b.previous, a))
	b.transform.SetPosition(p)
}

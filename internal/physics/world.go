package physics

import (
	"errors"
	"sync"
	"time"

	"github.com/chewxy/math32"
)

const (
	// DefaultElasticRate halves the inbound speed on every collision response.
	DefaultElasticRate = 2.0
	// DefaultTickDuration is a 50 Hz physics tick.
	DefaultTickDuration = 20 * time.Millisecond
)

var (
	ErrInvalidElasticRate  = errors.New("physics: elastic rate must be greater than zero")
	ErrInvalidTickDuration = errors.New("physics: tick duration must be greater than zero")
)

// Settings are the world-wide tuning values.
type Settings struct {
	// ElasticRate divides the speed reflected back and handed to the other body.
	ElasticRate float32
	// TickDuration is the fixed time one Step represents.
	TickDuration time.Duration
	// PerAxisTolerance gates each face check by the body's size on that axis. When
	// false every face check uses the body's Y size, which makes thin or flat bodies
	// resolve sideways contacts later or earlier than their geometry suggests.
	PerAxisTolerance bool
}

// DefaultSettings returns elastic rate 2.0, a 20ms tick and the Y-size tolerance.
func DefaultSettings() Settings {
	return Settings{
		ElasticRate:  DefaultElasticRate,
		TickDuration: DefaultTickDuration,
	}
}

// Validate checks that the settings can drive a step.
func (s Settings) Validate() error {
	if !(s.ElasticRate > 0) || math32.IsInf(s.ElasticRate, 1) {
		return ErrInvalidElasticRate
	}
	if s.TickDuration <= 0 {
		return ErrInvalidTickDuration
	}
	return nil
}

type queuedImpulse struct {
	handle    Handle
	axis      Axis
	magnitude float32
}

// World owns a Registry and runs the fixed-tick pipeline over it: friction decay,
// gravity accumulation, velocity integration, then collision detection and response.
// Step must not run concurrently with itself or with direct mutation of the registry
// or its bodies.
type World struct {
	settings Settings
	registry *Registry
	tick     uint64

	mu       sync.Mutex
	impulses []queuedImpulse
}

// NewWorld returns a world with an empty registry.
func NewWorld(s Settings) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &World{settings: s, registry: NewRegistry()}, nil
}

func (w *World) Registry() *Registry { return w.registry }
func (w *World) Settings() Settings  { return w.settings }

// Tick is the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// SetElasticRate changes the shared collision divisor. Call between steps.
func (w *World) SetElasticRate(rate float32) error {
	s := w.settings
	s.ElasticRate = rate
	if err := s.Validate(); err != nil {
		return err
	}
	w.settings = s
	return nil
}

// SetPerAxisTolerance switches between the Y-size tolerance and per-axis tolerances.
func (w *World) SetPerAxisTolerance(on bool) {
	w.settings.PerAxisTolerance = on
}

// QueueImpulse applies an impulse at the start of the next step. Safe from any goroutine.
// Impulses for handles that are stale by then are dropped.
func (w *World) QueueImpulse(h Handle, axis Axis, magnitude float32) {
	w.mu.Lock()
	w.impulses = append(w.impulses, queuedImpulse{handle: h, axis: axis, magnitude: magnitude})
	w.mu.Unlock()
}

// Step advances the simulation by one tick and returns every overlapping ordered
// pair seen during collision detection.
func (w *World) Step() []Contact {
	w.registry.Flush()
	w.applyQueuedImpulses()

	handles := w.registry.Handles()
	bodies := w.registry.Bodies()
	dt := float32(w.settings.TickDuration.Seconds())

	for _, b := range bodies {
		if b.simulate {
			applyFriction(b)
		}
	}
	for _, b := range bodies {
		if b.simulate {
			b.force[AxisUp] -= b.gravityScale
		}
	}
	for _, b := range bodies {
		if b.simulate {
			integrate(b, dt)
		}
	}
	contacts := w.detectCollisions(handles, bodies)

	w.tick++
	return contacts
}

func (w *World) applyQueuedImpulses() {
	w.mu.Lock()
	queued := w.impulses
	w.impulses = nil
	w.mu.Unlock()

	for _, q := range queued {
		if b, ok := w.registry.Get(q.handle); ok {
			b.ApplyImpulse(q.axis, q.magnitude)
		}
	}
}

// applyFriction moves forward and right toward zero by the body's friction,
// stopping exactly at zero instead of crossing it.
func applyFriction(b *Body) {
	b.force[AxisForward] = decay(b.force[AxisForward], b.friction)
	b.force[AxisRight] = decay(b.force[AxisRight], b.friction)
}

func decay(f, friction float32) float32 {
	switch {
	case f > 0:
		if f-friction < 0 {
			return 0
		}
		return f - friction
	case f < 0:
		if f+friction > 0 {
			return 0
		}
		return f + friction
	}
	return f
}

// integrate records the start-of-tick position then translates one axis at a time.
// Horizontal axes only move while their speed is above the friction threshold.
func integrate(b *Body, dt float32) {
	b.previous = b.transform.Position()
	for _, a := range [...]Axis{AxisForward, AxisRight} {
		if math32.Abs(b.force[a]) > b.friction {
			b.translate(a, b.force[a]*dt)
		}
	}
	if f := b.force[AxisUp]; f != 0 {
		b.translate(AxisUp, f*dt)
	}
}

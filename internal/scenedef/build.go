package scenedef

import (
	"fmt"

	"action-physics/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options converts a resolved definition into body options. Unset fields fall back
// to the package defaults.
func (d BodyDef) Options() physics.BodyOptions {
	return physics.BodyOptions{
		Position: vec(d.Position),
		Collider: physics.Collider{
			Size:   vec(d.Size),
			Offset: vec(d.Offset),
		},
		Mass:         deref[float32](d.Mass, DefaultMass),
		Friction:     deref[float32](d.Friction, DefaultFriction),
		GravityScale: deref[float32](d.GravityScale, DefaultGravityScale),
		Simulate:     deref(d.Simulate, false),
	}
}

func vec(v [3]float32) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// Built maps the bodies spawned from one scene to their handles and definitions.
type Built struct {
	Name    string
	order   []physics.Handle
	handles map[string]physics.Handle
	defs    map[physics.Handle]BodyDef
}

// Build constructs every body of s and registers them with w in scene order.
// Construction happens before any registration, so an invalid body leaves w untouched.
// Initial impulses are applied after registration.
func Build(s *Scene, w *physics.World) (*Built, error) {
	bodies := make([]*physics.Body, len(s.Bodies))
	for i, d := range s.Bodies {
		b, err := physics.NewBody(d.Options())
		if err != nil {
			return nil, fmt.Errorf("scenedef: body %q: %w", d.Name, err)
		}
		bodies[i] = b
	}

	built := &Built{
		Name:    s.Name,
		order:   make([]physics.Handle, 0, len(bodies)),
		handles: make(map[string]physics.Handle, len(bodies)),
		defs:    make(map[physics.Handle]BodyDef, len(bodies)),
	}
	for i, b := range bodies {
		d := s.Bodies[i]
		h := w.Registry().Register(b)
		for _, a := range physics.Axes {
			if m := d.Impulse[a]; m != 0 {
				b.ApplyImpulse(a, m)
			}
		}
		built.order = append(built.order, h)
		built.handles[d.Name] = h
		built.defs[h] = d
	}
	return built, nil
}

// Handle looks a body up by name.
func (b *Built) Handle(name string) (physics.Handle, bool) {
	h, ok := b.handles[name]
	return h, ok
}

// NameOf returns the scene name of a handle, or "" if it was not built from this scene.
func (b *Built) NameOf(h physics.Handle) string {
	return b.defs[h].Name
}

// Def returns the resolved definition a handle was built from.
func (b *Built) Def(h physics.Handle) (BodyDef, bool) {
	d, ok := b.defs[h]
	return d, ok
}

// Handles returns the spawned handles in scene order.
func (b *Built) Handles() []physics.Handle {
	out := make([]physics.Handle, len(b.order))
	copy(out, b.order)
	return out
}

// Names returns the body names in scene order.
func (b *Built) Names() []string {
	out := make([]string, len(b.order))
	for i, h := range b.order {
		out[i] = b.defs[h].Name
	}
	return out
}

// Remove unregisters every body this scene spawned.
func (b *Built) Remove(w *physics.World) {
	for _, h := range b.order {
		w.Registry().Remove(h)
	}
}

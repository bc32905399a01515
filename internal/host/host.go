// Package host is the glue both front ends share: it owns the world and the
// currently loaded scene, runs ticks, and exposes the console commands.
package host

import (
	"errors"
	"fmt"
	"strings"

	"action-physics/internal/commands"
	"action-physics/internal/logger"
	"action-physics/internal/physics"
	"action-physics/internal/scenedef"
)

// ErrUnknownBody is returned when a command names a body the scene does not have.
var ErrUnknownBody = errors.New("unknown body")

// Stats summarizes the most recent tick for overlays.
type Stats struct {
	Tick     uint64
	Bodies   int
	Contacts int
	Resolved int
	Paused   bool
}

// Host runs a world for a scene file. All methods must be called on the tick
// goroutine; console input reaches it through commands.Drain.
type Host struct {
	world     *physics.World
	log       *logger.Logger
	scenePath string
	built     *scenedef.Built

	paused       bool
	pendingSteps int
	last         []physics.Contact
	logContacts  bool
}

// New returns a host for world. Call Load before the first Tick.
func New(world *physics.World, log *logger.Logger, scenePath string) *Host {
	return &Host{world: world, log: log, scenePath: scenePath, logContacts: true}
}

func (h *Host) World() *physics.World { return h.world }

func (h *Host) Built() *scenedef.Built { return h.built }

func (h *Host) ScenePath() string { return h.scenePath }

func (h *Host) Paused() bool { return h.paused }

// LastContacts returns the contacts of the most recent tick that ran.
func (h *Host) LastContacts() []physics.Contact { return h.last }

// SetLogContacts toggles per-contact log lines.
func (h *Host) SetLogContacts(on bool) { h.logContacts = on }

// Load (re)builds the scene from disk. The new bodies are built before the old ones
// are removed, so a broken file leaves the running scene in place.
func (h *Host) Load() error {
	s, err := scenedef.Load(h.scenePath)
	if err != nil {
		return err
	}
	built, err := scenedef.Build(s, h.world)
	if err != nil {
		return fmt.Errorf("%s: %w", h.scenePath, err)
	}
	if h.built != nil {
		h.built.Remove(h.world)
	}
	h.built = built
	h.last = nil
	h.log.Logf("scene %q loaded from %s: %d bodies", s.Name, h.scenePath, len(s.Bodies))
	return nil
}

// Tick runs one step unless paused. While paused, steps requested with StepOnce run
// one per call.
func (h *Host) Tick() []physics.Contact {
	if h.paused {
		if h.pendingSteps == 0 {
			return nil
		}
		h.pendingSteps--
	}
	h.last = h.world.Step()
	if h.logContacts {
		for _, c := range h.last {
			if c.Resolved() {
				h.log.Logf("tick %d: %s hit %s on %s", h.world.Tick(), h.nameOf(c.Body), h.nameOf(c.Other), c.Faces)
			}
		}
	}
	return h.last
}

// Stats reports the state after the most recent tick.
func (h *Host) Stats() Stats {
	s := Stats{
		Tick:     h.world.Tick(),
		Bodies:   h.world.Registry().Len(),
		Contacts: len(h.last),
		Paused:   h.paused,
	}
	for _, c := range h.last {
		if c.Resolved() {
			s.Resolved++
		}
	}
	return s
}

// SetPaused stops or resumes ticking.
func (h *Host) SetPaused(paused bool) {
	h.paused = paused
	if !paused {
		h.pendingSteps = 0
	}
}

// StepOnce queues one tick to run while paused.
func (h *Host) StepOnce() {
	h.pendingSteps++
}

// Lookup resolves a body by scene name.
func (h *Host) Lookup(name string) (physics.Handle, *physics.Body, error) {
	if h.built != nil {
		if hd, ok := h.built.Handle(name); ok {
			if b, ok := h.world.Registry().Get(hd); ok {
				return hd, b, nil
			}
		}
	}
	return physics.Handle{}, nil, fmt.Errorf("%w %q", ErrUnknownBody, name)
}

// Impulse queues an impulse for the named body; it lands at the next tick.
func (h *Host) Impulse(name string, axis physics.Axis, magnitude float32) error {
	hd, _, err := h.Lookup(name)
	if err != nil {
		return err
	}
	h.world.QueueImpulse(hd, axis, magnitude)
	return nil
}

// SetSimulate turns simulation on or off for the named body.
func (h *Host) SetSimulate(name string, on bool) error {
	_, b, err := h.Lookup(name)
	if err != nil {
		return err
	}
	b.SetSimulate(on)
	return nil
}

// Describe returns one line per scene body with its position and force.
func (h *Host) Describe() []string {
	if h.built == nil {
		return nil
	}
	var lines []string
	for _, hd := range h.built.Handles() {
		b, ok := h.world.Registry().Get(hd)
		if !ok {
			continue
		}
		p, f := b.Position(), b.Force()
		lines = append(lines, fmt.Sprintf("%s pos=(%.2f %.2f %.2f) force=[%.2f %.2f %.2f] simulate=%t colliding=%t",
			h.nameOf(hd), p.X, p.Y, p.Z, f[physics.AxisForward], f[physics.AxisRight], f[physics.AxisUp], b.Simulate(), b.IsColliding()))
	}
	return lines
}

func (h *Host) nameOf(hd physics.Handle) string {
	if h.built != nil {
		if n := h.built.NameOf(hd); n != "" {
			return n
		}
	}
	return fmt.Sprintf("#%d", hd.Index)
}

// RegisterCommands adds the physics console commands to reg.
func (h *Host) RegisterCommands(reg *commands.Registry) {
	{
		fs := commands.NewFlagSet("impulse")
		body := fs.String("body", "", "body name")
		axis := fs.String("axis", "up", "forward, right or up")
		magnitude := fs.Float64("magnitude", 1, "impulse magnitude")
		reg.Register("impulse", "-body NAME -axis forward|right|up -magnitude M", fs, func() error {
			defer func() { *body, *axis, *magnitude = "", "up", 1 }()
			a, err := physics.ParseAxis(*axis)
			if err != nil {
				return err
			}
			return h.Impulse(*body, a, float32(*magnitude))
		})
	}
	{
		fs := commands.NewFlagSet("simulate")
		body := fs.String("body", "", "body name")
		on := fs.Bool("on", true, "simulate the body")
		reg.Register("simulate", "-body NAME -on=true|false", fs, func() error {
			defer func() { *body, *on = "", true }()
			return h.SetSimulate(*body, *on)
		})
	}
	{
		fs := commands.NewFlagSet("elastic")
		rate := fs.Float64("rate", physics.DefaultElasticRate, "collision divisor")
		reg.Register("elastic", "-rate R", fs, func() error {
			defer func() { *rate = physics.DefaultElasticRate }()
			if err := h.world.SetElasticRate(float32(*rate)); err != nil {
				return err
			}
			h.log.Logf("elastic rate set to %g", *rate)
			return nil
		})
	}
	reg.Register("pause", "toggle pause", nil, func() error {
		h.SetPaused(!h.paused)
		h.log.Logf("paused=%t", h.paused)
		return nil
	})
	reg.Register("step", "run one tick while paused", nil, func() error {
		h.StepOnce()
		return nil
	})
	reg.Register("reload", "reload the scene file", nil, h.Load)
	reg.Register("bodies", "list bodies", nil, func() error {
		for _, line := range h.Describe() {
			h.log.Log(line)
		}
		return nil
	})
	reg.Register("help", "list commands", nil, func() error {
		h.log.Log(strings.Join(reg.Help(), "; "))
		return nil
	})
}

package host

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"action-physics/internal/commands"
	"action-physics/internal/logger"
	"action-physics/internal/physics"
)

const puckScene = `
name: puck
bodies:
  - name: wall
    position: [20, 0, 0]
  - name: puck
    simulate: true
    friction: 0
    gravity_scale: 0
`

func newHost(t *testing.T, doc string) (*Host, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := physics.NewWorld(physics.DefaultSettings())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	h := New(w, logger.New("", 0), path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return h, path
}

func run(t *testing.T, h *Host, lines ...string) []error {
	t.Helper()
	reg := commands.NewRegistry()
	h.RegisterCommands(reg)
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}
	var errs []error
	commands.Drain(ch, reg, func(_ string, err error) { errs = append(errs, err) })
	return errs
}

func TestImpulseCommandLandsOnNextTick(t *testing.T) {
	h, _ := newHost(t, puckScene)
	if errs := run(t, h, "impulse -body puck -axis up -magnitude 2"); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	_, puck, _ := h.Lookup("puck")
	if puck.Force() != (physics.Force{}) {
		t.Fatalf("impulse should wait for the tick, got %v", puck.Force())
	}
	h.Tick()
	if got := puck.Force()[physics.AxisUp]; got != 2 {
		t.Fatalf("expected up force 2, got %v", got)
	}
	if puck.Position().Y <= 0 {
		t.Fatalf("puck should have moved up, at %v", puck.Position())
	}
}

func TestCommandErrors(t *testing.T) {
	h, _ := newHost(t, puckScene)
	errs := run(t, h,
		"impulse -body ghost",
		"impulse -body puck -axis sideways",
		"elastic -rate 0",
		"simulate -body ghost",
	)
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %v", errs)
	}
	if !errors.Is(errs[0], ErrUnknownBody) || !errors.Is(errs[3], ErrUnknownBody) {
		t.Fatalf("expected unknown body errors, got %v and %v", errs[0], errs[3])
	}
	if !errors.Is(errs[2], physics.ErrInvalidElasticRate) {
		t.Fatalf("expected invalid elastic rate, got %v", errs[2])
	}
	if h.World().Settings().ElasticRate != physics.DefaultElasticRate {
		t.Fatalf("rejected rate must not be applied")
	}
}

func TestPauseAndStep(t *testing.T) {
	h, _ := newHost(t, puckScene)
	run(t, h, "pause")
	if !h.Paused() {
		t.Fatalf("expected paused")
	}
	h.Tick()
	if h.World().Tick() != 0 {
		t.Fatalf("paused host must not step")
	}
	run(t, h, "step", "step")
	h.Tick()
	h.Tick()
	h.Tick()
	if got := h.World().Tick(); got != 2 {
		t.Fatalf("expected exactly 2 queued steps, got %d", got)
	}
	run(t, h, "pause")
	h.Tick()
	if got := h.World().Tick(); got != 3 {
		t.Fatalf("expected resumed stepping, got %d", got)
	}
}

func TestSimulateAndElasticCommands(t *testing.T) {
	h, _ := newHost(t, puckScene)
	if errs := run(t, h, "simulate -body wall", "elastic -rate 4"); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	_, wall, _ := h.Lookup("wall")
	if !wall.Simulate() {
		t.Fatalf("wall should simulate")
	}
	if h.World().Settings().ElasticRate != 4 {
		t.Fatalf("expected elastic rate 4, got %v", h.World().Settings().ElasticRate)
	}
	run(t, h, "simulate -body wall -on=false")
	if wall.Simulate() {
		t.Fatalf("wall should stop simulating")
	}
}

func TestReloadReplacesBodies(t *testing.T) {
	h, path := newHost(t, puckScene)
	_, old, _ := h.Lookup("puck")

	next := strings.Replace(puckScene, "name: puck\n    simulate", "name: disc\n    simulate", 1)
	if err := os.WriteFile(path, []byte(next), 0644); err != nil {
		t.Fatal(err)
	}
	if errs := run(t, h, "reload"); len(errs) != 0 {
		t.Fatalf("reload: %v", errs)
	}
	if _, _, err := h.Lookup("puck"); !errors.Is(err, ErrUnknownBody) {
		t.Fatalf("puck should be gone after reload")
	}
	if _, _, err := h.Lookup("disc"); err != nil {
		t.Fatalf("disc should exist: %v", err)
	}
	if h.World().Registry().Len() != 2 || h.World().Registry().Contains(old) {
		t.Fatalf("old bodies must be removed, %d registered", h.World().Registry().Len())
	}

	// A broken file keeps the running scene.
	if err := os.WriteFile(path, []byte("bodies:\n  - name: x\n    mass: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := h.Load(); !errors.Is(err, physics.ErrInvalidMass) {
		t.Fatalf("expected ErrInvalidMass, got %v", err)
	}
	if _, _, err := h.Lookup("disc"); err != nil {
		t.Fatalf("failed reload must keep the old scene: %v", err)
	}
}

func TestStatsAndContactLog(t *testing.T) {
	doc := `
name: drop
bodies:
  - name: floor
    position: [0, -0.5, 0]
    size: [10, 1, 10]
  - name: crate
    position: [0, 0.45, 0]
    simulate: true
`
	h, _ := newHost(t, doc)
	h.Tick()
	s := h.Stats()
	if s.Tick != 1 || s.Bodies != 2 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.Contacts != 2 || s.Resolved != 1 {
		t.Fatalf("expected 2 contacts with 1 resolved, got %+v", s)
	}
	var logged bool
	for _, line := range h.log.Lines() {
		if strings.Contains(line, "crate hit floor") {
			logged = true
		}
	}
	if !logged {
		t.Fatalf("expected a contact log line, got %v", h.log.Lines())
	}
	if lines := h.Describe(); len(lines) != 2 || !strings.HasPrefix(lines[1], "crate ") {
		t.Fatalf("unexpected describe output %v", lines)
	}
}

func TestBootAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "puck.yaml")
	if err := os.WriteFile(scene, []byte(puckScene), 0644); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PHYSICS_ELASTIC_RATE=3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	h, prefs, err := Boot(BootOptions{
		ConfigPath: filepath.Join(dir, "missing.json"),
		EnvPath:    envPath,
		ScenePath:  scene,
		LogPath:    filepath.Join(dir, "physics.txt"),
	})
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if prefs.ElasticRate != 3 || h.World().Settings().ElasticRate != 3 {
		t.Fatalf("expected elastic rate 3 from the env file, got %v", prefs.ElasticRate)
	}
	if _, _, err := h.Lookup("puck"); err != nil {
		t.Fatalf("scene not loaded: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "physics.txt")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestBootRejectsBadEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PHYSICS_TICK_HZ=fast\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Boot(BootOptions{ConfigPath: filepath.Join(dir, "none.json"), EnvPath: envPath}); err == nil {
		t.Fatalf("expected an error for a bad tick rate")
	}
}

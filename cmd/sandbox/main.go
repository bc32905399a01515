package main

import (
	"flag"
	"fmt"
	"os"

	"action-physics/internal/commands"
	"action-physics/internal/debug"
	"action-physics/internal/engineconfig"
	"action-physics/internal/graphics"
	"action-physics/internal/host"
	"action-physics/internal/physics"
	"action-physics/internal/scene"
	"action-physics/internal/scenedef"
	"action-physics/internal/terminal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const impulseStep = 5

func main() {
	configPath := flag.String("config", engineconfig.DefaultPath, "prefs file")
	envPath := flag.String("env", ".env", "dotenv file")
	scenePath := flag.String("scene", "", "scene file (overrides prefs)")
	flag.Parse()

	h, prefs, err := host.Boot(host.BootOptions{ConfigPath: *configPath, EnvPath: *envPath, ScenePath: *scenePath})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := h.Log()

	reg := commands.NewRegistry()
	h.RegisterCommands(reg)
	console := commands.NewConsole(os.Stdin)
	report := func(line string, err error) { log.Logf("%s: %v", line, err) }

	watcher, err := scenedef.NewWatcher(prefs.ScenePath)
	if err != nil {
		log.Logf("scene hot reload disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	term := terminal.New(log, reg)
	scn := scene.New()
	hud := debug.New()
	hud.SetVisible(prefs.ShowHUD)
	step := graphics.NewFixedStep(prefs.TickDuration(), prefs.MaxTicksPerFrame)
	selected := 0

	update := func() {
		commands.Drain(console.Lines(), reg, report)
		if watcher != nil {
			select {
			case path := <-watcher.Events:
				if err := h.Load(); err != nil {
					log.Logf("reload %s: %v", path, err)
				}
			case err := <-watcher.Errors:
				if err != nil {
					log.Logf("watch: %v", err)
				}
			default:
			}
		}

		term.Update()
		if term.IsOpen() {
			return
		}

		handles := h.World().Registry().Handles()
		switch {
		case rl.IsKeyPressed(rl.KeySpace):
			h.SetPaused(!h.Paused())
		case rl.IsKeyPressed(rl.KeyN):
			h.StepOnce()
		case rl.IsKeyPressed(rl.KeyR):
			if err := h.Load(); err != nil {
				log.Logf("reload: %v", err)
			}
		case rl.IsKeyPressed(rl.KeyF1):
			hud.SetVisible(!hud.Visible())
		case rl.IsKeyPressed(rl.KeyG):
			scn.SetGridVisible(!scn.GridVisible)
		case rl.IsKeyPressed(rl.KeyTab) && len(handles) > 0:
			selected = (selected + 1) % len(handles)
		}
		scn.Selected = physics.Handle{}
		if selected < len(handles) {
			scn.Selected = handles[selected]
			queueKeyImpulses(h.World(), scn.Selected)
		}
		scn.Update()
	}
	tick := func() {
		h.Tick()
	}
	draw := func() {
		scn.Draw(h.World(), h.Built())
		hud.Draw(h.Stats(), step.Dropped, log.Lines())
		term.Draw()
	}
	graphics.Run("action-physics sandbox", 1280, 720, step, update, tick, draw)
}

// queueKeyImpulses maps arrows to forward/right and J to up for the selected body.
func queueKeyImpulses(w *physics.World, hd physics.Handle) {
	keys := []struct {
		key  int32
		axis physics.Axis
		sign float32
	}{
		{rl.KeyUp, physics.AxisForward, -1},
		{rl.KeyDown, physics.AxisForward, 1},
		{rl.KeyLeft, physics.AxisRight, -1},
		{rl.KeyRight, physics.AxisRight, 1},
		{rl.KeyJ, physics.AxisUp, 1},
	}
	for _, k := range keys {
		if rl.IsKeyPressed(k.key) {
			w.QueueImpulse(hd, k.axis, k.sign*impulseStep)
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"action-physics/internal/commands"
	"action-physics/internal/debug"
	"action-physics/internal/engineconfig"
	"action-physics/internal/host"
	"action-physics/internal/physics"
	"action-physics/internal/scenedef"

	"github.com/gdamore/tcell/v2"
)

const (
	impulseStep = 5
	viewScale   = 1
	logRows     = 4
)

type app struct {
	screen   tcell.Screen
	host     *host.Host
	reg      *commands.Registry
	sound    *clicker
	selected int
	prompt   []rune
	typing   bool
	quit     bool
}

func main() {
	configPath := flag.String("config", engineconfig.DefaultPath, "prefs file")
	envPath := flag.String("env", ".env", "dotenv file")
	scenePath := flag.String("scene", "", "scene file (overrides prefs)")
	mute := flag.Bool("mute", false, "no collision sound")
	flag.Parse()

	h, prefs, err := host.Boot(host.BootOptions{ConfigPath: *configPath, EnvPath: *envPath, ScenePath: *scenePath})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	h.SetLogContacts(false)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	a := &app{screen: screen, host: h, reg: commands.NewRegistry(), sound: &clicker{}}
	h.RegisterCommands(a.reg)
	if !*mute {
		if s, err := newClicker(); err != nil {
			h.Log().Logf("audio disabled: %v", err)
		} else {
			a.sound = s
		}
	}

	var watchEvents <-chan string
	if w, err := scenedef.NewWatcher(prefs.ScenePath); err != nil {
		h.Log().Logf("scene hot reload disabled: %v", err)
	} else {
		defer w.Close()
		watchEvents = w.Events
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(prefs.TickDuration())
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-events:
			a.handle(ev)
		case path := <-watchEvents:
			if err := h.Load(); err != nil {
				h.Log().Logf("reload %s: %v", path, err)
			}
		case <-ticker.C:
			for _, c := range h.Tick() {
				if c.Resolved() {
					a.sound.hit()
					break
				}
			}
			a.draw()
		}
	}
}

func (a *app) selectedHandle() (physics.Handle, bool) {
	handles := a.host.World().Registry().Handles()
	if len(handles) == 0 {
		return physics.Handle{}, false
	}
	return handles[a.selected%len(handles)], true
}

func (a *app) impulse(axis physics.Axis, magnitude float32) {
	if hd, ok := a.selectedHandle(); ok {
		a.host.World().QueueImpulse(hd, axis, magnitude)
	}
}

func (a *app) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if a.typing {
			a.handlePrompt(ev)
			return
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			a.quit = true
		case tcell.KeyTab:
			a.selected++
		case tcell.KeyLeft:
			a.impulse(physics.AxisRight, -impulseStep)
		case tcell.KeyRight:
			a.impulse(physics.AxisRight, impulseStep)
		case tcell.KeyUp:
			a.impulse(physics.AxisUp, impulseStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				a.quit = true
			case ' ':
				a.host.SetPaused(!a.host.Paused())
			case 'n':
				a.host.StepOnce()
			case 'r':
				if err := a.host.Load(); err != nil {
					a.host.Log().Logf("reload: %v", err)
				}
			case ':':
				a.typing = true
				a.prompt = a.prompt[:0]
			}
		}
	}
}

func (a *app) handlePrompt(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.typing = false
	case tcell.KeyEnter:
		a.typing = false
		line := string(a.prompt)
		if args, ok := commands.Parse(line); ok {
			if err := a.reg.Execute(args); err != nil {
				a.host.Log().Logf("%s: %v", line, err)
			}
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(a.prompt); n > 0 {
			a.prompt = a.prompt[:n-1]
		}
	case tcell.KeyRune:
		a.prompt = append(a.prompt, ev.Rune())
	}
}

func (a *app) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	v := view{width: width, height: max(height-logRows-1, 1), scale: viewScale, baseY: -1}

	selected, _ := a.selectedHandle()
	reg := a.host.World().Registry()
	for _, hd := range reg.Handles() {
		b, ok := reg.Get(hd)
		if !ok {
			continue
		}
		x0, y0, x1, y1, ok := v.cells(b.Bounds())
		if !ok {
			continue
		}
		ch, style := bodyCell(b, hd == selected)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				a.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}

	row := v.height
	status := debug.StatsText(a.host.Stats(), 0)
	a.text(0, row, fmt.Sprintf("%s | %s | %s  [tab] select [arrows] push [space] pause [n] step [:] command", status[0], status[1], status[2]), tcell.StyleDefault.Reverse(true))
	for _, line := range debug.Tail(a.host.Log().Lines(), logRows) {
		row++
		a.text(0, row, line, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	if a.typing {
		a.text(0, height-1, ":"+string(a.prompt), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	a.screen.Show()
}

func bodyCell(b *physics.Body, selected bool) (rune, tcell.Style) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	ch := '▒'
	if b.Simulate() {
		style = tcell.StyleDefault.Foreground(tcell.ColorBlue)
		ch = '█'
	}
	if b.IsColliding() {
		style = style.Foreground(tcell.ColorRed)
	}
	if selected {
		style = style.Foreground(tcell.ColorYellow)
	}
	return ch, style
}

func (a *app) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

package debug

import (
	"fmt"
	"runtime"

	"action-physics/internal/host"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	logSize    = 16
	logHeight  = logSize + 2
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the overlays: FPS and memory top-right, simulation stats top-left and
// the tail of the log along the bottom. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool
	LogLines     int // how many log lines to show; 0 hides the log

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetVisible turns every overlay on or off at once.
func (d *Debug) SetVisible(show bool) {
	d.ShowFPS = show
	d.ShowMemAlloc = show
	d.ShowStats = show
	if show && d.LogLines == 0 {
		d.LogLines = 8
	} else if !show {
		d.LogLines = 0
	}
}

// Visible reports whether any overlay is shown.
func (d *Debug) Visible() bool {
	return d.ShowFPS || d.ShowMemAlloc || d.ShowStats || d.LogLines > 0
}

// StatsText formats the simulation stats block.
func StatsText(s host.Stats, dropped int) []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("tick %d (%s)", s.Tick, state),
		fmt.Sprintf("bodies %d", s.Bodies),
		fmt.Sprintf("contacts %d, resolved %d", s.Contacts, s.Resolved),
		fmt.Sprintf("dropped ticks %d", dropped),
	}
}

// Tail returns the last n lines of log.
func Tail(log []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(log) > n {
		return log[len(log)-n:]
	}
	return log
}

// Draw renders the enabled overlays. Call last in the draw loop.
// FPS and memory text are only recomputed every updateInterval frames.
func (d *Debug) Draw(s host.Stats, dropped int, log []string) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	y := int32(padding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, screenW, y)
	}

	if d.ShowStats {
		y = padding
		for _, line := range StatsText(s, dropped) {
			rl.DrawText(line, padding, y, fontSize, rl.RayWhite)
			y += lineHeight
		}
	}

	lines := Tail(log, d.LogLines)
	y = screenH - padding - int32(len(lines))*logHeight
	for _, line := range lines {
		rl.DrawText(line, padding, y, logSize, rl.LightGray)
		y += logHeight
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}

package graphics

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FixedStep turns variable frame times into a whole number of fixed ticks.
// Time that would need more than MaxTicks in one frame is dropped so a slow frame
// cannot snowball into a longer one.
type FixedStep struct {
	Tick     time.Duration
	MaxTicks int

	acc     time.Duration
	Dropped int // ticks skipped because a frame ran over MaxTicks
}

// NewFixedStep returns an accumulator for tick. maxTicks <= 0 means 1.
func NewFixedStep(tick time.Duration, maxTicks int) *FixedStep {
	if maxTicks <= 0 {
		maxTicks = 1
	}
	return &FixedStep{Tick: tick, MaxTicks: maxTicks}
}

// Advance adds frame to the accumulator and returns how many ticks to run now.
func (s *FixedStep) Advance(frame time.Duration) int {
	if s.Tick <= 0 || frame < 0 {
		return 0
	}
	s.acc += frame
	n := int(s.acc / s.Tick)
	if n > s.MaxTicks {
		s.Dropped += n - s.MaxTicks
		s.acc -= time.Duration(n-s.MaxTicks) * s.Tick
		n = s.MaxTicks
	}
	s.acc -= time.Duration(n) * s.Tick
	return n
}

// Pending is the time accumulated toward the next tick.
func (s *FixedStep) Pending() time.Duration {
	return s.acc
}

// Run opens a window and drives the main loop. Each frame it calls update (input),
// then tick as many times as step allows, then clears the screen and calls draw.
// ESC closes the window.
func Run(title string, width, height int32, step *FixedStep, update, tick, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		frame := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		for n := step.Advance(frame); n > 0; n-- {
			tick()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}

package physics

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Axis indexes a body's Force record. Forward maps to world +Z, right to +X and up to +Y.
type Axis int

const (
	AxisForward Axis = iota
	AxisRight
	AxisUp
)

// Axes lists every axis in integration order (forward/backward, right/left, up/down).
var Axes = [...]Axis{AxisForward, AxisRight, AxisUp}

func (a Axis) String() string {
	switch a {
	case AxisForward:
		return "forward"
	case AxisRight:
		return "right"
	case AxisUp:
		return "up"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis accepts "forward", "right" or "up" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return AxisForward, nil
	case "right":
		return AxisRight, nil
	case "up":
		return AxisUp, nil
	}
	return 0, fmt.Errorf("physics: unknown axis %q", s)
}

// Force is a body's per-axis speed in world units per tick-second, indexed by Axis.
// Despite the name it is not a physical force: friction, gravity, impulses and
// collisions all act on it directly.
type Force [3]float32

// component returns v along the world axis a maps to.
func component(v rl.Vector3, a Axis) float32 {
	switch a {
	case AxisForward:
		return v.Z
	case AxisRight:
		return v.X
	default:
		return v.Y
	}
}

func setComponent(v *rl.Vector3, a Axis, f float32) {
	switch a {
	case AxisForward:
		v.Z = f
	case AxisRight:
		v.X = f
	default:
		v.Y = f
	}
}

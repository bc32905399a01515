package scene

import (
	"fmt"

	"action-physics/internal/physics"
	"action-physics/internal/scenedef"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	bodyAlpha      = 200
)

var (
	staticColor    = rl.NewColor(110, 110, 120, bodyAlpha)
	simulateColor  = rl.NewColor(70, 140, 220, bodyAlpha)
	collidingColor = rl.NewColor(230, 90, 60, 255)
	selectedColor  = rl.Yellow
)

// Scene holds a 3D camera and draws the bodies of a world. Update runs camera logic;
// Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	// Selected is outlined in yellow. The zero Handle selects nothing.
	Selected physics.Handle

	captured bool
}

// New returns a scene with a perspective camera looking at the origin.
// Camera: position (12,10,12), target (0,2,0), up (0,1,0), fovy 45°. Grid is visible by default.
func New() *Scene {
	s := &Scene{}
	s.Camera.Position = rl.NewVector3(12, 10, 12)
	s.Camera.Target = rl.NewVector3(0, 2, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.GridVisible = true
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame. While the right mouse button is held the cursor is
// captured and the camera flies freely; otherwise the cursor is left for the UI.
func (s *Scene) Update() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		if !s.captured {
			rl.DisableCursor()
			s.captured = true
		}
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
		return
	}
	if s.captured {
		rl.EnableCursor()
		s.captured = false
	}
}

// Draw renders the grid and every body of built that is still registered in w.
// Call after ClearBackground and before the 2D overlay.
func (s *Scene) Draw(w *physics.World, built *scenedef.Built) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	if built != nil {
		for _, h := range built.Handles() {
			b, ok := w.Registry().Get(h)
			if !ok {
				continue
			}
			def, _ := built.Def(h)
			s.drawBody(h, b, def.Color)
		}
	}
	rl.EndMode3D()
}

func (s *Scene) drawBody(h physics.Handle, b *physics.Body, hex string) {
	box := b.Bounds()
	size := rl.Vector3Subtract(box.Max, box.Min)
	center := rl.Vector3Add(box.Min, rl.Vector3Scale(size, 0.5))

	rl.DrawCubeV(center, size, BodyColor(hex, b.Simulate()))
	outline := rl.DarkGray
	switch {
	case h == s.Selected:
		outline = selectedColor
	case b.IsColliding():
		outline = collidingColor
	}
	rl.DrawBoundingBox(box, outline)
}

// BodyColor picks the fill for a body: its scene color when it parses, otherwise a
// color by simulation state.
func BodyColor(hex string, simulate bool) rl.Color {
	if c, ok := ParseColor(hex); ok {
		return c
	}
	if simulate {
		return simulateColor
	}
	return staticColor
}

// ParseColor reads "#rrggbb".
func ParseColor(hex string) (rl.Color, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return rl.Color{}, false
	}
	var r, g, b uint8
	if n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil || n != 3 {
		return rl.Color{}, false
	}
	return rl.NewColor(r, g, b, bodyAlpha), true
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Right is X (red), up is Y (green), forward is Z (blue).
	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

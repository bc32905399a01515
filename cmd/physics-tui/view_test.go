package main

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestViewCells(t *testing.T) {
	v := view{width: 40, height: 20, scale: 1, centerX: 0, baseY: 0}
	cases := []struct {
		name           string
		box            rl.BoundingBox
		x0, y0, x1, y1 int
		ok             bool
	}{
		{"unit_box_on_floor", rl.NewBoundingBox(rl.NewVector3(0, 0, 0), rl.NewVector3(1, 1, 1)), 20, 19, 21, 19, true},
		{"tall_box", rl.NewBoundingBox(rl.NewVector3(-1, 0, 0), rl.NewVector3(0, 3, 1)), 18, 17, 19, 19, true},
		{"clipped", rl.NewBoundingBox(rl.NewVector3(-100, -5, 0), rl.NewVector3(100, 1, 1)), 0, 19, 39, 19, true},
		{"off_screen", rl.NewBoundingBox(rl.NewVector3(50, 0, 0), rl.NewVector3(51, 1, 1)), 0, 0, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := v.cells(c.box)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if ok && (x0 != c.x0 || y0 != c.y0 || x1 != c.x1 || y1 != c.y1) {
				t.Fatalf("got (%d,%d)-(%d,%d), want (%d,%d)-(%d,%d)", x0, y0, x1, y1, c.x0, c.y0, c.x1, c.y1)
			}
		})
	}
}

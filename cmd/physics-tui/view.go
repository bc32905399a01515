package main

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// view projects the world's X/Y plane onto terminal cells: right is +X, up is +Y.
// Terminal cells are about twice as tall as they are wide, so X gets twice the scale.
type view struct {
	width, height int
	scale         float32 // rows per world unit
	centerX       float32 // world X at the middle column
	baseY         float32 // world Y at the bottom row
}

func (v view) column(x float32) int {
	return int(math32.Floor((x-v.centerX)*v.scale*2)) + v.width/2
}

func (v view) row(y float32) int {
	return v.height - 1 - int(math32.Floor((y-v.baseY)*v.scale))
}

// cells returns the inclusive cell rectangle covered by box, clipped to the view.
// ok is false when nothing of the box is visible.
func (v view) cells(box rl.BoundingBox) (x0, y0, x1, y1 int, ok bool) {
	x0, x1 = v.column(box.Min.X), v.column(box.Max.X)-1
	y0, y1 = v.row(box.Max.Y)+1, v.row(box.Min.Y)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y0 = y1
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, v.width-1), min(y1, v.height-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// faceCheck pairs one face of the body with the opposing face of the other body.
// sign is the direction force[axis] must have for the body to be driving into it.
type faceCheck struct {
	face Face
	axis Axis
	sign float32
}

// faceChecks run in this order for every overlapping pair. Each reads the body's
// current force, so a reflection by an earlier check is visible to later ones.
var faceChecks = [...]faceCheck{
	{FaceBottom, AxisUp, -1},
	{FaceTop, AxisUp, 1},
	{FaceLeft, AxisRight, -1},
	{FaceRight, AxisRight, 1},
	{FaceBack, AxisForward, -1},
	{FaceFront, AxisForward, 1},
}

// detectCollisions tests every ordered pair. Every body's contact count is rebuilt
// from scratch; only simulating bodies get a response.
func (w *World) detectCollisions(handles []Handle, bodies []*Body) []Contact {
	for _, b := range bodies {
		b.contacts = 0
	}

	var contacts []Contact
	for i, b := range bodies {
		for j, other := range bodies {
			if i == j {
				continue
			}
			bounds, otherBounds := b.Bounds(), other.Bounds()
			if !overlaps(bounds, otherBounds) {
				continue
			}
			b.contacts++
			c := Contact{Body: handles[i], Other: handles[j]}
			if b.simulate {
				c.Faces = w.respond(b, other, bounds, otherBounds)
			}
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// respond runs the six face checks for b against other and returns the faces that fired.
// Both boxes are the extents sampled before any check ran.
func (w *World) respond(b, other *Body, bounds, otherBounds rl.BoundingBox) Face {
	size := rl.Vector3Subtract(bounds.Max, bounds.Min)

	var fired Face
	for _, fc := range faceChecks {
		var gap float32
		if fc.sign < 0 {
			gap = component(bounds.Min, fc.axis) - component(otherBounds.Max, fc.axis)
		} else {
			gap = component(bounds.Max, fc.axis) - component(otherBounds.Min, fc.axis)
		}
		tolerance := size.Y
		if w.settings.PerAxisTolerance {
			tolerance = component(size, fc.axis)
		}
		if math32.Abs(gap) >= tolerance {
			continue
		}
		if b.force[fc.axis]*fc.sign <= 0 {
			continue
		}
		w.reflect(b, other, fc.axis)
		fired |= fc.face
	}
	return fired
}

// reflect bounces b back along axis, hands the inbound speed to other when it
// simulates, and cancels b's displacement on that axis for this tick.
func (w *World) reflect(b, other *Body, axis Axis) {
	inbound := b.force[axis]
	rate := w.settings.ElasticRate
	if other.simulate {
		other.force[axis] = inbound / rate
	}
	b.force[axis] = -inbound / rate
	b.restore(axis)
}

// overlaps is a strict AABB test. Boxes that only touch do not overlap, and a box
// with zero size on any axis never overlaps anything.
func overlaps(a, b rl.BoundingBox) bool {
	if degenerate(a) || degenerate(b) {
		return false
	}
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

func degenerate(box rl.BoundingBox) bool {
	return !(box.Max.X > box.Min.X) || !(box.Max.Y > box.Min.Y) || !(box.Max.Z > box.Min.Z)
}

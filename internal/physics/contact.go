package physics

import "strings"

// Face is a set of AABB faces of the first body in a contact. Individual faces are
// single bits so several can be combined when more than one resolves in a tick.
type Face uint8

const (
	FaceBottom Face = 1 << iota // min Y against other's max Y
	FaceTop                     // max Y against other's min Y
	FaceLeft                    // min X against other's max X
	FaceRight                   // max X against other's min X
	FaceBack                    // min Z against other's max Z
	FaceFront                   // max Z against other's min Z
)

var faceNames = [...]struct {
	face Face
	name string
}{
	{FaceBottom, "bottom"},
	{FaceTop, "top"},
	{FaceLeft, "left"},
	{FaceRight, "right"},
	{FaceBack, "back"},
	{FaceFront, "front"},
}

// Has reports whether every face in f2 is set in f.
func (f Face) Has(f2 Face) bool {
	return f&f2 == f2
}

// Axis returns the force axis of a single face.
func (f Face) Axis() Axis {
	switch f {
	case FaceBottom, FaceTop:
		return AxisUp
	case FaceLeft, FaceRight:
		return AxisRight
	}
	return AxisForward
}

func (f Face) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range faceNames {
		if f.Has(fn.face) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Contact is one overlapping ordered pair found during a step. Faces lists the faces
// of Body whose response fired; it is empty when the bodies only overlapped.
type Contact struct {
	Body  Handle
	Other Handle
	Faces Face
}

// Resolved reports whether any response was applied for this contact.
func (c Contact) Resolved() bool {
	return c.Faces != 0
}

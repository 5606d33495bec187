package editor

import (
	"math"

	"eyes-editor/pkg/geometry"
)

// HandleKind identifies an on-canvas control attached to the overlay.
type HandleKind int

const (
	HandleNone HandleKind = iota
	HandleRotate
	HandleScale
	HandleFlip
	HandleDelete
)

func (h HandleKind) String() string {
	switch h {
	case HandleRotate:
		return "Rotate"
	case HandleScale:
		return "Scale"
	case HandleFlip:
		return "Flip"
	case HandleDelete:
		return "Delete"
	default:
		return "None"
	}
}

// Handles holds the canvas position of every handle for one overlay state.
type Handles struct {
	Delete geometry.Point2D // Top-left corner
	Flip   geometry.Point2D // Top-right corner
	Scale  geometry.Point2D // Bottom-right corner
	Rotate geometry.Point2D // Above the top edge midpoint
}

// HandlesFor computes handle positions from the overlay's rotated corners.
// The rotate handle sits rotateOffset pixels outward from the top edge,
// along the overlay's rotated "up" direction.
func HandlesFor(o *Overlay, rotateOffset float64) Handles {
	corners := o.Corners()
	theta := geometry.DegToRad(o.Rotation)

	midTop := corners[0].Midpoint(corners[1])
	up := geometry.NewPoint2D(math.Cos(theta-math.Pi/2), math.Sin(theta-math.Pi/2))

	return Handles{
		Delete: corners[0],
		Flip:   corners[1],
		Scale:  corners[2],
		Rotate: midTop.Add(up.Scale(rotateOffset)),
	}
}

// Position returns the location of the given handle.
func (h Handles) Position(kind HandleKind) (geometry.Point2D, bool) {
	switch kind {
	case HandleRotate:
		return h.Rotate, true
	case HandleScale:
		return h.Scale, true
	case HandleFlip:
		return h.Flip, true
	case HandleDelete:
		return h.Delete, true
	}
	return geometry.Point2D{}, false
}

// hitOrder is the priority used when hot-zones overlap.
var hitOrder = []HandleKind{HandleScale, HandleRotate, HandleDelete, HandleFlip}

// Hit returns the first handle whose square hot-zone of half-width size
// contains p, or HandleNone.
func (h Handles) Hit(p geometry.Point2D, size float64) HandleKind {
	for _, kind := range hitOrder {
		pos, _ := h.Position(kind)
		if math.Abs(p.X-pos.X) < size && math.Abs(p.Y-pos.Y) < size {
			return kind
		}
	}
	return HandleNone
}

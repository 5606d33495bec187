package editor

import (
	"errors"
	"image"

	"eyes-editor/pkg/geometry"
)

// Default interaction limits.
const (
	DefaultMinScale     = 0.1
	DefaultMaxScale     = 5.0
	DefaultHandleSize   = 20.0
	DefaultRotateOffset = 30.0
)

var (
	ErrOverlayExists = errors.New("an overlay is already placed")
	ErrNoSprite      = errors.New("overlay sprite has no pixels")
)

// Limits configures gesture clamping and handle geometry.
type Limits struct {
	MinScale     float64
	MaxScale     float64
	HandleSize   float64 // Half-width of each square handle hot-zone
	RotateOffset float64 // Distance of the rotate handle above the top edge
}

// DefaultLimits returns the stock interaction limits.
func DefaultLimits() Limits {
	return Limits{
		MinScale:     DefaultMinScale,
		MaxScale:     DefaultMaxScale,
		HandleSize:   DefaultHandleSize,
		RotateOffset: DefaultRotateOffset,
	}
}

// Gesture is the continuous interaction currently in progress.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureDrag
	GestureScale
	GestureRotate
)

func (g Gesture) String() string {
	switch g {
	case GestureDrag:
		return "Drag"
	case GestureScale:
		return "Scale"
	case GestureRotate:
		return "Rotate"
	default:
		return "None"
	}
}

// Action reports what a pointer-down did.
type Action int

const (
	ActionNone Action = iota
	ActionScaleStart
	ActionRotateStart
	ActionDeleted
	ActionFlipped
	ActionDragStart
	ActionDeselected
)

func (a Action) String() string {
	switch a {
	case ActionScaleStart:
		return "ScaleStart"
	case ActionRotateStart:
		return "RotateStart"
	case ActionDeleted:
		return "Deleted"
	case ActionFlipped:
		return "Flipped"
	case ActionDragStart:
		return "DragStart"
	case ActionDeselected:
		return "Deselected"
	default:
		return "None"
	}
}

// Editor holds the overlay and the state of the gesture acting on it.
// It is not safe for concurrent use; callers serialize access.
type Editor struct {
	Limits Limits

	overlay  *Overlay
	selected bool

	gesture       Gesture
	dragOffset    geometry.Point2D
	startScale    float64
	startDist     float64
	startRotation float64
	startPointer  geometry.Point2D
}

// New creates an editor with the given limits.
func New(limits Limits) *Editor {
	return &Editor{Limits: limits}
}

// Overlay returns the live overlay, or nil.
func (e *Editor) Overlay() *Overlay {
	return e.overlay
}

// HasOverlay reports whether an overlay is placed.
func (e *Editor) HasOverlay() bool {
	return e.overlay != nil
}

// Selected reports whether the overlay's handles are shown.
func (e *Editor) Selected() bool {
	return e.overlay != nil && e.selected
}

// Gesture returns the gesture in progress.
func (e *Editor) Gesture() Gesture {
	return e.gesture
}

// Handles returns the handle positions of the current overlay.
func (e *Editor) Handles() (Handles, bool) {
	if e.overlay == nil {
		return Handles{}, false
	}
	return HandlesFor(e.overlay, e.Limits.RotateOffset), true
}

// PlaceOverlay centers a new sprite on a square canvas, shrunk so that it is
// never wider than the canvas.
func (e *Editor) PlaceOverlay(kind string, img image.Image, canvasSize float64) (*Overlay, error) {
	if e.overlay != nil {
		return nil, ErrOverlayExists
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoSprite
	}

	scale := canvasSize / float64(img.Bounds().Dx())
	if scale > 1 {
		scale = 1
	}

	e.overlay = &Overlay{
		Kind:  kind,
		Image: img,
		X:     canvasSize / 2,
		Y:     canvasSize / 2,
		Scale: scale,
	}
	e.selected = false
	e.gesture = GestureNone
	return e.overlay, nil
}

// RemoveOverlay deletes the overlay and ends any gesture.
func (e *Editor) RemoveOverlay() {
	e.overlay = nil
	e.selected = false
	e.gesture = GestureNone
}

// Reset clears all editor state.
func (e *Editor) Reset() {
	e.RemoveOverlay()
	e.dragOffset = geometry.Point2D{}
	e.startPointer = geometry.Point2D{}
}

// Deselect hides the handles.
func (e *Editor) Deselect() {
	e.selected = false
}

// PointerDown classifies a press at p: handle hot-zones first, then the
// sprite body, otherwise the overlay is deselected.
func (e *Editor) PointerDown(p geometry.Point2D) Action {
	o := e.overlay
	if o == nil {
		return ActionNone
	}
	handles := HandlesFor(o, e.Limits.RotateOffset)

	switch handles.Hit(p, e.Limits.HandleSize) {
	case HandleScale:
		e.gesture = GestureScale
		e.startScale = o.Scale
		e.startDist = handles.Scale.Distance(o.Center())
		e.startPointer = p
		e.selected = true
		return ActionScaleStart

	case HandleRotate:
		e.gesture = GestureRotate
		e.startRotation = o.Rotation
		e.startPointer = p
		e.selected = true
		return ActionRotateStart

	case HandleDelete:
		e.RemoveOverlay()
		return ActionDeleted

	case HandleFlip:
		o.Flipped = !o.Flipped
		e.gesture = GestureNone
		e.selected = true
		return ActionFlipped
	}

	if o.Contains(p) {
		e.gesture = GestureDrag
		e.dragOffset = p.Sub(o.Center())
		e.selected = true
		return ActionDragStart
	}

	e.gesture = GestureNone
	e.selected = false
	return ActionDeselected
}

// PointerMove applies the active gesture for a pointer at p and reports
// whether the overlay changed.
func (e *Editor) PointerMove(p geometry.Point2D) bool {
	o := e.overlay
	if o == nil {
		return false
	}

	switch e.gesture {
	case GestureDrag:
		pos := p.Sub(e.dragOffset)
		if pos.X == o.X && pos.Y == o.Y {
			return false
		}
		o.X, o.Y = pos.X, pos.Y
		return true

	case GestureScale:
		if e.startDist <= 0 {
			return false
		}
		dist := p.Distance(o.Center())
		scale := geometry.Clamp(e.startScale*(dist/e.startDist), e.Limits.MinScale, e.Limits.MaxScale)
		if scale == o.Scale {
			return false
		}
		o.Scale = scale
		return true

	case GestureRotate:
		c := o.Center()
		delta := p.AngleFrom(c) - e.startPointer.AngleFrom(c)
		rotation := geometry.NormalizeDegrees(e.startRotation + geometry.RadToDeg(delta))
		if rotation == o.Rotation {
			return false
		}
		o.Rotation = rotation
		return true
	}
	return false
}

// PointerUp ends the active gesture. The selection is kept.
func (e *Editor) PointerUp() {
	e.gesture = GestureNone
}

// Snapshot returns a copy of the overlay for rendering, or nil.
func (e *Editor) Snapshot() *Overlay {
	return e.overlay.Clone()
}

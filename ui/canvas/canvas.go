// Package canvas provides the interactive editor canvas widget.
package canvas

import (
	"image"

	"eyes-editor/internal/editor"
	"eyes-editor/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Scene is what the canvas displays and forwards pointer input to. All
// points are in canvas pixels.
type Scene interface {
	CanvasSize() int
	Render() *image.RGBA
	Handles() (editor.Handles, bool)
	HandleSize() float64
	PointerDown(p geometry.Point2D) editor.Action
	PointerMove(p geometry.Point2D) bool
	PointerUp()
	OverlayAt(p geometry.Point2D) bool
}

// EditorCanvas shows the composed scene at a fixed square size and turns
// mouse and touch input into editor gestures.
type EditorCanvas struct {
	widget.BaseWidget

	scene  Scene
	raster *fynecanvas.Raster

	// Interaction state
	pressed     bool // A primary-button press is in progress
	touchActive bool // The current touch drag was already classified
	mouseSeen   bool // Desktop mouse events arrive; taps are duplicates
	hover     geometry.Point2D
	hovering  bool

	// Last rendered output, handles included
	lastOutput *image.RGBA

	// Callbacks
	onAction func(action editor.Action)
	onChange func()
}

var (
	_ desktop.Mouseable  = (*EditorCanvas)(nil)
	_ desktop.Hoverable  = (*EditorCanvas)(nil)
	_ desktop.Cursorable = (*EditorCanvas)(nil)
	_ fyne.Draggable     = (*EditorCanvas)(nil)
	_ fyne.Tappable      = (*EditorCanvas)(nil)
)

// NewEditorCanvas creates a canvas widget for scene.
func NewEditorCanvas(scene Scene) *EditorCanvas {
	ec := &EditorCanvas{scene: scene}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	size := float32(scene.CanvasSize())
	ec.raster.SetMinSize(fyne.NewSize(size, size))
	ec.ExtendBaseWidget(ec)
	return ec
}

// OnAction sets the callback invoked after each classified press.
func (ec *EditorCanvas) OnAction(callback func(action editor.Action)) {
	ec.onAction = callback
}

// OnChange sets the callback invoked when a gesture changed the overlay.
func (ec *EditorCanvas) OnChange(callback func()) {
	ec.onChange = callback
}

// RenderedOutput returns the last image the canvas displayed.
func (ec *EditorCanvas) RenderedOutput() *image.RGBA {
	return ec.lastOutput
}

// Refresh redraws the canvas.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

// draw is the raster drawing function. The scene is always composed at the
// canvas size; the raster scales it to the widget.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	output := ec.scene.Render()
	if handles, ok := ec.scene.Handles(); ok {
		DrawHandles(output, handles, ec.scene.HandleSize())
	}
	ec.lastOutput = output
	return output
}

// ToCanvas converts a widget-relative position to canvas pixels.
func (ec *EditorCanvas) ToCanvas(pos fyne.Position) geometry.Point2D {
	size := ec.Size()
	n := float64(ec.scene.CanvasSize())
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
	}
	return geometry.Point2D{
		X: float64(pos.X) * n / float64(size.Width),
		Y: float64(pos.Y) * n / float64(size.Height),
	}
}

func (ec *EditorCanvas) press(pos fyne.Position) {
	action := ec.scene.PointerDown(ec.ToCanvas(pos))
	ec.pressed = action == editor.ActionScaleStart ||
		action == editor.ActionRotateStart ||
		action == editor.ActionDragStart
	ec.Refresh()
	if ec.onAction != nil && action != editor.ActionNone {
		ec.onAction(action)
	}
}

func (ec *EditorCanvas) release() {
	ec.pressed = false
	ec.scene.PointerUp()
}

// MouseDown starts a gesture on primary-button press.
func (ec *EditorCanvas) MouseDown(ev *desktop.MouseEvent) {
	ec.mouseSeen = true
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ec.press(ev.Position)
}

// MouseUp ends the gesture.
func (ec *EditorCanvas) MouseUp(ev *desktop.MouseEvent) {
	ec.release()
}

// Dragged continues the gesture. Touch input arrives without a MouseDown,
// so the first drag event of a touch classifies the press at its starting
// point; later events of the same touch only move.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	if !ec.mouseSeen && !ec.touchActive {
		ec.touchActive = true
		ec.press(ev.Position.Subtract(ev.Dragged))
	}
	if !ec.pressed {
		return
	}
	if ec.scene.PointerMove(ec.ToCanvas(ev.Position)) {
		ec.Refresh()
		if ec.onChange != nil {
			ec.onChange()
		}
	}
}

// DragEnd ends the gesture.
func (ec *EditorCanvas) DragEnd() {
	ec.touchActive = false
	ec.release()
}

// Tapped handles touch taps, which can hit the flip and delete buttons.
// With a mouse the press was already handled by MouseDown.
func (ec *EditorCanvas) Tapped(ev *fyne.PointEvent) {
	if ec.mouseSeen {
		return
	}
	ec.press(ev.Position)
	ec.release()
}

// MouseIn starts hover tracking for the cursor.
func (ec *EditorCanvas) MouseIn(ev *desktop.MouseEvent) {
	ec.hovering = true
	ec.hover = ec.ToCanvas(ev.Position)
}

// MouseMoved updates the hover point.
func (ec *EditorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	ec.hover = ec.ToCanvas(ev.Position)
}

// MouseOut stops hover tracking.
func (ec *EditorCanvas) MouseOut() {
	ec.hovering = false
}

// Cursor shows a crosshair over handles and a pointer over the overlay.
func (ec *EditorCanvas) Cursor() desktop.Cursor {
	if !ec.hovering {
		return desktop.DefaultCursor
	}
	if h, ok := ec.scene.Handles(); ok && h.Hit(ec.hover, ec.scene.HandleSize()) != editor.HandleNone {
		return desktop.CrosshairCursor
	}
	if ec.scene.OverlayAt(ec.hover) {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// MinSize keeps the canvas at its native size.
func (ec *EditorCanvas) MinSize() fyne.Size {
	return ec.raster.MinSize()
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}

// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"errors"
	"fmt"
	goimage "image"
	"io"
	"log"
	"math"
	"slices"
	"sync"

	"eyes-editor/internal/assets"
	"eyes-editor/internal/editor"
	"eyes-editor/internal/image"
	"eyes-editor/pkg/geometry"
)

// SavedMessage is shown under the controls after a successful export.
const SavedMessage = "Image saved! You can create a new image below."

var (
	ErrNoImage        = errors.New("no image loaded")
	ErrNotEditable    = errors.New("overlay can only be changed while editing")
	ErrUnknownOverlay = errors.New("unknown overlay")
)

// Mode is the screen the editor is showing.
type Mode int

const (
	ModeEmpty Mode = iota // No base image; only upload is offered
	ModeEdit              // Base image loaded, overlay editable
	ModeFinal             // Composition frozen and watermarked
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeEdit:
		return "edit"
	case ModeFinal:
		return "final"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded    EventType = iota // data: *image.Layer
	EventOverlayChanged                  // data: *editor.Overlay snapshot or nil
	EventModeChanged                     // data: Mode
	EventSaved                           // data: nil
	EventStatus                          // data: string
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the base image, the overlay editor and
// the current mode.
type State struct {
	mu sync.RWMutex

	cfg       Config
	catalog   *assets.Catalog
	composite *image.Composite

	mode    Mode
	base    *image.Layer
	editor  *editor.Editor
	message string

	// Event listeners
	listeners map[EventType][]EventListener
}

// NewState creates a new application state in empty mode.
func NewState(cfg Config, catalog *assets.Catalog) *State {
	return &State{
		cfg:       cfg,
		catalog:   catalog,
		composite: image.NewComposite(cfg.CanvasSize),
		editor:    editor.New(cfg.Limits()),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Config returns the configuration the state was created with.
func (s *State) Config() Config {
	return s.cfg
}

// Catalog returns the asset catalog.
func (s *State) Catalog() *assets.Catalog {
	return s.catalog
}

// CanvasSize returns the side of the square canvas in pixels.
func (s *State) CanvasSize() int {
	return s.cfg.CanvasSize
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Base returns the loaded base image, or nil.
func (s *State) Base() *image.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base
}

// Message returns the status text shown under the controls.
func (s *State) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

// HasOverlay reports whether an overlay is placed.
func (s *State) HasOverlay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editor.HasOverlay()
}

// Overlay returns a copy of the overlay, or nil.
func (s *State) Overlay() *editor.Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editor.Snapshot()
}

// CanAddOverlay reports whether the overlay buttons are enabled.
func (s *State) CanAddOverlay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode == ModeEdit && s.base != nil && !s.editor.HasOverlay()
}

// Handles returns the handle positions when they should be drawn: in edit
// mode with the overlay selected.
func (s *State) Handles() (editor.Handles, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mode != ModeEdit || !s.editor.Selected() {
		return editor.Handles{}, false
	}
	return s.editor.Handles()
}

// SetHandleSize changes the handle hot-zone half-width, e.g. for touch input.
func (s *State) SetHandleSize(size float64) {
	s.mu.Lock()
	s.editor.Limits.HandleSize = size
	s.mu.Unlock()
}

// HandleSize returns the current handle hot-zone half-width.
func (s *State) HandleSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editor.Limits.HandleSize
}

func (s *State) setMode(m Mode) bool {
	if s.mode == m {
		return false
	}
	log.Printf("Mode: %s -> %s", s.mode, m)
	s.mode = m
	return true
}

// LoadImage loads a base image from path and switches to edit mode.
func (s *State) LoadImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}
	s.SetBase(layer)
	return nil
}

// SetBase installs layer as the base image, removes any overlay and enters
// edit mode.
func (s *State) SetBase(layer *image.Layer) {
	s.mu.Lock()
	s.base = layer
	s.editor.Reset()
	s.message = ""
	changed := s.setMode(ModeEdit)
	s.mu.Unlock()

	log.Printf("Loaded base image %q (%dx%d %s)", layer.Path, layer.Width(), layer.Height(), layer.Format)
	s.Emit(EventImageLoaded, layer)
	s.Emit(EventOverlayChanged, nil)
	if changed {
		s.Emit(EventModeChanged, ModeEdit)
	}
	s.Emit(EventStatus, "")
}

// editable reports why the overlay cannot be changed, if it cannot. Callers
// hold s.mu.
func (s *State) editable() error {
	if s.base == nil {
		return ErrNoImage
	}
	if s.mode != ModeEdit {
		return ErrNotEditable
	}
	return nil
}

// AddOverlay places the catalog sprite named kind at the canvas center.
func (s *State) AddOverlay(kind string) error {
	s.mu.RLock()
	err := s.editable()
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	sprite, err := s.catalog.Overlay(kind)
	if err != nil {
		if errors.Is(err, assets.ErrUnknownAsset) {
			return fmt.Errorf("%w: %s", ErrUnknownOverlay, kind)
		}
		return fmt.Errorf("failed to load overlay: %w", err)
	}

	// The sprite was decoded without the lock; the mode may have moved on.
	s.mu.Lock()
	if err = s.editable(); err == nil {
		_, err = s.editor.PlaceOverlay(kind, sprite, float64(s.cfg.CanvasSize))
	}
	snapshot := s.editor.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	log.Printf("Added overlay %q at scale %.3f", kind, snapshot.Scale)
	s.Emit(EventOverlayChanged, snapshot)
	return nil
}

// SetOverlayPose positions the overlay directly. Scale is clamped to the
// configured limits and rotation normalized into [-180, 180].
func (s *State) SetOverlayPose(x, y, scale, rotation float64, flipped bool) error {
	s.mu.Lock()
	o := s.editor.Overlay()
	if o == nil {
		s.mu.Unlock()
		return editor.ErrNoSprite
	}
	if s.mode != ModeEdit {
		s.mu.Unlock()
		return ErrNotEditable
	}
	lim := s.editor.Limits
	o.X, o.Y = x, y
	o.Scale = geometry.Clamp(scale, lim.MinScale, lim.MaxScale)
	o.Rotation = math.Remainder(rotation, 360)
	o.Flipped = flipped
	snapshot := o.Clone()
	s.mu.Unlock()

	s.Emit(EventOverlayChanged, snapshot)
	return nil
}

// NewImage discards the base image and overlay and returns to empty mode.
func (s *State) NewImage() {
	s.mu.Lock()
	s.base = nil
	s.editor.Reset()
	s.message = ""
	changed := s.setMode(ModeEmpty)
	s.mu.Unlock()

	s.Emit(EventOverlayChanged, nil)
	if changed {
		s.Emit(EventModeChanged, ModeEmpty)
	}
	s.Emit(EventStatus, "")
}

// Finalize freezes the composition: handles are hidden and the watermark
// becomes visible.
func (s *State) Finalize() error {
	s.mu.Lock()
	if s.base == nil {
		s.mu.Unlock()
		return ErrNoImage
	}
	s.editor.PointerUp()
	s.editor.Deselect()
	changed := s.setMode(ModeFinal)
	s.mu.Unlock()

	if changed {
		s.Emit(EventModeChanged, ModeFinal)
	}
	return nil
}

// Export finalizes the composition and writes it to w as PNG.
func (s *State) Export(w io.Writer) error {
	img, err := s.finalImage()
	if err != nil {
		return err
	}
	if err := image.EncodePNG(w, img); err != nil {
		return err
	}
	s.saved()
	return nil
}

// ExportFile finalizes the composition and saves it as a PNG file.
func (s *State) ExportFile(path string) error {
	img, err := s.finalImage()
	if err != nil {
		return err
	}
	if err := image.SavePNG(path, img); err != nil {
		return err
	}
	log.Printf("Exported %s", path)
	s.saved()
	return nil
}

func (s *State) finalImage() (*goimage.RGBA, error) {
	if err := s.Finalize(); err != nil {
		return nil, err
	}
	return s.Render(), nil
}

func (s *State) saved() {
	s.mu.Lock()
	s.message = SavedMessage
	s.mu.Unlock()

	s.Emit(EventSaved, nil)
	s.Emit(EventStatus, SavedMessage)
}

// Render composes the canvas for the current mode. Handles are not part of
// the composition; the canvas widget draws them on top.
func (s *State) Render() *goimage.RGBA {
	s.mu.RLock()
	scene := image.Scene{}
	if s.base != nil {
		scene.Base = s.base.Image
	}
	mode := s.mode
	if mode != ModeEmpty {
		scene.Overlay = s.editor.Snapshot()
		scene.ShowSelection = mode == ModeEdit && s.editor.Selected()
	}
	s.mu.RUnlock()

	if mode == ModeFinal {
		scene.Watermark = s.watermark()
	}
	return s.composite.Render(scene)
}

func (s *State) watermark() *image.Watermark {
	if !s.cfg.Watermark {
		return nil
	}
	img, err := s.catalog.Watermark()
	if err != nil {
		log.Printf("Watermark unavailable: %v", err)
		return nil
	}
	if img == nil {
		return nil
	}
	wm := image.NewWatermark(img)
	wm.Opacity = s.cfg.WatermarkOpacity
	wm.Padding = s.cfg.WatermarkPadding
	wm.MaxFraction = s.cfg.WatermarkFraction
	return wm
}

// PointerDown forwards a press in canvas pixels to the editor. Outside edit
// mode it does nothing.
func (s *State) PointerDown(p geometry.Point2D) editor.Action {
	s.mu.Lock()
	if s.mode != ModeEdit {
		s.mu.Unlock()
		return editor.ActionNone
	}
	action := s.editor.PointerDown(p)
	snapshot := s.editor.Snapshot()
	s.mu.Unlock()

	if action != editor.ActionNone {
		s.Emit(EventOverlayChanged, snapshot)
	}
	return action
}

// PointerMove forwards a pointer move in canvas pixels and reports whether
// the overlay changed.
func (s *State) PointerMove(p geometry.Point2D) bool {
	s.mu.Lock()
	if s.mode != ModeEdit {
		s.mu.Unlock()
		return false
	}
	changed := s.editor.PointerMove(p)
	snapshot := s.editor.Snapshot()
	s.mu.Unlock()

	if changed {
		s.Emit(EventOverlayChanged, snapshot)
	}
	return changed
}

// PointerUp ends the active gesture.
func (s *State) PointerUp() {
	s.mu.Lock()
	s.editor.PointerUp()
	s.mu.Unlock()
}

// Gesture returns the gesture in progress.
func (s *State) Gesture() editor.Gesture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editor.Gesture()
}

// OverlayAt reports whether p lies on the overlay body in edit mode.
func (s *State) OverlayAt(p geometry.Point2D) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o := s.editor.Overlay()
	return s.mode == ModeEdit && o != nil && o.Contains(p)
}

// ReloadAssets drops cached catalog images for the changed files and swaps
// a fresh sprite into the live overlay when its file changed.
func (s *State) ReloadAssets(files []string) {
	for _, f := range files {
		s.catalog.Invalidate(f)
	}

	s.mu.RLock()
	o := s.editor.Overlay()
	kind := ""
	if o != nil {
		kind = o.Kind
	}
	s.mu.RUnlock()
	if kind == "" {
		return
	}

	entry, ok := s.catalog.Entry(kind)
	if !ok || !slices.Contains(files, entry.File) {
		return
	}
	sprite, err := s.catalog.Overlay(kind)
	if err != nil {
		log.Printf("Assets: failed to reload %s: %v", entry.File, err)
		return
	}

	s.mu.Lock()
	if o := s.editor.Overlay(); o != nil && o.Kind == kind {
		o.Image = sprite
	}
	snapshot := s.editor.Snapshot()
	s.mu.Unlock()

	log.Printf("Assets: reloaded %s", entry.File)
	s.Emit(EventOverlayChanged, snapshot)
}

package image

import (
	"image"
	"image/color"
	"math"

	"eyes-editor/pkg/colorutil"

	"golang.org/x/image/draw"
)

// Watermark defaults.
const (
	DefaultWatermarkOpacity     = 0.7
	DefaultWatermarkPadding     = 16.0
	DefaultWatermarkMaxFraction = 0.25
)

// Watermark is a branding image stamped into the bottom-right corner of the
// final composition.
type Watermark struct {
	Image       image.Image
	Opacity     float64 // 0.0 - 1.0
	Padding     float64 // Gap to the right and bottom canvas edges, in pixels
	MaxFraction float64 // Largest allowed width as a fraction of canvas width
}

// NewWatermark wraps img with the default opacity, padding and size limit.
func NewWatermark(img image.Image) *Watermark {
	return &Watermark{
		Image:       img,
		Opacity:     DefaultWatermarkOpacity,
		Padding:     DefaultWatermarkPadding,
		MaxFraction: DefaultWatermarkMaxFraction,
	}
}

// Placement returns where the watermark lands on a canvasW x canvasH canvas.
// The image is never enlarged, and shrunk to at most MaxFraction of the
// canvas width.
func (w *Watermark) Placement(canvasW, canvasH int) image.Rectangle {
	if w == nil || w.Image == nil || w.Image.Bounds().Empty() {
		return image.Rectangle{}
	}
	b := w.Image.Bounds()
	maxWidth := float64(canvasW) * w.MaxFraction
	scale := math.Min(1, maxWidth/float64(b.Dx()))

	ww := float64(b.Dx()) * scale
	wh := float64(b.Dy()) * scale
	x := float64(canvasW) - ww - w.Padding
	y := float64(canvasH) - wh - w.Padding
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+ww)), int(math.Round(y+wh)),
	)
}

// Stamp draws the watermark onto dst at its placement and opacity.
func (w *Watermark) Stamp(dst draw.Image) {
	b := dst.Bounds()
	r := w.Placement(b.Dx(), b.Dy()).Add(b.Min)
	if r.Empty() {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), w.Image, w.Image.Bounds(), draw.Src, nil)

	mask := image.NewUniform(color.Alpha{A: colorutil.OpacityAlpha(w.Opacity)})
	draw.DrawMask(dst, r, scaled, image.Point{}, mask, image.Point{}, draw.Over)
}

// Package canvas provides drawing primitives for the editor canvas.
package canvas

import (
	"image"
	"image/color"
	"math"

	"eyes-editor/internal/editor"
	"eyes-editor/pkg/colorutil"
	"eyes-editor/pkg/geometry"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

const (
	handleBorder = 2.0 // Accent ring width
	glyphWidth   = 2.0
)

// painter wraps the rasterx filler and stroker for one target image.
type painter struct {
	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

func newPainter(dst *image.RGBA) *painter {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	return &painter{
		filler: rasterx.NewFiller(b.Dx(), b.Dy(), scanner),
		dasher: rasterx.NewDasher(b.Dx(), b.Dy(), scanner),
	}
}

// fillCircle paints a solid disc.
func (p *painter) fillCircle(c geometry.Point2D, r float64, clr color.Color) {
	p.filler.Clear()
	p.filler.SetColor(clr)
	rasterx.AddCircle(c.X, c.Y, r, p.filler)
	p.filler.Draw()
}

// strokeCircle paints a ring of the given width.
func (p *painter) strokeCircle(c geometry.Point2D, r, width float64, clr color.Color) {
	p.setStroke(width, clr)
	rasterx.AddCircle(c.X, c.Y, r, p.dasher)
	p.dasher.Draw()
}

// polyline strokes an open path through pts.
func (p *painter) polyline(pts []geometry.Point2D, width float64, clr color.Color) {
	if len(pts) < 2 {
		return
	}
	p.setStroke(width, clr)
	p.dasher.Start(rasterx.ToFixedP(pts[0].X, pts[0].Y))
	for _, pt := range pts[1:] {
		p.dasher.Line(rasterx.ToFixedP(pt.X, pt.Y))
	}
	p.dasher.Stop(false)
	p.dasher.Draw()
}

func (p *painter) setStroke(width float64, clr color.Color) {
	p.dasher.Clear()
	p.dasher.SetStroke(fixed.Int26_6(width*64), 4*64, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	p.dasher.SetColor(clr)
}

// DrawHandles paints the four handle buttons onto dst. diameter is the
// on-canvas size of each button.
func DrawHandles(dst *image.RGBA, h editor.Handles, diameter float64) {
	p := newPainter(dst)
	r := diameter / 2

	for _, kind := range []editor.HandleKind{editor.HandleDelete, editor.HandleFlip, editor.HandleRotate, editor.HandleScale} {
		c, _ := h.Position(kind)

		fill := colorutil.HandleFill
		if kind == editor.HandleRotate || kind == editor.HandleScale {
			fill = colorutil.HandleAccent
		}
		// Drop shadow, then face, then ring.
		p.fillCircle(c.Add(geometry.Point2D{Y: 2}), r+2, colorutil.Shadow)
		p.fillCircle(c, r, fill)
		p.strokeCircle(c, r-handleBorder/2, handleBorder, colorutil.Accent)

		drawGlyph(p, kind, c, r*0.5)
	}
}

// drawGlyph draws the icon of a handle inside a button of radius r centered on c.
func drawGlyph(p *painter, kind editor.HandleKind, c geometry.Point2D, r float64) {
	at := func(dx, dy float64) geometry.Point2D {
		return geometry.Point2D{X: c.X + dx*r, Y: c.Y + dy*r}
	}

	switch kind {
	case editor.HandleDelete:
		p.polyline([]geometry.Point2D{at(-1, -1), at(1, 1)}, glyphWidth, colorutil.DeleteRed)
		p.polyline([]geometry.Point2D{at(1, -1), at(-1, 1)}, glyphWidth, colorutil.DeleteRed)

	case editor.HandleFlip:
		// Two opposing half-arrows.
		p.polyline([]geometry.Point2D{at(1, -0.4), at(-1, -0.4), at(-0.5, -0.9)}, glyphWidth, colorutil.Accent)
		p.polyline([]geometry.Point2D{at(-1, 0.4), at(1, 0.4), at(0.5, 0.9)}, glyphWidth, colorutil.Accent)

	case editor.HandleRotate:
		// Three-quarter arc with an arrow head at its end.
		const steps = 12
		arc := make([]geometry.Point2D, 0, steps+1)
		for i := 0; i <= steps; i++ {
			a := -math.Pi/2 + 1.5*math.Pi*float64(i)/steps
			arc = append(arc, at(math.Cos(a), math.Sin(a)))
		}
		p.polyline(arc, glyphWidth, colorutil.Accent)
		end := arc[len(arc)-1]
		p.polyline([]geometry.Point2D{
			{X: end.X - 0.5*r, Y: end.Y - 0.5*r}, end, {X: end.X - 0.5*r, Y: end.Y + 0.5*r},
		}, glyphWidth, colorutil.Accent)

	case editor.HandleScale:
		p.polyline([]geometry.Point2D{at(-1, 0), at(1, 0)}, glyphWidth, colorutil.Accent)
		p.polyline([]geometry.Point2D{at(-0.5, -0.5), at(-1, 0), at(-0.5, 0.5)}, glyphWidth, colorutil.Accent)
		p.polyline([]geometry.Point2D{at(0.5, -0.5), at(1, 0), at(0.5, 0.5)}, glyphWidth, colorutil.Accent)
	}
}

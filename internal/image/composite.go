package image

import (
	"image"
	"image/color"
	"math"

	"eyes-editor/internal/editor"
	"eyes-editor/pkg/colorutil"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// Selection outline style, in sprite pixels. The outline scales with the
// overlay.
var (
	SelectionDashes = []float64{6, 4}
	SelectionWidth  = 2.0
)

// Scene is everything one render pass draws, bottom to top.
type Scene struct {
	Base          image.Image     // Letterboxed into the canvas; nil draws nothing
	Overlay       *editor.Overlay // Drawn under its affine transform; may be nil
	ShowSelection bool            // Dashed outline around the overlay
	Watermark     *Watermark      // Stamped bottom-right when non-nil
}

// Composite renders scenes onto a fixed square canvas.
type Composite struct {
	Size       int
	Background color.Color
}

// NewComposite creates a Composite for a size x size canvas with a
// transparent background.
func NewComposite(size int) *Composite {
	return &Composite{
		Size:       size,
		Background: color.Transparent,
	}
}

// Render produces the composed canvas for the scene.
func (c *Composite) Render(scene Scene) *image.RGBA {
	result := image.NewRGBA(image.Rect(0, 0, c.Size, c.Size))
	draw.Draw(result, result.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)

	if scene.Base == nil {
		return result
	}

	src := scene.Base.Bounds()
	draw.CatmullRom.Scale(result, Letterbox(src.Dx(), src.Dy(), c.Size), scene.Base, src, draw.Over, nil)

	if o := scene.Overlay; o != nil && o.Image != nil {
		draw.BiLinear.Transform(result, o.SpriteTransform().Aff3(), o.Image, o.Image.Bounds(), draw.Over, nil)
		if scene.ShowSelection {
			DrawSelection(result, o)
		}
	}

	if scene.Watermark != nil {
		scene.Watermark.Stamp(result)
	}
	return result
}

// Letterbox returns the rectangle a w x h image occupies when fitted inside a
// size x size canvas without distortion, centered on the free axis.
func Letterbox(w, h, size int) image.Rectangle {
	if w <= 0 || h <= 0 || size <= 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	dw := float64(w) * scale
	dh := float64(h) * scale
	x0 := (float64(size) - dw) / 2
	y0 := (float64(size) - dh) / 2
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+dw)), int(math.Round(y0+dh)),
	)
}

// DrawSelection strokes a dashed outline along the overlay's rotated bounds.
func DrawSelection(dst draw.Image, o *editor.Overlay) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dashes := make([]float64, len(SelectionDashes))
	for i, d := range SelectionDashes {
		dashes[i] = d * o.Scale
	}
	width := SelectionWidth * o.Scale
	dasher.SetStroke(fixed.Int26_6(width*64), 4*64, rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.Miter, dashes, 0)
	dasher.SetColor(colorutil.Accent)

	corners := o.Corners()
	dasher.Start(rasterx.ToFixedP(corners[0].X, corners[0].Y))
	for _, p := range corners[1:] {
		dasher.Line(rasterx.ToFixedP(p.X, p.Y))
	}
	dasher.Stop(true)
	dasher.Draw()
}

package image

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrEmptySVG is returned for documents without a usable view box.
var ErrEmptySVG = errors.New("svg has an empty view box")

// RasterizeSVG renders an SVG document into a transparent RGBA image that is
// width pixels wide, keeping the view box aspect ratio.
func RasterizeSVG(r io.Reader, width int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrEmptySVG
	}
	if width <= 0 {
		width = int(math.Ceil(icon.ViewBox.W))
	}
	height := int(math.Round(float64(width) * icon.ViewBox.H / icon.ViewBox.W))
	if height < 1 {
		height = 1
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

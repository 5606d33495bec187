// Package colorutil provides shared colors for the editor's canvas drawing.
package colorutil

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Colors used for selection, handles and the canvas frame.
var (
	Accent       = color.RGBA{R: 0x00, G: 0x7a, B: 0xff, A: 0xff} // Selection outline and handle borders
	Frame        = color.RGBA{R: 0x8f, G: 0xbf, B: 0xff, A: 0xff} // Canvas and button borders
	Background   = color.RGBA{R: 0xf8, G: 0xf8, B: 0xfa, A: 0xff} // Behind the letterboxed image
	DeleteRed    = color.RGBA{R: 0xee, G: 0x00, B: 0x00, A: 0xff}
	HandleFill   = colornames.White
	HandleAccent = colornames.Aliceblue // Fill for the rotate and scale handles
	Shadow       = color.RGBA{A: 0x26}
)

// WithAlpha returns c with its alpha replaced, un-premultiplied first.
func WithAlpha(c color.Color, alpha uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alpha
	return n
}

// OpacityAlpha converts an opacity in [0, 1] to an 8-bit alpha.
func OpacityAlpha(opacity float64) uint8 {
	switch {
	case opacity <= 0:
		return 0
	case opacity >= 1:
		return 0xff
	}
	return uint8(opacity*255 + 0.5)
}

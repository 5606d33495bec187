// Package editor implements the overlay interaction model: the single sprite
// placed over the base image, its on-canvas handles, and the pointer gestures
// that move, scale, rotate, flip and delete it.
package editor

import (
	"image"

	"eyes-editor/pkg/geometry"
)

// Overlay is the single movable sprite composited onto the base image.
type Overlay struct {
	Kind     string      // Catalog key of the sprite (e.g. "new-eyes")
	Image    image.Image // Sprite pixels at natural size
	X        float64     // Center X in canvas pixels
	Y        float64     // Center Y in canvas pixels
	Scale    float64     // 1 = natural size
	Rotation float64     // Degrees, positive = clockwise
	Flipped  bool        // Mirrored horizontally around its center
}

// Width returns the sprite's natural width in pixels.
func (o *Overlay) Width() float64 {
	if o.Image == nil {
		return 0
	}
	return float64(o.Image.Bounds().Dx())
}

// Height returns the sprite's natural height in pixels.
func (o *Overlay) Height() float64 {
	if o.Image == nil {
		return 0
	}
	return float64(o.Image.Bounds().Dy())
}

// Center returns the overlay center in canvas coordinates.
func (o *Overlay) Center() geometry.Point2D {
	return geometry.NewPoint2D(o.X, o.Y)
}

// Transform maps sprite-local coordinates, with the origin at the sprite
// center, to canvas coordinates: translate, then rotate, then scale with the
// x axis negated when flipped.
func (o *Overlay) Transform() geometry.AffineTransform {
	sx := o.Scale
	if o.Flipped {
		sx = -sx
	}
	return geometry.Translation(o.X, o.Y).
		Compose(geometry.Rotation(geometry.DegToRad(o.Rotation))).
		Compose(geometry.Scale(sx, o.Scale))
}

// SpriteTransform maps sprite pixel coordinates (origin at the image's
// top-left) to canvas coordinates.
func (o *Overlay) SpriteTransform() geometry.AffineTransform {
	b := o.Image.Bounds()
	return o.Transform().Compose(geometry.Translation(
		-float64(b.Min.X)-o.Width()/2,
		-float64(b.Min.Y)-o.Height()/2,
	))
}

// Corners returns the rotated bounding box corners in the order top-left,
// top-right, bottom-right, bottom-left. Flipping mirrors the sprite inside the
// box and leaves the corners where they are.
func (o *Overlay) Corners() geometry.Quad {
	w := o.Width() * o.Scale
	h := o.Height() * o.Scale
	c := o.Center()
	theta := geometry.DegToRad(o.Rotation)

	return geometry.Quad{
		geometry.NewPoint2D(o.X-w/2, o.Y-h/2).RotateAround(c, theta),
		geometry.NewPoint2D(o.X+w/2, o.Y-h/2).RotateAround(c, theta),
		geometry.NewPoint2D(o.X+w/2, o.Y+h/2).RotateAround(c, theta),
		geometry.NewPoint2D(o.X-w/2, o.Y+h/2).RotateAround(c, theta),
	}
}

// Contains reports whether p lies strictly inside the rotated sprite body.
func (o *Overlay) Contains(p geometry.Point2D) bool {
	if o.Image == nil {
		return false
	}
	inv, ok := o.Transform().Inverse()
	if !ok {
		return false
	}
	local := inv.Apply(p)

	halfW := o.Width() / 2
	halfH := o.Height() / 2
	return local.X > -halfW && local.X < halfW &&
		local.Y > -halfH && local.Y < halfH
}

// Clone returns a copy of the overlay. The sprite image is shared.
func (o *Overlay) Clone() *Overlay {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRotateAround(t *testing.T) {
	center := NewPoint2D(10, 10)

	p := NewPoint2D(20, 10).RotateAround(center, math.Pi/2)
	assert.InDelta(t, 10, p.X, eps)
	assert.InDelta(t, 20, p.Y, eps, "a quarter turn moves +x to +y (down on screen)")

	same := NewPoint2D(3, 4).RotateAround(center, 0)
	assert.Equal(t, NewPoint2D(3, 4), same)
}

func TestAngleFrom(t *testing.T) {
	c := NewPoint2D(0, 0)
	assert.InDelta(t, 0, NewPoint2D(5, 0).AngleFrom(c), eps)
	assert.InDelta(t, math.Pi/2, NewPoint2D(0, 5).AngleFrom(c), eps)
	assert.InDelta(t, math.Pi, NewPoint2D(-5, 0).AngleFrom(c), eps)
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{538, 178},
		{-538, -178},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeDegrees(tt.in), eps, "in=%v", tt.in)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.1, Clamp(0.01, 0.1, 5))
	assert.Equal(t, 5.0, Clamp(9, 0.1, 5))
	assert.Equal(t, 2.5, Clamp(2.5, 0.1, 5))
}

func TestAffineComposeAndInverse(t *testing.T) {
	tr := Translation(100, 50).
		Compose(Rotation(DegToRad(30))).
		Compose(Scale(-2, 2))

	p := NewPoint2D(7, -3)
	q := tr.Apply(p)

	inv, ok := tr.Inverse()
	require.True(t, ok)
	back := inv.Apply(q)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	_, ok = Scale(0, 1).Inverse()
	assert.False(t, ok)
}

func TestAff3Layout(t *testing.T) {
	tr := AffineTransform{A: 1, B: 2, TX: 3, C: 4, D: 5, TY: 6}
	assert.Equal(t, [6]float64{1, 2, 3, 4, 5, 6}, [6]float64(tr.Aff3()))
}

package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpacityAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), OpacityAlpha(-1))
	assert.Equal(t, uint8(0), OpacityAlpha(0))
	assert.Equal(t, uint8(128), OpacityAlpha(0.5))
	assert.Equal(t, uint8(255), OpacityAlpha(1))
	assert.Equal(t, uint8(255), OpacityAlpha(3))
}

func TestWithAlpha(t *testing.T) {
	got := WithAlpha(Accent, 0x80)
	assert.Equal(t, color.NRGBA{R: 0x00, G: 0x7a, B: 0xff, A: 0x80}, got)
}

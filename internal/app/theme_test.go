package app

import (
	"image/color"
	"testing"

	"eyes-editor/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestEyesThemeColors(t *testing.T) {
	th := &EyesTheme{}
	tests := []struct {
		name fyne.ThemeColorName
		want color.Color
	}{
		{theme.ColorNamePrimary, colorutil.Accent},
		{theme.ColorNameBackground, colorutil.Background},
		{theme.ColorNameButton, color.White},
		{theme.ColorNameHover, color.NRGBA{R: 0x00, G: 0x7a, B: 0xff, A: 0x1A}},
		{theme.ColorNamePressed, color.NRGBA{R: 0x00, G: 0x7a, B: 0xff, A: 0x40}},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			assert.Equal(t, tt.want, th.Color(tt.name, theme.VariantDark))
		})
	}
	assert.Equal(t, float32(10), th.Size(theme.SizeNameInputRadius))
}

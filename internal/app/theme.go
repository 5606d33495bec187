package app

import (
	"image/color"

	"eyes-editor/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EyesTheme is the light theme of the editor: blue accents on an off-white
// background.
type EyesTheme struct{}

var _ fyne.Theme = (*EyesTheme)(nil)

func (t *EyesTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return colorutil.Accent
	case theme.ColorNameBackground:
		return colorutil.Background
	case theme.ColorNameButton:
		return color.White
	case theme.ColorNameHover:
		return colorutil.WithAlpha(colorutil.Accent, 0x1A)
	case theme.ColorNamePressed, theme.ColorNameSelection:
		return colorutil.WithAlpha(colorutil.Accent, 0x40)
	case theme.ColorNameInputBorder:
		return colorutil.Frame
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	case theme.ColorNameDisabled:
		return color.NRGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}
	case theme.ColorNameDisabledButton:
		return color.NRGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

func (t *EyesTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *EyesTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *EyesTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameInputRadius:
		return 10 // Rounded buttons
	case theme.SizeNameText:
		return 16
	default:
		return theme.DefaultTheme().Size(name)
	}
}

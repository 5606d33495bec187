// Package image provides image loading, scene compositing, watermarking and
// PNG export.
package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultSVGWidth is the raster width used for SVG files opened without an
// explicit size.
const DefaultSVGWidth = 512

// Layer is a decoded image together with where it came from.
type Layer struct {
	Path   string      // Original file path ("" for embedded assets)
	Image  image.Image // Decoded pixels
	Format string      // Decoder name: "png", "jpeg", "svg", ...
}

// Load loads an image from the specified path and returns a Layer.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	layer, err := Decode(file, path, DefaultSVGWidth)
	if err != nil {
		return nil, err
	}
	layer.Path = path
	return layer, nil
}

// Decode reads a raster image, or rasterizes an SVG document at svgWidth
// pixels wide when name has an .svg extension.
func Decode(r io.Reader, name string, svgWidth int) (*Layer, error) {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		img, err := RasterizeSVG(r, svgWidth)
		if err != nil {
			return nil, err
		}
		return &Layer{Image: img, Format: "svg"}, nil
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Layer{Image: img, Format: format}, nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte, name string, svgWidth int) (*Layer, error) {
	return Decode(bytes.NewReader(data), name, svgWidth)
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// SupportedFormats returns the list of file extensions accepted for base images.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".webp", ".bmp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

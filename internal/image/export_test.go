package image

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, solid(8, 4, red)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestSavePNGAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(path, solid(16, 9, blue)))

	layer, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, layer.Path)
	assert.Equal(t, "png", layer.Format)
	assert.Equal(t, 16, layer.Width())
	assert.Equal(t, 9, layer.Height())

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

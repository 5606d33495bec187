package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	p := Load(dir)
	assert.Equal(t, filepath.Join(dir, "preferences.json"), p.Path())
	assert.Empty(t, p.String(KeyLastDir))
}

func TestSaveAndReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	p := Load(dir)
	p.SetString(KeyLastExport, "/tmp/out.png")
	require.NoError(t, p.Save())

	again := Load(dir)
	assert.Equal(t, "/tmp/out.png", again.String(KeyLastExport))
}

func TestSaveIfChanged(t *testing.T) {
	dir := t.TempDir()
	p := Load(dir)
	require.NoError(t, p.SaveIfChanged())
	assert.NoFileExists(t, p.Path())

	p.SetString(KeyLastImage, "a.png")
	require.NoError(t, p.SaveIfChanged())
	assert.FileExists(t, p.Path())

	require.NoError(t, os.Remove(p.Path()))
	p.SetString(KeyLastImage, "a.png")
	require.NoError(t, p.SaveIfChanged())
	assert.NoFileExists(t, p.Path())
}

func TestLastDir(t *testing.T) {
	dir := t.TempDir()
	p := Load(t.TempDir())

	p.RememberFile(filepath.Join(dir, "photo.jpg"))
	assert.Equal(t, dir, p.LastDir())

	p.SetString(KeyLastDir, filepath.Join(dir, "gone"))
	assert.Empty(t, p.LastDir())
}

func TestCorruptFileIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.json"), []byte("{not json"), 0o644))
	p := Load(dir)
	assert.Empty(t, p.String(KeyLastDir))
}

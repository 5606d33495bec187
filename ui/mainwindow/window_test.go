package mainwindow

import (
	goimage "image"
	"image/color"
	"path/filepath"
	"testing"

	"eyes-editor/internal/app"
	"eyes-editor/internal/assets"
	"eyes-editor/internal/image"
	"eyes-editor/ui/prefs"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow(t *testing.T) (*MainWindow, *app.State) {
	t.Helper()
	a := test.NewApp()
	catalog, err := assets.Load("")
	require.NoError(t, err)
	s := app.NewState(app.DefaultConfig(), catalog)
	return New(a, s, prefs.Load(t.TempDir())), s
}

func controlLabels(mw *MainWindow) (labels []string, disabled []string) {
	for _, o := range mw.controls.Objects {
		b := o.(*widget.Button)
		labels = append(labels, b.Text)
		if b.Disabled() {
			disabled = append(disabled, b.Text)
		}
	}
	return labels, disabled
}

func testBase(t *testing.T) string {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, 32, 16))
	img.Set(0, 0, color.White)
	path := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, image.SavePNG(path, img))
	return path
}

func TestControlsFollowMode(t *testing.T) {
	mw, s := newTestWindow(t)

	labels, _ := controlLabels(mw)
	assert.Equal(t, []string{"Upload Image"}, labels)

	require.NoError(t, mw.OpenImage(testBase(t)))
	labels, disabled := controlLabels(mw)
	assert.Equal(t, []string{"OG Eyes", "New Eyes", "New Image", "Save Image"}, labels)
	assert.Empty(t, disabled)
	assert.Equal(t, "Eyes Editor - cat.png", mw.Title())

	require.NoError(t, s.AddOverlay("new-eyes"))
	_, disabled = controlLabels(mw)
	assert.Equal(t, []string{"OG Eyes", "New Eyes"}, disabled)

	require.NoError(t, s.Finalize())
	labels, _ = controlLabels(mw)
	assert.Equal(t, []string{"New Image", "Save Image"}, labels)

	mw.onNewImage()
	labels, _ = controlLabels(mw)
	assert.Equal(t, []string{"Upload Image"}, labels)
	assert.Equal(t, "Eyes Editor", mw.Title())
}

func TestMessageFollowsStatus(t *testing.T) {
	mw, s := newTestWindow(t)
	require.NoError(t, mw.OpenImage(testBase(t)))

	s.Emit(app.EventStatus, app.SavedMessage)
	assert.Equal(t, app.SavedMessage, mw.message.Text)

	s.NewImage()
	assert.Empty(t, mw.message.Text)
}

func TestOpenImageRemembersPath(t *testing.T) {
	mw, _ := newTestWindow(t)
	path := testBase(t)

	require.NoError(t, mw.OpenImage(path))
	assert.Equal(t, path, mw.prefs.String(prefs.KeyLastImage))
	assert.Equal(t, filepath.Dir(path), mw.prefs.LastDir())

	assert.Error(t, mw.OpenImage(filepath.Join(t.TempDir(), "nope.png")))
}

func TestRestoreLastImage(t *testing.T) {
	mw, s := newTestWindow(t)
	mw.RestoreLastImage()
	assert.Equal(t, app.ModeEmpty, s.Mode())

	mw.prefs.SetString(prefs.KeyLastImage, testBase(t))
	mw.RestoreLastImage()
	assert.Equal(t, app.ModeEdit, s.Mode())
}

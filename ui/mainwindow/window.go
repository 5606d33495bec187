// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"eyes-editor/internal/app"
	"eyes-editor/internal/editor"
	"eyes-editor/internal/image"
	"eyes-editor/internal/version"
	"eyes-editor/pkg/colorutil"
	"eyes-editor/ui/canvas"
	"eyes-editor/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "Eyes Editor"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	canvas   *canvas.EditorCanvas
	controls *fyne.Container
	message  *fynecanvas.Text

	uploadBtn   *widget.Button
	overlayBtns []*widget.Button
	newBtn      *widget.Button
	saveBtn     *widget.Button
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.updateControls()

	return mw
}

// setupUI creates the main UI layout: canvas, controls grid, message.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.state)
	mw.canvas.OnAction(func(action editor.Action) {
		if action == editor.ActionDeleted {
			mw.updateControls()
		}
	})

	mw.uploadBtn = widget.NewButton("Upload Image", mw.onUpload)
	for _, entry := range mw.state.Catalog().Entries() {
		kind := entry.Key
		mw.overlayBtns = append(mw.overlayBtns, widget.NewButton(entry.Label, func() {
			mw.onAddOverlay(kind)
		}))
	}
	mw.newBtn = widget.NewButton("New Image", mw.onNewImage)
	mw.saveBtn = widget.NewButton("Save Image", mw.onSave)
	mw.saveBtn.Importance = widget.HighImportance

	mw.controls = container.NewGridWithColumns(2)

	mw.message = fynecanvas.NewText("", colorutil.Accent)
	mw.message.TextStyle = fyne.TextStyle{Bold: true}
	mw.message.TextSize = 18
	mw.message.Alignment = fyne.TextAlignCenter

	frame := fynecanvas.NewRectangle(colorutil.Background)
	frame.StrokeColor = colorutil.Frame
	frame.StrokeWidth = 3
	frame.CornerRadius = 10

	content := container.NewVBox(
		container.NewCenter(container.NewStack(frame, container.NewPadded(mw.canvas))),
		mw.controls,
		mw.message,
	)
	mw.SetContent(container.NewPadded(content))
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Upload Image...", mw.onUpload),
		fyne.NewMenuItem("Save Image...", mw.onSave),
		fyne.NewMenuItem("New Image", mw.onNewImage),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*image.Layer); ok && layer.Path != "" {
			mw.SetTitle(appTitle + " - " + filepath.Base(layer.Path))
		}
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventOverlayChanged, func(data interface{}) {
		mw.canvas.Refresh()
		mw.updateControls()
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		if mode, ok := data.(app.Mode); ok && mode == app.ModeEmpty {
			mw.SetTitle(appTitle)
		}
		mw.canvas.Refresh()
		mw.updateControls()
	})

	mw.state.On(app.EventStatus, func(data interface{}) {
		if text, ok := data.(string); ok {
			mw.message.Text = text
			mw.message.Refresh()
		}
	})
}

// updateControls lays out the buttons for the current mode.
func (mw *MainWindow) updateControls() {
	var objects []fyne.CanvasObject
	switch mw.state.Mode() {
	case app.ModeEmpty:
		objects = []fyne.CanvasObject{mw.uploadBtn}
		mw.controls.Layout = layout.NewGridLayoutWithColumns(1)
	case app.ModeEdit:
		for _, b := range mw.overlayBtns {
			if mw.state.CanAddOverlay() {
				b.Enable()
			} else {
				b.Disable()
			}
			objects = append(objects, b)
		}
		objects = append(objects, mw.newBtn, mw.saveBtn)
		mw.controls.Layout = layout.NewGridLayoutWithColumns(2)
	case app.ModeFinal:
		objects = []fyne.CanvasObject{mw.newBtn, mw.saveBtn}
		mw.controls.Layout = layout.NewGridLayoutWithColumns(2)
	}
	mw.controls.Objects = objects
	mw.controls.Refresh()
}

// lastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) lastDir() fyne.ListableURI {
	dir := mw.prefs.LastDir()
	if dir == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return listable
}

// RestoreLastImage reopens the base image from the previous session.
func (mw *MainWindow) RestoreLastImage() {
	path := mw.prefs.String(prefs.KeyLastImage)
	if path == "" {
		return
	}
	if err := mw.state.LoadImage(path); err != nil {
		log.Printf("Failed to restore last image %s: %v", path, err)
	}
}

// OpenImage loads path as the base image and remembers it.
func (mw *MainWindow) OpenImage(path string) error {
	if err := mw.state.LoadImage(path); err != nil {
		return err
	}
	mw.prefs.RememberFile(path)
	mw.prefs.SetString(prefs.KeyLastImage, path)
	return nil
}

// SavePreferences writes preferences if they changed.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// Action handlers

func (mw *MainWindow) onUpload() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if err := mw.OpenImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(image.SupportedFormats()))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAddOverlay(kind string) {
	if err := mw.state.AddOverlay(kind); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onNewImage() {
	mw.state.NewImage()
	mw.prefs.SetString(prefs.KeyLastImage, "")
}

// onSave freezes the composition, so the watermark is visible while the
// user picks a destination, then writes the PNG.
func (mw *MainWindow) onSave() {
	if err := mw.state.Finalize(); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := mw.state.Export(writer); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save image: %w", err), mw.Window)
			return
		}
		path := writer.URI().Path()
		mw.prefs.SetString(prefs.KeyLastExport, path)
		log.Printf("Saved %s", path)
	}, mw.Window)
	fd.SetFileName(mw.state.Config().ExportName)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Put eyes on any picture and save it as PNG.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

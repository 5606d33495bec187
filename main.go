// Package main provides the entry point for the Eyes Editor application.
package main

import (
	"log"
	"os"

	"eyes-editor/internal/app"
	"eyes-editor/internal/assets"
	"eyes-editor/internal/version"
	"eyes-editor/ui/mainwindow"
	"eyes-editor/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/jonboulle/clockwork"
)

const appID = "io.eyeseditor.app"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Eyes Editor %s", version.String())

	configDir := app.ConfigDir()
	cfg, err := app.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	catalog, err := assets.Load(cfg.AssetDir)
	if err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.EyesTheme{})

	appState := app.NewState(cfg, catalog)
	if fyne.CurrentDevice().IsMobile() {
		appState.SetHandleSize(cfg.TouchHandleSize)
	}

	appPrefs := prefs.Load(configDir)

	win := mainwindow.New(fyneApp, appState, appPrefs)

	if len(os.Args) > 1 {
		if err := win.OpenImage(os.Args[1]); err != nil {
			log.Printf("Failed to load image %s: %v", os.Args[1], err)
		}
	} else {
		win.RestoreLastImage()
	}

	if watcher := setupAssetWatch(cfg, appState); watcher != nil {
		defer watcher.Close()
	}

	win.SetOnClosed(win.SavePreferences)
	win.Resize(fyne.NewSize(600, 720))
	win.ShowAndRun()
}

// setupAssetWatch reloads overlay art when files in the asset directory change.
func setupAssetWatch(cfg app.Config, state *app.State) *app.AssetWatcher {
	if !cfg.WatchAssets || cfg.AssetDir == "" {
		return nil
	}
	watcher, err := app.NewAssetWatcher(cfg.AssetDir, app.DefaultAssetDebounce, clockwork.NewRealClock())
	if err != nil {
		log.Printf("Asset watch: %v", err)
		return nil
	}
	log.Printf("Asset watch: watching %s", cfg.AssetDir)

	watcher.OnChange(func(files []string) {
		log.Printf("Asset watch: %v changed", files)
		state.ReloadAssets(files)
	})
	watcher.OnError(func(err error) {
		log.Printf("Asset watch: %v", err)
	})
	watcher.Start()
	return watcher
}

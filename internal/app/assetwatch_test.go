package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetWatcher_Accept(t *testing.T) {
	dir := t.TempDir()
	w, err := NewAssetWatcher(dir, DefaultAssetDebounce, clockwork.NewFakeClock())
	require.NoError(t, err)
	defer w.Close()

	sprite := filepath.Join(dir, "overlays", "new-eyes.svg")
	tests := []struct {
		name   string
		event  fsnotify.Event
		want   string
		wantOK bool
	}{
		{"write", fsnotify.Event{Name: sprite, Op: fsnotify.Write}, "overlays/new-eyes.svg", true},
		{"create", fsnotify.Event{Name: sprite, Op: fsnotify.Create}, "overlays/new-eyes.svg", true},
		{"remove", fsnotify.Event{Name: sprite, Op: fsnotify.Remove}, "overlays/new-eyes.svg", true},
		{"chmod ignored", fsnotify.Event{Name: filepath.Join(dir, "watermark.svg"), Op: fsnotify.Chmod}, "", false},
		{"catalog is read once", fsnotify.Event{Name: filepath.Join(dir, "catalog.yaml"), Op: fsnotify.Write}, "", false},
		{"editor swap file", fsnotify.Event{Name: filepath.Join(dir, ".watermark.svg.swp"), Op: fsnotify.Write}, "", false},
		{"outside dir", fsnotify.Event{Name: "/elsewhere/a.svg", Op: fsnotify.Write}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := w.accept(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssetWatcher_ReportsAfterLastEvent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	w, err := NewAssetWatcher(t.TempDir(), DefaultAssetDebounce, clock)
	require.NoError(t, err)
	defer w.Close()

	changed := make(chan []string, 8)
	w.OnChange(func(files []string) { changed <- files })

	// Truncate, then write: one report, after the write has settled.
	w.schedule("overlays/new-eyes.svg")
	clock.Advance(60 * time.Millisecond)
	w.schedule("overlays/new-eyes.svg")
	clock.Advance(60 * time.Millisecond)
	assertNoChange(t, changed)

	clock.Advance(40 * time.Millisecond)
	select {
	case files := <-changed:
		assert.Equal(t, []string{"overlays/new-eyes.svg"}, files)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	assertNoChange(t, changed)

	// Files debounce independently.
	w.schedule("watermark.svg")
	w.schedule("overlays/original-eyes.svg")
	clock.Advance(DefaultAssetDebounce)
	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case files := <-changed:
			got[files[0]] = true
		case <-time.After(5 * time.Second):
			t.Fatal("missing change report")
		}
	}
	assert.Equal(t, map[string]bool{"watermark.svg": true, "overlays/original-eyes.svg": true}, got)
}

func TestAssetWatcher_CloseCancelsPending(t *testing.T) {
	clock := clockwork.NewFakeClock()
	w, err := NewAssetWatcher(t.TempDir(), DefaultAssetDebounce, clock)
	require.NoError(t, err)

	changed := make(chan []string, 1)
	w.OnChange(func(files []string) { changed <- files })

	w.schedule("watermark.svg")
	require.NoError(t, w.Close())
	w.schedule("overlays/new-eyes.svg")
	clock.Advance(time.Second)
	assertNoChange(t, changed)
}

func assertNoChange(t *testing.T, changed <-chan []string) {
	t.Helper()
	select {
	case files := <-changed:
		t.Fatalf("unexpected change report %v", files)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAssetWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewAssetWatcher(dir, DefaultAssetDebounce, clockwork.NewRealClock())
	require.NoError(t, err)
	defer w.Close()

	changed := make(chan []string, 8)
	w.OnChange(func(files []string) { changed <- files })
	w.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "watermark.svg"), []byte("<svg/>"), 0644))

	select {
	case files := <-changed:
		assert.Equal(t, []string{"watermark.svg"}, files)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

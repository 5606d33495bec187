package app

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
)

// DefaultAssetDebounce is how long a file must stay quiet before it is
// reported; editors emit a burst of events on save.
const DefaultAssetDebounce = 100 * time.Millisecond

// AssetWatcher watches an asset override directory and reports changed
// files, relative to the directory, through a callback.
type AssetWatcher struct {
	dir      string
	clock    clockwork.Clock
	debounce time.Duration

	watcher  *fsnotify.Watcher
	closeCh  chan struct{}
	once     sync.Once
	onChange func(files []string) // Called from a timer goroutine
	onError  func(err error)

	mu      sync.Mutex
	closed  bool
	pending map[string]clockwork.Timer
}

// NewAssetWatcher creates a watcher for dir and its overlays subdirectory.
func NewAssetWatcher(dir string, debounce time.Duration, clock clockwork.Clock) (*AssetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	// The subdirectory is optional.
	_ = w.Add(filepath.Join(dir, "overlays"))

	return &AssetWatcher{
		dir:      dir,
		clock:    clock,
		debounce: debounce,
		watcher:  w,
		closeCh:  make(chan struct{}),
		pending:  make(map[string]clockwork.Timer),
	}, nil
}

// OnChange sets the callback invoked with the changed files. The callback
// runs on a timer goroutine; marshal UI updates accordingly.
func (a *AssetWatcher) OnChange(callback func(files []string)) {
	a.onChange = callback
}

// OnError sets the callback invoked for watcher errors.
func (a *AssetWatcher) OnError(callback func(err error)) {
	a.onError = callback
}

// Start begins watching in a background goroutine.
func (a *AssetWatcher) Start() {
	go a.run()
}

// Close stops the watcher.
func (a *AssetWatcher) Close() error {
	var err error
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		for rel, t := range a.pending {
			t.Stop()
			delete(a.pending, rel)
		}
		a.mu.Unlock()

		close(a.closeCh)
		err = a.watcher.Close()
	})
	return err
}

func (a *AssetWatcher) run() {
	for {
		select {
		case event, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			if name, ok := a.accept(event); ok {
				a.schedule(name)
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			if a.onError != nil {
				a.onError(err)
			}
		case <-a.closeCh:
			return
		}
	}
}

// accept filters an event down to a catalog-relative path, dropping
// irrelevant operations and unknown file types.
func (a *AssetWatcher) accept(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return "", false
	}
	if !isAssetFile(event.Name) {
		return "", false
	}
	rel, err := filepath.Rel(a.dir, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// schedule reports rel once it has been quiet for the debounce period. Each
// new event for the same file restarts the wait, so a truncate-then-write
// save is reported after its final write.
func (a *AssetWatcher) schedule(rel string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if t, ok := a.pending[rel]; ok {
		t.Reset(a.debounce)
		return
	}
	a.pending[rel] = a.clock.AfterFunc(a.debounce, func() { a.fire(rel) })
}

func (a *AssetWatcher) fire(rel string) {
	a.mu.Lock()
	delete(a.pending, rel)
	closed, callback := a.closed, a.onChange
	a.mu.Unlock()

	if !closed && callback != nil {
		callback([]string{rel})
	}
}

func isAssetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg", ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}

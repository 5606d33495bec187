package assets

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path"
	"sync"

	imgpkg "eyes-editor/internal/image"

	"gopkg.in/yaml.v3"
)

// ErrUnknownAsset is returned when a key is not present in the catalog.
var ErrUnknownAsset = errors.New("unknown asset")

// Entry describes one graphic in the catalog.
type Entry struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	File  string `yaml:"file"`
	Width int    `yaml:"width"` // Raster width for SVG sources
}

type catalogFile struct {
	Overlays  []Entry `yaml:"overlays"`
	Watermark Entry   `yaml:"watermark"`
}

// Catalog resolves catalog entries to decoded images. Files in the override
// directory take precedence over the embedded copies; decoded images are
// cached until invalidated.
type Catalog struct {
	overlays  []Entry
	watermark Entry
	dir       string

	mu    sync.Mutex
	cache map[string]image.Image
}

// Load reads the catalog. overrideDir may be empty. A catalog.yaml in the
// override directory replaces the embedded one.
func Load(overrideDir string) (*Catalog, error) {
	c := &Catalog{dir: overrideDir, cache: make(map[string]image.Image)}
	data, err := c.readFile(CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(cf.Overlays) == 0 {
		return nil, fmt.Errorf("catalog lists no overlays")
	}
	seen := make(map[string]bool)
	for _, e := range cf.Overlays {
		if e.Key == "" || e.File == "" {
			return nil, fmt.Errorf("catalog overlay missing key or file: %+v", e)
		}
		if seen[e.Key] {
			return nil, fmt.Errorf("duplicate overlay key %q", e.Key)
		}
		seen[e.Key] = true
	}
	c.overlays = cf.Overlays
	c.watermark = cf.Watermark
	return c, nil
}

// Dir returns the override directory ("" when none).
func (c *Catalog) Dir() string {
	return c.dir
}

// Entries returns the overlay entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.overlays))
	copy(out, c.overlays)
	return out
}

// Kinds returns the overlay keys in catalog order.
func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.overlays))
	for _, e := range c.overlays {
		kinds = append(kinds, e.Key)
	}
	return kinds
}

// Entry returns the overlay entry for key.
func (c *Catalog) Entry(key string) (Entry, bool) {
	for _, e := range c.overlays {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Overlay returns the decoded sprite for key.
func (c *Catalog) Overlay(key string) (image.Image, error) {
	e, ok := c.Entry(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, key)
	}
	return c.image(e)
}

// Watermark returns the decoded watermark, or nil if the catalog has none.
func (c *Catalog) Watermark() (image.Image, error) {
	if c.watermark.File == "" {
		return nil, nil
	}
	return c.image(c.watermark)
}

// Invalidate drops the cached image for the given catalog-relative file.
// It reports whether anything was dropped.
func (c *Catalog) Invalidate(file string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cache[file]; !ok {
		return false
	}
	delete(c.cache, file)
	return true
}

func (c *Catalog) image(e Entry) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.cache[e.File]; ok {
		return img, nil
	}
	data, err := c.readFile(e.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", e.File, err)
	}
	width := e.Width
	if width <= 0 {
		width = imgpkg.DefaultSVGWidth
	}
	layer, err := imgpkg.DecodeBytes(data, e.File, width)
	if err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", e.File, err)
	}
	c.cache[e.File] = layer.Image
	return layer.Image, nil
}

func (c *Catalog) readFile(name string) ([]byte, error) {
	if c.dir != "" {
		data, err := fs.ReadFile(os.DirFS(c.dir), name)
		if err == nil {
			log.Printf("Using override asset %s", path.Join(c.dir, name))
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return fs.ReadFile(embedded, path.Join("data", name))
}

// Package tilecache stores sliced terrain tiles on disk, keyed by a
// content hash of the source archive plus the slicing parameters. A
// cache entry is published atomically (written to a temp directory,
// then renamed), so a concurrent reader never observes a partial
// entry. Clearing the cache is always safe; it only forces
// re-derivation.
package tilecache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/hexforge/victory/pkg/tiles"
)

// ErrNoEntry reports a cache miss.
var ErrNoEntry = errors.New("no cache entry")

// Cache is a handle to one cache directory. Callers own its lifecycle;
// there is no process-wide instance.
type Cache struct {
	root string
}

// New returns a cache rooted at dir, creating it if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Cache{root: dir}, nil
}

// manifest records what an entry was derived from and where each tile
// blob lives inside the entry directory.
type manifest struct {
	Params  tiles.Params     `json:"params"`
	Width   int              `json:"tile_width"`
	Height  int              `json:"tile_height"`
	Tiles   map[uint8]string `json:"tiles"`
	Created time.Time        `json:"created"`
}

// Key derives the cache key: a hash over the raw archive bytes and the
// canonical encoding of the slicing parameters. Any change to either
// produces a different entry.
func Key(archive []byte, p tiles.Params) string {
	h := sha256.New()
	h.Write(archive)
	params, _ := json.Marshal(p)
	h.Write(params)
	return hex.EncodeToString(h.Sum(nil))[:32]
}

// Get loads a published entry. A missing or unreadable entry is a miss;
// the caller re-derives and Puts.
func (c *Cache) Get(key string) (map[uint8]tiles.Tile, error) {
	dir := filepath.Join(c.root, key)
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoEntry, key)
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoEntry, key, err)
	}

	out := make(map[uint8]tiles.Tile, len(m.Tiles))
	for id, name := range m.Tiles {
		pixels, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s tile %d: %v", ErrNoEntry, key, id, err)
		}
		if len(pixels) != m.Width*m.Height*4 {
			return nil, fmt.Errorf("%w: %s tile %d has %d bytes", ErrNoEntry, key, id, len(pixels))
		}
		out[id] = tiles.Tile{Terrain: id, Width: m.Width, Height: m.Height, Pixels: pixels}
	}
	return out, nil
}

// Put writes an entry under key and publishes it atomically. A
// concurrent Put of the same key is harmless: whichever rename lands
// first wins and the contents are identical by construction.
func (c *Cache) Put(key string, p tiles.Params, set map[uint8]tiles.Tile) error {
	tmp, err := os.MkdirTemp(c.root, "tmp-"+key+"-")
	if err != nil {
		return fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	m := manifest{
		Params:  p,
		Width:   p.ContentW(),
		Height:  p.ContentH(),
		Tiles:   make(map[uint8]string, len(set)),
		Created: time.Now().UTC(),
	}
	for id, tile := range set {
		name := fmt.Sprintf("tile-%02d.rgba", id)
		if err := os.WriteFile(filepath.Join(tmp, name), tile.Pixels, 0644); err != nil {
			return fmt.Errorf("writing tile %d: %w", id, err)
		}
		m.Tiles[id] = name
	}

	raw, err := json.Marshal(&m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "manifest.json"), raw, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	final := filepath.Join(c.root, key)
	if err := os.Rename(tmp, final); err != nil {
		if _, statErr := os.Stat(final); statErr == nil {
			return nil // another writer published first
		}
		return fmt.Errorf("publishing cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry. Safe at any time.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.root, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

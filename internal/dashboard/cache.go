package dashboard

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/KaramelBytes/examdash-cli/internal/clean"
	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/KaramelBytes/examdash-cli/internal/loader"
	"golang.org/x/sync/singleflight"
)

// Source is a loaded and cleaned dataset. It is shared by every session
// opened on the same path and must not be modified.
type Source struct {
	Path string
	// RawRows counts data rows before cleaning.
	RawRows  int
	Table    *dataset.Table
	Cleaning clean.Report
}

// Notes returns the recoverable conditions recorded while loading.
func (s *Source) Notes() []string { return s.Table.Notes }

// LoadFunc reads a table from a resolved path.
type LoadFunc func(path string) (*dataset.Table, error)

// Cache memoizes loaded sources by resolved file path for the lifetime of
// the process. Invalidation is explicit.
type Cache struct {
	load LoadFunc

	mu      sync.Mutex
	entries map[string]*Source
	// gen counts invalidations per key and epoch counts resets; a load only
	// stores its result if neither moved while it ran.
	gen   map[string]uint64
	epoch uint64
	group singleflight.Group
}

// NewCache returns a cache that reads files with loader.Load and opt.
func NewCache(opt loader.Options) *Cache {
	return NewCacheFunc(func(path string) (*dataset.Table, error) {
		return loader.Load(path, opt)
	})
}

// NewCacheFunc returns a cache backed by load.
func NewCacheFunc(load LoadFunc) *Cache {
	return &Cache{load: load, entries: map[string]*Source{}, gen: map[string]uint64{}}
}

// Resolve returns the absolute, symlink-free form of path.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &dataset.NotFoundError{Path: path, Err: err}
		}
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return resolved, nil
}

// Open returns the cleaned source for path, loading and cleaning it on first
// use. Concurrent callers for one path share a single load. Failed loads are
// not cached.
func (c *Cache) Open(path string) (*Source, error) {
	key, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if s, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		if s, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return s, nil
		}
		gen, epoch := c.gen[key], c.epoch
		c.mu.Unlock()

		raw, err := c.load(key)
		if err != nil {
			return nil, err
		}
		cleaned, rep := clean.Clean(raw)
		s := &Source{Path: key, RawRows: raw.Len(), Table: cleaned, Cleaning: rep}

		c.mu.Lock()
		if c.gen[key] == gen && c.epoch == epoch {
			c.entries[key] = s
		}
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Source), nil
}

// Invalidate drops the cached source for path, if any. A load in flight for
// path still returns to its callers but is not stored, and the next Open
// starts a fresh load.
func (c *Cache) Invalidate(path string) {
	key, err := Resolve(path)
	if err != nil {
		abs, aerr := filepath.Abs(path)
		if aerr != nil {
			return
		}
		key = abs
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.gen[key]++
	c.mu.Unlock()
	c.group.Forget(key)
}

// Reset empties the cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	for k := range c.entries {
		c.group.Forget(k)
	}
	c.entries = map[string]*Source{}
	c.epoch++
	c.mu.Unlock()
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

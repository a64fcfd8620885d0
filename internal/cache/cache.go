// Package cache memoizes the full load-and-enrich pipeline per input directory.
//
// The key is a fingerprint of the matched file set: paths, sizes, modification
// times and file contents. A hit streams the bytes through the hash but never
// parses them. Adding, removing or modifying a file changes the fingerprint and
// the stale entry for that directory is dropped.
package cache

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"fjacquet/ledger-csv/internal/fileutils"
	"fjacquet/ledger-csv/internal/ledger"
	"fjacquet/ledger-csv/internal/logging"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"
)

// Loader is the pipeline being memoized.
type Loader interface {
	Load(dir string) (*ledger.Ledger, error)
	Pattern() string
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64 `json:"hits" yaml:"hits"`
	Misses uint64 `json:"misses" yaml:"misses"`
}

// LoadCache is safe for concurrent use. Concurrent misses on the same
// fingerprint share a single load.
type LoadCache struct {
	loader Loader
	store  *ristretto.Cache[uint64, *ledger.Ledger]
	group  singleflight.Group
	logger logging.Logger

	mu      sync.Mutex
	current map[string]uint64 // directory -> live fingerprint

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a LoadCache holding at most maxEntries ledgers.
func New(loader Loader, maxEntries int, logger logging.Logger) (*LoadCache, error) {
	if maxEntries < 1 {
		maxEntries = 1
	}
	store, err := ristretto.NewCache(&ristretto.Config[uint64, *ledger.Ledger]{
		NumCounters:        int64(maxEntries) * 10,
		MaxCost:            int64(maxEntries),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize load cache: %w", err)
	}
	return &LoadCache{
		loader:  loader,
		store:   store,
		logger:  logging.OrDefault(logger),
		current: make(map[string]uint64),
	}, nil
}

// Fingerprint hashes the directory, the pattern and, for every matching file in
// lexical order, its path, size, mtime and content.
func Fingerprint(dir, pattern string) (uint64, error) {
	stats, err := fileutils.StatMatching(dir, pattern)
	if err != nil {
		return 0, err
	}

	d := xxhash.New()
	_, _ = d.WriteString(filepath.Clean(dir))
	_, _ = d.WriteString("\x00" + pattern + "\x00")
	var buf [16]byte
	for _, st := range stats {
		_, _ = d.WriteString(st.Path)
		binary.LittleEndian.PutUint64(buf[:8], uint64(st.Size))
		binary.LittleEndian.PutUint64(buf[8:], uint64(st.ModTime.UnixNano()))
		_, _ = d.Write(buf[:])
		if err := hashContent(d, st.Path); err != nil {
			return 0, err
		}
	}
	return d.Sum64(), nil
}

func hashContent(d *xxhash.Digest, path string) error {
	f, err := os.Open(path) // #nosec G304 -- path comes from the matched input directory
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(d, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// Get returns the ledger for dir, loading it only when the file set changed
// since the last call.
func (c *LoadCache) Get(dir string) (*ledger.Ledger, error) {
	dir = filepath.Clean(dir)
	key, err := Fingerprint(dir, c.loader.Pattern())
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s: %w", dir, err)
	}

	if l, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		c.logger.Debug("Load cache hit",
			logging.F(logging.FieldDirectory, dir),
			logging.F(logging.FieldCacheKey, key))
		return l, nil
	}

	v, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		if l, ok := c.store.Get(key); ok {
			c.hits.Add(1)
			return l, nil
		}
		c.misses.Add(1)
		c.logger.Debug("Load cache miss",
			logging.F(logging.FieldDirectory, dir),
			logging.F(logging.FieldCacheKey, key))

		l, err := c.loader.Load(dir)
		if err != nil {
			return nil, err
		}
		if !c.admit(key, l) {
			c.logger.Debug("Ledger not admitted to load cache",
				logging.F(logging.FieldDirectory, dir),
				logging.F(logging.FieldCacheKey, key))
			return l, nil
		}
		c.replace(dir, key)
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ledger.Ledger), nil
}

// admit stores l under key and reports whether ristretto kept it. The set
// buffer may drop the write and the admission policy may reject it.
func (c *LoadCache) admit(key uint64, l *ledger.Ledger) bool {
	if !c.store.Set(key, l, 1) {
		return false
	}
	c.store.Wait()
	_, ok := c.store.Get(key)
	return ok
}

// replace records key as the live fingerprint of dir and evicts the previous one.
func (c *LoadCache) replace(dir string, key uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.current[dir]; ok && old != key {
		c.store.Del(old)
		c.logger.Debug("Evicted stale ledger",
			logging.F(logging.FieldDirectory, dir),
			logging.F(logging.FieldCacheKey, old))
	}
	c.current[dir] = key
}

// Invalidate drops the cached ledger of dir.
func (c *LoadCache) Invalidate(dir string) {
	dir = filepath.Clean(dir)
	c.mu.Lock()
	defer c.mu.Unlock()
	if key, ok := c.current[dir]; ok {
		c.store.Del(key)
		delete(c.current, dir)
	}
}

// Stats returns hit and miss counters.
func (c *LoadCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Close releases the cache's background goroutines.
func (c *LoadCache) Close() {
	c.store.Close()
}

package api

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// cacheData is the on-disk layout of a cacher.
type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a thread-safe keyed view over a single gache file.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.RWMutex
}

func newCacher[K comparable, T any](path string, lifetime time.Duration) *cacher[K, T] {
	return &cacher[K, T]{
		internal: gache.New[*cacheData[K, T]](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Get retrieves a value from the cache associated with the specified key.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[key]; ok {
		return mo.Some(value)
	}

	return mo.None[T]()
}

// Set persists a key-value pair to the cache.
func (c *cacher[K, T]) Set(key K, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[key] = value
	return c.internal.Set(data)
}

// genreCache holds genre names, which practically never change, and counts, which do.
type genreCache struct {
	names  *cacher[int, string]
	counts *cacher[int, int]
}

func newGenreCache() *genreCache {
	dir := where.Genres()
	return &genreCache{
		names:  newCacher[int, string](filepath.Join(dir, "names.json"), 7*24*time.Hour),
		counts: newCacher[int, int](filepath.Join(dir, "counts.json"), time.Hour),
	}
}

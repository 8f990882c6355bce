package chooser

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DirectoryCache is the single source of truth about visited directories.
// Entries are created on first Ensure and never evicted.
type DirectoryCache struct {
	pool     *FetchPool
	logger   *zap.Logger
	metrics  *Metrics
	onChange func(path string)
	onError  func(path string, err error)

	mu       sync.RWMutex
	statuses map[string]*DirectoryStatus
}

type CacheOption func(c *DirectoryCache)

func CacheLogger(logger *zap.Logger) CacheOption {
	return func(c *DirectoryCache) {
		c.logger = logger
	}
}

func CacheMetrics(m *Metrics) CacheOption {
	return func(c *DirectoryCache) {
		c.metrics = m
	}
}

// OnCacheChange registers f to be called after a listing for path completed.
// It runs on the fetching goroutine.
func OnCacheChange(f func(path string)) CacheOption {
	return func(c *DirectoryCache) {
		c.onChange = f
	}
}

// OnCacheFetchError registers f to be called when a listing fails, before OnCacheChange.
func OnCacheFetchError(f func(path string, err error)) CacheOption {
	return func(c *DirectoryCache) {
		c.onError = f
	}
}

func NewDirectoryCache(pool *FetchPool, o ...CacheOption) *DirectoryCache {
	c := &DirectoryCache{
		pool:     pool,
		logger:   zap.NewNop(),
		statuses: make(map[string]*DirectoryStatus),
	}
	for _, opt := range o {
		opt(c)
	}
	return c
}

// Ensure starts listing path unless the cache already knows it.
// It reports whether a listing was started; there is at most one per path.
func (c *DirectoryCache) Ensure(path string) bool {
	c.mu.Lock()
	if _, ok := c.statuses[path]; ok {
		c.mu.Unlock()
		return false
	}
	c.statuses[path] = &DirectoryStatus{Path: path, Loading: true}
	cached := len(c.statuses)
	c.mu.Unlock()

	start := time.Now()
	c.metrics.fetchStarted(cached)
	c.logger.Debug("listing directory", zap.String("path", path))
	c.pool.Submit(FetchRequest{
		Dir: Directory{Identifier: path, Name: baseName(path)},
		Callback: func(dir Directory, entries []DirectoryEntry, err error) {
			c.metrics.fetchDone(start, err)
			c.complete(dir.Identifier, entries, err)
		},
	})
	return true
}

func (c *DirectoryCache) complete(path string, entries []DirectoryEntry, err error) {
	status := &DirectoryStatus{Path: path}
	if err != nil {
		status.Failed = true
		status.Err = err
	} else {
		status.Contents = entries
	}

	c.mu.Lock()
	c.statuses[path] = status
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("failed to list directory", zap.String("path", path), zap.Error(err))
		if c.onError != nil {
			c.onError(path, err)
		}
	} else {
		c.logger.Debug("directory listed", zap.String("path", path), zap.Int("entries", len(entries)))
	}
	if c.onChange != nil {
		c.onChange(path)
	}
}

// Get returns the latest known status of path. It never blocks on a listing.
func (c *DirectoryCache) Get(path string) (DirectoryStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	status, ok := c.statuses[path]
	if !ok {
		return DirectoryStatus{}, false
	}
	return *status, true
}

func (c *DirectoryCache) Has(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.statuses[path]
	return ok
}

func (c *DirectoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.statuses)
}

// Paths returns the known paths in lexical order.
func (c *DirectoryCache) Paths() []string {
	c.mu.RLock()
	paths := make([]string, 0, len(c.statuses))
	for p := range c.statuses {
		paths = append(paths, p)
	}
	c.mu.RUnlock()
	sort.Strings(paths)
	return paths
}

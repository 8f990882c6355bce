package chooser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryCache(t *testing.T) {
	t.Parallel()
	provider := newGatedProvider()
	pool := NewFetchPool(provider, 2, 0)
	t.Cleanup(pool.Close)

	changed := make(chan string, 8)
	cache := NewDirectoryCache(pool, OnCacheChange(func(path string) {
		changed <- path
	}))

	_, ok := cache.Get("/")
	assert.False(t, ok, "unknown path")
	assert.False(t, cache.Has("/"))

	assert.True(t, cache.Ensure("/b"))
	assert.True(t, cache.Ensure("/a"))
	assert.False(t, cache.Ensure("/a"), "second ensure is a no-op")
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, []string{"/a", "/b"}, cache.Paths())

	status, ok := cache.Get("/a")
	require.True(t, ok)
	assert.Equal(t, DirectoryStatus{Path: "/a", Loading: true}, status)

	provider.resolve("/a", fileEntry("/a/1"))
	assert.Equal(t, "/a", <-changed)
	status, _ = cache.Get("/a")
	assert.Equal(t, DirectoryStatus{Path: "/a", Contents: []DirectoryEntry{fileEntry("/a/1")}}, status)

	assert.False(t, cache.Ensure("/a"), "resolved path is not listed again")
	assert.Equal(t, 1, provider.callCount("/a"))
}

func TestBaseName(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		path     string
		expected string
	}{
		{"/", "/"},
		{"/a", "a"},
		{"/a/b/", "b"},
		{"docs", "docs"},
		{"C:", "C:"},
	} {
		assert.Equal(t, tt.expected, baseName(tt.path), tt.path)
	}
}

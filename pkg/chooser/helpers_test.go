package chooser

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

type listing struct {
	entries []DirectoryEntry
	err     error
}

// gatedProvider blocks every listing until the test resolves or fails its path.
type gatedProvider struct {
	mu    sync.Mutex
	calls map[string]int
	gates map[string]chan listing
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{
		calls: make(map[string]int),
		gates: make(map[string]chan listing),
	}
}

func (p *gatedProvider) gate(path string) chan listing {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.gates[path]
	if !ok {
		ch = make(chan listing, 1)
		p.gates[path] = ch
	}
	return ch
}

func (p *gatedProvider) ListChildren(ctx context.Context, dir Directory) ([]DirectoryEntry, error) {
	p.mu.Lock()
	p.calls[dir.Identifier]++
	p.mu.Unlock()
	select {
	case l := <-p.gate(dir.Identifier):
		return l.entries, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *gatedProvider) resolve(path string, entries ...DirectoryEntry) {
	p.gate(path) <- listing{entries: entries}
}

func (p *gatedProvider) fail(path string, err error) {
	p.gate(path) <- listing{err: err}
}

func (p *gatedProvider) callCount(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[path]
}

func dirEntry(path string) DirectoryEntry {
	return DirectoryEntry{Identifier: path, Name: baseName(path), Type: EntryTypeDirectory}
}

func fileEntry(path string) DirectoryEntry {
	return DirectoryEntry{Identifier: path, Name: baseName(path), Type: EntryTypeFile}
}

func panelPaths(c *Controller) []string {
	panels := c.Panels()
	paths := make([]string, len(panels))
	for i, p := range panels {
		paths[i] = p.Path
	}
	return paths
}

func waitLoaded(t *testing.T, c *Controller, path string) DirectoryStatus {
	t.Helper()
	assert.Eventually(t, func() bool {
		status, ok := c.Status(path)
		return ok && !status.Loading
	}, waitFor, tick, "%s was not loaded", path)
	status, _ := c.Status(path)
	return status
}

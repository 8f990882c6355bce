package filechooser

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/datatug/filechooser/pkg/chooser"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

// fakeApp queues updates until the test flushes them on its own goroutine.
type fakeApp struct {
	mu      sync.Mutex
	queued  []func()
	focused tview.Primitive
}

func (a *fakeApp) QueueUpdateDraw(f func()) {
	a.mu.Lock()
	a.queued = append(a.queued, f)
	a.mu.Unlock()
}

func (a *fakeApp) SetFocus(p tview.Primitive) {
	a.focused = p
}

func (a *fakeApp) Stop() {}

func (a *fakeApp) pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queued)
}

func (a *fakeApp) flush() int {
	a.mu.Lock()
	queued := a.queued
	a.queued = nil
	a.mu.Unlock()
	for _, f := range queued {
		f()
	}
	return len(queued)
}

type testProvider struct {
	mu      sync.Mutex
	entries map[string][]chooser.DirectoryEntry
	errs    map[string]error
	hold    chan struct{}
	calls   map[string]int
}

func newTestProvider() *testProvider {
	return &testProvider{
		entries: make(map[string][]chooser.DirectoryEntry),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (p *testProvider) ListChildren(ctx context.Context, dir chooser.Directory) ([]chooser.DirectoryEntry, error) {
	p.mu.Lock()
	p.calls[dir.Identifier]++
	hold := p.hold
	p.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.errs[dir.Identifier]; err != nil {
		return nil, err
	}
	return p.entries[dir.Identifier], nil
}

func (p *testProvider) callCount(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[path]
}

func dirEntry(path, name string) chooser.DirectoryEntry {
	return chooser.DirectoryEntry{Identifier: path, Name: name, Type: chooser.EntryTypeDirectory}
}

func fileEntry(path, name string) chooser.DirectoryEntry {
	return chooser.DirectoryEntry{Identifier: path, Name: name, Type: chooser.EntryTypeFile}
}

type selection struct {
	path string
	ok   bool
}

type testView struct {
	*View
	app      *fakeApp
	provider *testProvider
	selected []selection
}

func newTestView(t *testing.T, provider *testProvider, o ...Option) *testView {
	t.Helper()
	tv := &testView{app: &fakeApp{}, provider: provider}
	tv.View = New(tv.app, provider, func(path string, ok bool) {
		tv.selected = append(tv.selected, selection{path: path, ok: ok})
	}, o...)
	t.Cleanup(tv.Close)
	return tv
}

// settle waits until the top panel shows a finished listing of path.
func (tv *testView) settle(t *testing.T, path string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		tv.app.flush()
		return tv.rows != nil && tv.rows.Path() == path && !tv.rows.panel.Status.Loading
	}, waitFor, tick)
}

func (tv *testView) press(key tcell.Key, r rune) {
	tv.table.InputHandler()(tcell.NewEventKey(key, r, tcell.ModNone), func(tview.Primitive) {})
}

func (tv *testView) cellText(row int) string {
	cell := tv.table.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	return cell.Text
}

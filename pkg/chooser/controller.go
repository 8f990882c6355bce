package chooser

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RootPath is the path Open uses when given an empty one.
const RootPath = "/"

// State of a Controller.
type State int

const (
	// StateUninitialized means Open was not called yet and the stack is empty.
	StateUninitialized State = iota
	// StateReady means the stack holds at least the root panel.
	StateReady
	// StateDone means a path was selected or the chooser was cancelled.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// SelectFunc receives the chosen path, or ok=false when the chooser was cancelled.
type SelectFunc func(path string, ok bool)

// Controller owns the directory cache and the navigation stack of one chooser.
// All methods are safe for concurrent use.
type Controller struct {
	cache         *DirectoryCache
	pool          *FetchPool
	logger        *zap.Logger
	onSelect      SelectFunc
	reopenVisited bool

	mu    sync.Mutex
	state State
	stack []PanelEntry
}

type controllerOptions struct {
	logger        *zap.Logger
	metrics       *Metrics
	workers       int
	fetchTimeout  time.Duration
	reopenVisited bool
	onChange      func(path string)
	onFetchError  func(path string, err error)
}

type Option func(o *controllerOptions)

func WithLogger(logger *zap.Logger) Option {
	return func(o *controllerOptions) {
		o.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(o *controllerOptions) {
		o.metrics = m
	}
}

// WithFetchWorkers limits how many directories are listed at the same time.
// By default every listing starts at once. A bound without WithFetchTimeout gets
// a default timeout so a hung listing cannot hold a slot forever.
func WithFetchWorkers(n int) Option {
	return func(o *controllerOptions) {
		o.workers = n
	}
}

// WithFetchTimeout fails listings that take longer than d. Zero means no limit
// unless WithFetchWorkers bounds the pool.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *controllerOptions) {
		o.fetchTimeout = d
	}
}

// WithReopenVisited lets EnterDirectory push a panel again for a directory that was
// visited and closed before. Its cached contents are reused; nothing is refetched.
func WithReopenVisited(reopen bool) Option {
	return func(o *controllerOptions) {
		o.reopenVisited = reopen
	}
}

// WithOnChange registers f to be called, from a fetching goroutine, whenever the
// status of path changed. Hosts re-read the controller from there.
func WithOnChange(f func(path string)) Option {
	return func(o *controllerOptions) {
		o.onChange = f
	}
}

// WithOnFetchError registers f to be called when listing path failed.
func WithOnFetchError(f func(path string, err error)) Option {
	return func(o *controllerOptions) {
		o.onFetchError = f
	}
}

// New creates a controller in StateUninitialized.
func New(provider Provider, onSelect SelectFunc, o ...Option) *Controller {
	var opts controllerOptions
	for _, opt := range o {
		opt(&opts)
	}
	if opts.logger == nil {
		opts.logger = zap.NewNop()
	}
	pool := NewFetchPool(provider, opts.workers, opts.fetchTimeout)
	c := &Controller{
		pool:          pool,
		logger:        opts.logger,
		onSelect:      onSelect,
		reopenVisited: opts.reopenVisited,
	}
	c.cache = NewDirectoryCache(pool,
		CacheLogger(opts.logger),
		CacheMetrics(opts.metrics),
		OnCacheFetchError(opts.onFetchError),
		OnCacheChange(opts.onChange),
	)
	return c
}

// Open shows the root panel and starts listing rootPath.
// Only the first call has an effect.
func (c *Controller) Open(rootPath string) {
	if rootPath == "" {
		rootPath = RootPath
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUninitialized {
		c.logger.Debug("open ignored", zap.String("path", rootPath), zap.Stringer("state", c.state))
		return
	}
	c.cache.Ensure(rootPath)
	c.stack = []PanelEntry{{Path: rootPath, Title: rootPath}}
	c.state = StateReady
	c.logger.Debug("chooser opened", zap.String("root", rootPath))
}

// EnterDirectory pushes a panel for path and starts listing it.
// It is a no-op for an empty path, before Open, after selection, and for a path
// the cache already knows (unless reopening visited directories is enabled, in which
// case a path that is not on the stack is pushed again without a new listing).
// It reports whether a panel was pushed.
func (c *Controller) EnterDirectory(path string) bool {
	if path == "" {
		c.logger.Debug("enter directory ignored: empty path")
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		c.logger.Debug("enter directory ignored", zap.String("path", path), zap.Stringer("state", c.state))
		return false
	}
	if c.cache.Has(path) {
		if !c.reopenVisited || c.onStack(path) {
			return false
		}
	} else {
		c.cache.Ensure(path)
	}
	c.stack = append(c.stack, PanelEntry{Path: path, Title: baseName(path)})
	return true
}

func (c *Controller) onStack(path string) bool {
	for _, p := range c.stack {
		if p.Path == path {
			return true
		}
	}
	return false
}

// CloseTop pops the topmost panel. The root panel is never removed.
// It reports whether a panel was removed.
func (c *Controller) CloseTop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady || len(c.stack) <= 1 {
		c.logger.Debug("close ignored", zap.Int("depth", len(c.stack)), zap.Stringer("state", c.state))
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	return true
}

// Activate handles a click on entry: directories are entered, files are selected.
func (c *Controller) Activate(entry DirectoryEntry) {
	switch entry.Type {
	case EntryTypeDirectory:
		c.EnterDirectory(entry.Identifier)
	case EntryTypeFile:
		c.Select(entry.Identifier)
	default:
		c.logger.Debug("activate ignored: unknown entry type", zap.String("type", string(entry.Type)))
	}
}

// Select reports path to the host and ends navigation.
func (c *Controller) Select(path string) {
	if path == "" {
		return
	}
	c.finish(path, true)
}

// Cancel reports that nothing was chosen and ends navigation.
func (c *Controller) Cancel() {
	c.finish("", false)
}

func (c *Controller) finish(path string, ok bool) {
	c.mu.Lock()
	if c.state == StateDone {
		c.mu.Unlock()
		return
	}
	c.state = StateDone
	c.mu.Unlock()

	c.logger.Info("chooser finished", zap.String("path", path), zap.Bool("selected", ok))
	if c.onSelect != nil {
		c.onSelect(path, ok)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Panels returns a copy of the navigation stack, root first.
func (c *Controller) Panels() []PanelEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	panels := make([]PanelEntry, len(c.stack))
	copy(panels, c.stack)
	return panels
}

// Top returns the focused panel.
func (c *Controller) Top() (PanelEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return PanelEntry{}, false
	}
	return c.stack[len(c.stack)-1], true
}

// Status reads the current status of path from the cache.
func (c *Controller) Status(path string) (DirectoryStatus, bool) {
	return c.cache.Get(path)
}

// View returns every panel with the status it should display now.
func (c *Controller) View() []PanelView {
	c.mu.Lock()
	defer c.mu.Unlock()
	views := make([]PanelView, len(c.stack))
	for i, p := range c.stack {
		status, _ := c.cache.Get(p.Path)
		views[i] = PanelView{PanelEntry: p, Status: status}
	}
	return views
}

func (c *Controller) Cache() *DirectoryCache {
	return c.cache
}

// Close cancels outstanding listings and waits for them.
// It must not be called from an OnChange or OnFetchError callback.
func (c *Controller) Close() {
	c.pool.Close()
}

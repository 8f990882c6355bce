package chooser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is reported for listings that could not run because the pool was closed.
var ErrClosed = errors.New("fetch pool is closed")

// boundedFetchTimeout applies to bounded pools when no timeout is given, so that
// hung listings free their slot for other paths.
const boundedFetchTimeout = 30 * time.Second

// FetchRequest asks the pool to list one directory.
type FetchRequest struct {
	Dir      Directory
	Callback func(dir Directory, entries []DirectoryEntry, err error)
}

// FetchPool runs provider listings, one goroutine each, optionally bounded.
// Submit never blocks and never drops a request: every request gets exactly one callback.
type FetchPool struct {
	provider Provider
	workers  int
	timeout  time.Duration
	sem      *semaphore.Weighted
	ctx      context.Context
	cancel   context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewFetchPool creates a pool. workers <= 0 means every listing starts at once;
// otherwise at most workers listings run at a time and a zero timeout becomes
// boundedFetchTimeout. A zero timeout on an unbounded pool lets a listing run until
// the pool is closed.
func NewFetchPool(provider Provider, workers int, timeout time.Duration) *FetchPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &FetchPool{
		provider: provider,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
	}
	if workers > 0 {
		p.workers = workers
		p.sem = semaphore.NewWeighted(int64(workers))
		if p.timeout <= 0 {
			p.timeout = boundedFetchTimeout
		}
	}
	return p
}

// Submit queues a request. It returns false if the pool is closed; the request is
// then called back with ErrClosed. Callbacks never run on the submitting goroutine.
func (p *FetchPool) Submit(req FetchRequest) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		// callers may hold locks the callback needs
		go p.callback(req, nil, ErrClosed)
		return false
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(req)
	return true
}

func (p *FetchPool) run(req FetchRequest) {
	defer p.wg.Done()

	if p.sem != nil {
		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			p.callback(req, nil, fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}
		defer p.sem.Release(1)
	}

	ctx := p.ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	entries, err := p.provider.ListChildren(ctx, req.Dir)
	p.callback(req, entries, err)
}

func (p *FetchPool) callback(req FetchRequest, entries []DirectoryEntry, err error) {
	if req.Callback != nil {
		req.Callback(req.Dir, entries, err)
	}
}

// Close cancels running listings and waits for their callbacks.
// It is idempotent.
func (p *FetchPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

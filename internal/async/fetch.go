package async

import (
	"context"
	"sync"
)

// Fetcher wraps a data-fetching function so that each new invocation
// cancels the previous one. Only the most recently issued request's
// results ever reach the consumer; superseded requests observe a
// cancelled context and are expected to treat it as a silent no-op.
type Fetcher[P any] struct {
	fn func(ctx context.Context, params P)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFetcher wraps fn. fn must honor context cancellation on its
// blocking calls.
func NewFetcher[P any](fn func(ctx context.Context, params P)) *Fetcher[P] {
	return &Fetcher[P]{fn: fn}
}

// Fetch cancels any in-flight invocation, then invokes the wrapped
// function with a fresh cancellable context derived from ctx. It
// returns a cancel function for this specific invocation.
func (f *Fetcher[P]) Fetch(ctx context.Context, params P) context.CancelFunc {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.fn(fetchCtx, params)
	}()

	return cancel
}

// Close aborts any outstanding invocation and waits for it to return.
// Call on view teardown.
func (f *Fetcher[P]) Close() {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mu.Unlock()
	f.wg.Wait()
}

// Package ctxgroup runs a small set of goroutines that share a context,
// cancelling the rest of the group as soon as one of them returns an error.
package ctxgroup

import (
	"context"
	"sync"
)

// Group runs functions that all observe the same cancellation signal.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	errOnce sync.Once
	err     error
}

// New returns a Group derived from ctx. Cancelling ctx, or any member
// returning a non-nil error, cancels every other member.
func New(ctx context.Context) *Group {
	ctx, cancel := context.WithCancel(ctx)
	return &Group{ctx: ctx, cancel: cancel}
}

// Go starts fn in its own goroutine.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		if err := fn(g.ctx); err != nil {
			g.errOnce.Do(func() {
				g.mu.Lock()
				g.err = err
				g.mu.Unlock()
				g.cancel()
			})
		}
	}()
}

// Wait blocks until every member has returned, then returns the first
// non-nil error reported by any of them, if any.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

package reader

import (
	"context"
	"sync"
)

// Result is the single-resolution completion of one Load.
type Result struct {
	id    string
	index int
	done  chan struct{}
	once  sync.Once

	render Render
	err    error
}

func newResult(id string, index int) *Result {
	return &Result{id: id, index: index, done: make(chan struct{})}
}

// ID identifies the load in trace logs.
func (r *Result) ID() string {
	return r.id
}

// Index is the feed index that was requested.
func (r *Result) Index() int {
	return r.index
}

// Done is closed once the load has settled.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err returns the settled error, or nil while pending.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the load settles or ctx ends.
func (r *Result) Wait(ctx context.Context) (Render, error) {
	select {
	case <-r.done:
		return r.render.clone(), r.err
	case <-ctx.Done():
		return Render{Index: -1}, ctx.Err()
	}
}

// settle records the outcome. Only the first call has any effect.
func (r *Result) settle(render Render, err error) bool {
	settled := false
	r.once.Do(func() {
		r.render = render
		r.err = err
		settled = true
		close(r.done)
	})
	return settled
}

package reader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/feed-reader/internal/feed"
	"github.com/atomicstack/feed-reader/internal/logging/events"
	"github.com/google/uuid"
)

var (
	ErrFeedNotFound = errors.New("feed not found")
	ErrFetchFailure = errors.New("feed fetch failed")
)

// Loader fetches a feed by registry index and replaces the rendered entries.
type Loader struct {
	root     *Root
	registry *feed.Registry
	fetcher  feed.Fetcher
	timeout  time.Duration
	now      func() time.Time

	mu       sync.Mutex
	issued   uint64
	inflight map[uint64]struct{}
}

// NewLoader builds a loader. timeout <= 0 disables the per-load deadline.
func NewLoader(root *Root, registry *feed.Registry, fetcher feed.Fetcher, timeout time.Duration) *Loader {
	return &Loader{
		root:     root,
		registry: registry,
		fetcher:  fetcher,
		timeout:  timeout,
		now:      time.Now,
		inflight: map[uint64]struct{}{},
	}
}

// Registry exposes the feeds the loader resolves indexes against.
func (l *Loader) Registry() *feed.Registry {
	return l.registry
}

// Load starts an asynchronous load of the feed at index. An invalid index
// fails immediately with ErrFeedNotFound and leaves the root untouched.
func (l *Loader) Load(ctx context.Context, index int) (*Result, error) {
	return l.start(ctx, index, nil)
}

// Refresh re-loads the feed shown by base. A refresh never displaces a Load:
// it settles as Superseded when the root moved past base or when a Load
// issued after base is still running.
func (l *Loader) Refresh(ctx context.Context, base Render) (*Result, error) {
	return l.start(ctx, base.Index, &base)
}

// Pending reports how many Loads are still running. Refreshes are not
// counted.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inflight)
}

func (l *Loader) start(ctx context.Context, index int, base *Render) (*Result, error) {
	desc, err := l.registry.Get(index)
	if err != nil {
		events.Feed.NotFound(index)
		return nil, fmt.Errorf("%w: %w", ErrFeedNotFound, err)
	}
	l.mu.Lock()
	l.issued++
	generation := l.issued
	if base == nil {
		l.inflight[generation] = struct{}{}
	}
	l.mu.Unlock()

	res := newResult(uuid.NewString(), index)
	events.Feed.Start(res.id, index, desc.Name, desc.URL)
	go l.run(ctx, generation, base, desc, res)
	return res, nil
}

// loadRunningSince reports whether a Load issued after generation is still
// running.
func (l *Loader) loadRunningSince(generation uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for g := range l.inflight {
		if g > generation {
			return true
		}
	}
	return false
}

func (l *Loader) finish(generation uint64) {
	l.mu.Lock()
	delete(l.inflight, generation)
	l.mu.Unlock()
}

// LoadFunc is Load with a completion callback. onComplete runs exactly once
// after the load settles, and never when LoadFunc itself returns an error.
func (l *Loader) LoadFunc(ctx context.Context, index int, onComplete func(error)) error {
	res, err := l.Load(ctx, index)
	if err != nil {
		return err
	}
	go func() {
		<-res.Done()
		if onComplete != nil {
			onComplete(res.Err())
		}
	}()
	return nil
}

func (l *Loader) run(ctx context.Context, generation uint64, base *Render, desc feed.Descriptor, res *Result) {
	defer l.finish(generation)
	index := res.index
	fetchCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	entries, err := l.fetcher.Fetch(fetchCtx, desc.URL)
	if err == nil && len(entries) == 0 {
		err = feed.ErrNoEntries
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrFetchFailure, desc.Name, err)
		events.Feed.Failed(res.id, index, err)
		res.settle(Render{Index: -1}, err)
		return
	}
	render := Render{
		Index:      index,
		Name:       desc.Name,
		URL:        desc.URL,
		Entries:    entries,
		LoadedAt:   l.now(),
		Generation: generation,
	}
	var committed bool
	if base == nil {
		committed = l.root.commit(generation, render)
	} else {
		committed = l.root.commitRefresh(base.Generation, generation, render, func() bool {
			return !l.loadRunningSince(base.Generation)
		})
	}
	if !committed {
		current := l.root.Rendered()
		current.Superseded = true
		events.Feed.Superseded(res.id, index)
		res.settle(current, nil)
		return
	}
	events.Feed.Loaded(res.id, index, len(entries))
	res.settle(render.clone(), nil)
}

package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/feed-reader/internal/logging/events"
	"github.com/atomicstack/feed-reader/internal/reader"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindRefresh Kind = iota
)

// Event conveys a refreshed render or an error from a backend poll.
type Event struct {
	Kind   Kind
	Render reader.Render
	Err    error
}

// Watcher re-loads the currently rendered feed at a fixed interval and
// publishes the outcome. Ticks are skipped while a user load is running.
type Watcher struct {
	root     *reader.Root
	loader   *reader.Loader
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that refreshes every interval.
func NewWatcher(root *reader.Root, loader *reader.Loader, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		root:     root,
		loader:   loader,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startRefreshPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current load settles;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startRefreshPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindRefresh, func(ctx context.Context) (reader.Render, bool, error) {
		current := w.root.Rendered()
		if current.Empty() {
			return current, false, nil
		}
		if pending := w.loader.Pending(); pending > 0 {
			events.Refresh.Skip(pending)
			return current, false, nil
		}
		if err := throttle.wait(ctx); err != nil {
			return current, false, nil
		}
		events.Refresh.Tick(current.Index)
		res, err := w.loader.Refresh(ctx, current)
		if err != nil {
			return reader.Render{Index: -1}, true, err
		}
		render, err := res.Wait(ctx)
		return render, true, err
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (reader.Render, bool, error)) {
	defer w.wg.Done()
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			render, ok, err := fetch(w.ctx)
			if !ok {
				continue
			}
			events.Refresh.Error(err)
			select {
			case <-w.ctx.Done():
				return
			case w.events <- Event{Kind: kind, Render: render, Err: err}:
			}
		}
	}
}

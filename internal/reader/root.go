package reader

import (
	"sort"
	"sync"
	"time"

	"github.com/atomicstack/feed-reader/internal/feed"
)

// MenuHiddenClass is present on the root while the menu is hidden.
const MenuHiddenClass = "menu-hidden"

// Render is the entry list currently shown, with the feed it came from.
type Render struct {
	Index    int
	Name     string
	URL      string
	Entries  []feed.Entry
	LoadedAt time.Time
	// Generation is the load generation that committed this render.
	Generation uint64
	// Superseded is set on a Result whose commit lost to a newer load.
	Superseded bool
}

// Snapshot captures the visible text of the rendered entries.
func (r Render) Snapshot() feed.Snapshot {
	return feed.TakeSnapshot(r.Entries)
}

// Empty reports whether nothing has been rendered yet.
func (r Render) Empty() bool {
	return r.Index < 0
}

func (r Render) clone() Render {
	r.Entries = feed.CloneEntries(r.Entries)
	return r
}

// Root is the shared UI context.
type Root struct {
	mu         sync.RWMutex
	classes    map[string]struct{}
	rendered   Render
	generation uint64
}

// NewRoot returns a root with the menu hidden and nothing rendered.
func NewRoot() *Root {
	return &Root{
		classes:  map[string]struct{}{MenuHiddenClass: {}},
		rendered: Render{Index: -1},
	}
}

// Rendered returns a copy of the current render.
func (r *Root) Rendered() Render {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rendered.clone()
}

// Entries returns a copy of the rendered entries.
func (r *Root) Entries() []feed.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return feed.CloneEntries(r.rendered.Entries)
}

// HasClass reports whether the marker class is present.
func (r *Root) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// Classes lists the marker classes in sorted order.
func (r *Root) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for name := range r.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// toggleClass flips the class and reports whether it is now present.
func (r *Root) toggleClass(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[name]; ok {
		delete(r.classes, name)
		return false
	}
	r.classes[name] = struct{}{}
	return true
}

// commit replaces the render wholesale unless a newer generation already
// committed.
func (r *Root) commit(generation uint64, render Render) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if generation < r.generation {
		return false
	}
	r.store(generation, render)
	return true
}

// commitRefresh commits a refresh of the render at base. It loses when
// anything committed since base or when allow reports a competing load.
func (r *Root) commitRefresh(base, generation uint64, render Render, allow func() bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != base || generation < r.generation || !allow() {
		return false
	}
	r.store(generation, render)
	return true
}

func (r *Root) store(generation uint64, render Render) {
	r.generation = generation
	render.Generation = generation
	render.Superseded = false
	r.rendered = render.clone()
}

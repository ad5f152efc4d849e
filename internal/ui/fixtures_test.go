package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/feed-reader/internal/feed"
	"github.com/atomicstack/feed-reader/internal/reader"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	alphaURL = "http://feeds.test/alpha"
	betaURL  = "http://feeds.test/beta"
	gammaURL = "http://feeds.test/gamma"
)

type stubFetcher struct {
	mu    sync.Mutex
	feeds map[string][]feed.Entry
	errs  map[string]error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) ([]feed.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return feed.CloneEntries(f.feeds[url]), nil
}

func (f *stubFetcher) set(url string, entries []feed.Entry) {
	f.mu.Lock()
	f.feeds[url] = entries
	f.mu.Unlock()
}

func (f *stubFetcher) fail(url string, err error) {
	f.mu.Lock()
	f.errs[url] = err
	f.mu.Unlock()
}

type fixture struct {
	model   *Model
	harness *Harness
	root    *reader.Root
	loader  *reader.Loader
	fetcher *stubFetcher
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	registry, err := feed.NewRegistry([]feed.Descriptor{
		{Name: "Alpha", URL: alphaURL},
		{Name: "Beta", URL: betaURL},
		{Name: "Gamma", URL: gammaURL},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	fetcher := &stubFetcher{
		feeds: map[string][]feed.Entry{
			alphaURL: testEntries("alpha", 3),
			betaURL:  testEntries("beta", 3),
			gammaURL: testEntries("gamma", 12),
		},
		errs: map[string]error{},
	}
	root := reader.NewRoot()
	loader := reader.NewLoader(root, registry, fetcher, time.Second)
	model := NewModel(root, loader, opts)
	return &fixture{
		model:   model,
		harness: NewHarness(model),
		root:    root,
		loader:  loader,
		fetcher: fetcher,
	}
}

func testEntries(prefix string, n int) []feed.Entry {
	entries := make([]feed.Entry, n)
	for i := range entries {
		entries[i] = feed.Entry{
			Title:   fmt.Sprintf("%s entry %02d", prefix, i+1),
			Link:    fmt.Sprintf("https://example.test/%s/%02d", prefix, i+1),
			Snippet: fmt.Sprintf("%s snippet %02d", prefix, i+1),
		}
	}
	return entries
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(runeKey(string(r)))
	}
}

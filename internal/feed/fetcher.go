package feed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// ErrNoEntries is returned for a payload that parsed but carried no items.
var ErrNoEntries = errors.New("feed has no entries")

const (
	DefaultMaxEntries = 25
	DefaultTimeout    = 15 * time.Second
	userAgent         = "feed-reader/1.0"
)

// Fetcher retrieves the entries of the feed published at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]Entry, error)
}

// HTTPFetcher downloads and parses RSS, Atom and JSON feeds.
type HTTPFetcher struct {
	client     *http.Client
	timeout    time.Duration
	maxEntries int
	sanitize   *bluemonday.Policy
	group      singleflight.Group
}

// NewHTTPFetcher builds a fetcher. A nil client gets one with DefaultTimeout;
// maxEntries <= 0 falls back to DefaultMaxEntries.
func NewHTTPFetcher(client *http.Client, maxEntries int) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	timeout := client.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:     client,
		timeout:    timeout,
		maxEntries: maxEntries,
		sanitize:   bluemonday.StrictPolicy(),
	}
}

// Fetch implements Fetcher. Concurrent calls for the same url share one
// request. The shared request is not tied to any caller's cancellation; each
// caller stops waiting when its own ctx ends.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := f.group.DoChan(url, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()
		return f.fetch(shared, url)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return CloneEntries(res.Val.([]Entry)), nil
	}
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) ([]Entry, error) {
	parser := gofeed.NewParser()
	parser.Client = f.client
	parser.UserAgent = userAgent
	parsed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	items := lo.Filter(parsed.Items, func(item *gofeed.Item, _ int) bool {
		return item != nil
	})
	if len(items) > f.maxEntries {
		items = items[:f.maxEntries]
	}
	entries := lo.Map(items, func(item *gofeed.Item, _ int) Entry {
		return f.entryFromItem(item)
	})
	if len(entries) == 0 {
		return nil, fmt.Errorf("fetch %s: %w", url, ErrNoEntries)
	}
	return entries, nil
}

func (f *HTTPFetcher) entryFromItem(item *gofeed.Item) Entry {
	body := item.Description
	if body == "" {
		body = item.Content
	}
	entry := Entry{
		Title:   f.plainText(item.Title),
		Link:    item.Link,
		Snippet: f.plainText(body),
	}
	switch {
	case item.PublishedParsed != nil:
		entry.Published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		entry.Published = *item.UpdatedParsed
	}
	return entry
}

func (f *HTTPFetcher) plainText(s string) string {
	if s == "" {
		return ""
	}
	return collapseWhitespace(html.UnescapeString(f.sanitize.Sanitize(s)))
}

var _ Fetcher = (*HTTPFetcher)(nil)

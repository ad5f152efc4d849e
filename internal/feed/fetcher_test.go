package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Fixture</title>
  <link>http://example.com/</link>
  <description>fixture feed</description>
  <item>
    <title>First &amp; best</title>
    <link>http://example.com/1</link>
    <description>&lt;p&gt;Hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</description>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
  </item>
  <item>
    <title>Second</title>
    <link>http://example.com/2</link>
    <description>plain   text
      across lines</description>
  </item>
  <item>
    <title>Third</title>
    <link>http://example.com/3</link>
  </item>
</channel>
</rss>`

const emptyFixture = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Empty</title></channel></rss>`

func serveFixture(t *testing.T, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetcherParsesEntries(t *testing.T) {
	srv := serveFixture(t, rssFixture, nil)
	f := NewHTTPFetcher(srv.Client(), 0)

	entries, err := f.Fetch(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "First & best", entries[0].Title)
	assert.Equal(t, "Hello world", entries[0].Snippet)
	assert.Equal(t, "http://example.com/1", entries[0].Link)
	assert.True(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC).Equal(entries[0].Published))

	assert.Equal(t, "plain text across lines", entries[1].Snippet)
	assert.True(t, entries[1].Published.IsZero())

	assert.Equal(t, "Third", entries[2].Text())
}

func TestHTTPFetcherCapsEntries(t *testing.T) {
	srv := serveFixture(t, rssFixture, nil)
	f := NewHTTPFetcher(srv.Client(), 2)

	entries, err := f.Fetch(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHTTPFetcherEmptyFeed(t *testing.T) {
	srv := serveFixture(t, emptyFixture, nil)
	f := NewHTTPFetcher(srv.Client(), 0)

	_, err := f.Fetch(context.Background(), srv.URL+"/feed")
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestHTTPFetcherFailures(t *testing.T) {
	srv := serveFixture(t, rssFixture, nil)
	f := NewHTTPFetcher(srv.Client(), 0)

	_, err := f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing")

	garbage := serveFixture(t, "this is not a feed", nil)
	_, err = f.Fetch(context.Background(), garbage.URL+"/feed")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, srv.URL+"/feed")
	assert.Error(t, err)
}

func TestHTTPFetcherReturnsIndependentCopies(t *testing.T) {
	var hits int32
	srv := serveFixture(t, rssFixture, &hits)
	f := NewHTTPFetcher(srv.Client(), 0)

	first, err := f.Fetch(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := f.Fetch(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)
	assert.Equal(t, "First & best", second[0].Title)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestHTTPFetcherSharedRequestOutlivesCancelledCaller(t *testing.T) {
	var hits int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		started <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFixture)
	}))
	t.Cleanup(srv.Close)
	f := NewHTTPFetcher(srv.Client(), 0)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := f.Fetch(firstCtx, srv.URL+"/feed")
		firstErr <- err
	}()
	<-started

	type result struct {
		entries []Entry
		err     error
	}
	second := make(chan result, 1)
	go func() {
		entries, err := f.Fetch(context.Background(), srv.URL+"/feed")
		second <- result{entries, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Len(t, res.entries, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestEntryText(t *testing.T) {
	assert.Equal(t, "t\ns", Entry{Title: "t", Snippet: "s"}.Text())
	assert.Equal(t, "t", Entry{Title: "t"}.Text())
	assert.Equal(t, "s", Entry{Snippet: "s"}.Text())
	assert.True(t, strings.HasPrefix(Entry{Title: "a", Snippet: "b"}.Text(), "a"))
}

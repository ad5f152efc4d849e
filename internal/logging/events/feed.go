package events

import "github.com/atomicstack/feed-reader/internal/logging"

type FeedTracer struct{}

var Feed = FeedTracer{}

func (FeedTracer) Start(id string, index int, name, url string) {
	logging.Trace("feed.load.start", map[string]interface{}{"id": id, "index": index, "name": name, "url": url})
}

func (FeedTracer) NotFound(index int) {
	logging.Trace("feed.load.not-found", map[string]interface{}{"index": index})
}

func (FeedTracer) Loaded(id string, index, entries int) {
	logging.Trace("feed.load.done", map[string]interface{}{"id": id, "index": index, "entries": entries})
}

func (FeedTracer) Superseded(id string, index int) {
	logging.Trace("feed.load.superseded", map[string]interface{}{"id": id, "index": index})
}

func (FeedTracer) Failed(id string, index int, err error) {
	payload := map[string]interface{}{"id": id, "index": index}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("feed.load.error", payload)
}

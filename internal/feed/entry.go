package feed

import (
	"strings"
	"time"
)

// Entry is one rendered unit of feed content.
type Entry struct {
	Title     string
	Link      string
	Snippet   string
	Published time.Time
}

// Text returns the visible text of the entry: the title followed by the snippet.
func (e Entry) Text() string {
	switch {
	case e.Snippet == "":
		return e.Title
	case e.Title == "":
		return e.Snippet
	}
	return e.Title + "\n" + e.Snippet
}

// CloneEntries returns a copy of entries, or nil when empty.
func CloneEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

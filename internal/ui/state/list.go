package state

import "strings"

// Item is one selectable row.
type Item struct {
	ID    string
	Label string
}

// List holds a selectable row set with cursor, filter, and viewport state.
type List struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List over items with the cursor on the first row.
func NewList(id, title string, items []Item) *List {
	l := &List{
		ID:         id,
		Title:      title,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the visible index for a given item identifier.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Select moves the cursor to the item with id, if visible.
func (l *List) Select(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// UpdateItems replaces the rows, keeping the cursor on the same item when
// it is still present.
func (l *List) UpdateItems(items []Item) {
	var keep string
	if current, ok := l.Current(); ok {
		keep = current.ID
	}
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if keep != "" {
		l.Select(keep)
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Reset replaces the rows and moves the cursor back to the top.
func (l *List) Reset(items []Item) {
	l.Cursor = 0
	l.ViewportOffset = 0
	l.LastCursor = -1
	l.Full = CloneItems(items)
	l.applyFilter()
}

// CloneItems returns a copy of items, or nil when empty.
func CloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package state

import "testing"

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	list := newTestList("one", "two", "three")
	list.Cursor = 2
	list.SetFilter("two", len("two"))

	if list.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", list.Filter)
	}
	if list.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", list.FilterCursor)
	}
	if list.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", list.Cursor)
	}
	if len(list.Items) != 1 || list.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", list.Items)
	}

	list.SetFilter("", 0)
	if list.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", list.Cursor)
	}
	if list.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", list.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	list := newTestList("alpha")

	if !list.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if list.Filter != "ab" || list.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", list.Filter, list.FilterCursor)
	}

	list.FilterCursor = 1
	if !list.InsertFilterText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if list.Filter != "azb" || list.FilterCursor != 2 {
		t.Fatalf("expected azb with cursor 2, got %q/%d", list.Filter, list.FilterCursor)
	}

	if !list.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if list.Filter != "ab" || list.FilterCursor != 1 {
		t.Fatalf("expected ab with cursor 1, got %q/%d", list.Filter, list.FilterCursor)
	}

	list.FilterCursor = 0
	if list.DeleteFilterRuneBackward() {
		t.Fatal("expected deletion at start to be a no-op")
	}
	if list.InsertFilterText("") {
		t.Fatal("expected empty insert to be a no-op")
	}
}

func TestDeleteFilterWordBackward(t *testing.T) {
	list := newTestList("css tricks")
	list.SetFilter("css tri", len("css tri"))

	if !list.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if list.Filter != "css " || list.FilterCursor != 4 {
		t.Fatalf("expected 'css ' with cursor 4, got %q/%d", list.Filter, list.FilterCursor)
	}
	list.DeleteFilterWordBackward()
	if list.Filter != "" {
		t.Fatalf("expected empty filter, got %q", list.Filter)
	}
}

func TestClearFilter(t *testing.T) {
	list := newTestList("one", "two")
	if list.ClearFilter() {
		t.Fatal("expected clear on empty filter to report no change")
	}
	list.SetFilter("tw", 2)
	if !list.ClearFilter() {
		t.Fatal("expected clear to succeed")
	}
	if list.Filter != "" || len(list.Items) != 2 {
		t.Fatalf("expected all items back, got %q/%#v", list.Filter, list.Items)
	}
}

func TestFilterItemsFuzzy(t *testing.T) {
	items := []Item{
		{ID: "0", Label: "Udacity Blog"},
		{ID: "1", Label: "CSS Tricks"},
		{ID: "2", Label: "HTML5 Rocks"},
		{ID: "3", Label: "Linear Digressions"},
	}
	got := FilterItems(items, "rcks")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("expected fuzzy matches in original order, got %#v", got)
	}
	if len(FilterItems(items, "  ")) != len(items) {
		t.Fatal("expected blank query to return everything")
	}
	if len(FilterItems(items, "zzz")) != 0 {
		t.Fatal("expected no matches for unrelated query")
	}
}

func TestFilterItemsIgnoresIDs(t *testing.T) {
	items := []Item{
		{ID: "0", Label: "Udacity Blog"},
		{ID: "1", Label: "CSS Tricks"},
		{ID: "2", Label: "HTML5 Rocks"},
	}
	if got := FilterItems(items, "1"); len(got) != 0 {
		t.Fatalf("expected index IDs not to match, got %#v", got)
	}
	got := FilterItems(items, "5")
	if len(got) != 1 || got[0].Label != "HTML5 Rocks" {
		t.Fatalf("expected label match only, got %#v", got)
	}
}

func TestBestMatchIndexPrefersPrefix(t *testing.T) {
	items := []Item{
		{ID: "0", Label: "Linear Digressions"},
		{ID: "1", Label: "HTML5 Rocks"},
	}
	if idx := BestMatchIndex(items, "html"); idx != 1 {
		t.Fatalf("expected prefix match 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "linear digressions"); idx != 0 {
		t.Fatalf("expected exact match 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty items, got %d", idx)
	}
}

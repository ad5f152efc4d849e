package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"1.", "Alpha", "alpha.test"},
		{"10.", "Linear Digressions", "ld.test"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignLeft, AlignLeft})
	want := []string{
		" 1.  Alpha               alpha.test",
		"10.  Linear Digressions  ld.test",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatHandlesRaggedRowsAndWideRunes(t *testing.T) {
	rows := [][]string{
		{"日本", "x"},
		{"ab"},
	}
	got := Format(rows, nil)
	want := []string{
		"日本  x",
		"ab",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil for no rows, got %#v", got)
	}
}

package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestTraceWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Close()
	})
	if got := Path(); got != path {
		t.Fatalf("expected path %q, got %q", path, got)
	}

	SetTraceEnabled(false)
	Trace("ignored", nil)
	SetTraceEnabled(true)
	Trace("feed.load.start", map[string]interface{}{"index": 1})
	Error(errors.New("boom"))
	Error(nil)

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %#v", len(lines), lines)
	}
	if lines[0]["event"] != "feed.load.start" {
		t.Fatalf("expected trace event, got %#v", lines[0])
	}
	payload, ok := lines[0]["payload"].(map[string]interface{})
	if !ok || payload["index"] != float64(1) {
		t.Fatalf("expected payload index 1, got %#v", lines[0]["payload"])
	}
	if lines[1]["error"] != "boom" || lines[1]["level"] != "error" {
		t.Fatalf("expected error entry, got %#v", lines[1])
	}
}

func TestConfigureEmptyPathUsesDefault(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		Close()
		os.Chdir(wd)
	})
	Configure("  ")
	if got := Path(); got != defaultLogFile {
		t.Fatalf("expected default log path, got %q", got)
	}
}

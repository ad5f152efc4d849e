package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/feed-reader/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "feed-reader-ui")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "ui-test.log"))
	code := m.Run()
	_ = logging.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

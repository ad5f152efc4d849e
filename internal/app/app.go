package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atomicstack/feed-reader/internal/backend"
	"github.com/atomicstack/feed-reader/internal/feed"
	"github.com/atomicstack/feed-reader/internal/reader"
	"github.com/atomicstack/feed-reader/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	FeedsPath  string
	Timeout    time.Duration
	Refresh    time.Duration
	MaxEntries int
	Width      int
	Height     int
	ShowFooter bool
}

type components struct {
	registry *feed.Registry
	root     *reader.Root
	loader   *reader.Loader
	watcher  *backend.Watcher
	model    *ui.Model
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	c, err := build(cfg)
	if err != nil {
		return err
	}
	if c.watcher != nil {
		defer c.watcher.Stop()
	}
	program := tea.NewProgram(c.model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// LoadRegistry reads the feeds file at path, or returns the built-in feeds
// when path is empty.
func LoadRegistry(path string) (*feed.Registry, error) {
	if strings.TrimSpace(path) == "" {
		return feed.DefaultRegistry(), nil
	}
	registry, err := feed.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load feeds: %w", err)
	}
	return registry, nil
}

func build(cfg Config) (*components, error) {
	registry, err := LoadRegistry(cfg.FeedsPath)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = feed.DefaultTimeout
	}
	fetcher := feed.NewHTTPFetcher(&http.Client{Timeout: timeout}, cfg.MaxEntries)
	root := reader.NewRoot()
	loader := reader.NewLoader(root, registry, fetcher, timeout)
	var watcher *backend.Watcher
	if cfg.Refresh > 0 {
		watcher = backend.NewWatcher(root, loader, cfg.Refresh)
	}
	model := ui.NewModel(root, loader, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Watcher:    watcher,
	})
	return &components{
		registry: registry,
		root:     root,
		loader:   loader,
		watcher:  watcher,
		model:    model,
	}, nil
}

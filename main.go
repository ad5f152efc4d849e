package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/feed-reader/internal/app"
	"github.com/atomicstack/feed-reader/internal/config"
	"github.com/atomicstack/feed-reader/internal/feed"
	"github.com/atomicstack/feed-reader/internal/logging"
	"github.com/atomicstack/feed-reader/internal/logging/events"
	"github.com/samber/lo"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	registry, err := app.LoadRegistry(cfg.App.FeedsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg, registry, stdoutSize))

	err = app.Run(cfg.App)
	events.App.Stop(err)
	if err != nil {
		logging.Error(err)
		_ = logging.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_ = logging.Close()
}

// startupTracePayload describes what the reader is about to show and how it
// will fetch it.
func startupTracePayload(cfg config.Config, registry *feed.Registry, size func() (int, int, bool)) map[string]interface{} {
	feeds := lo.Map(registry.All(), func(d feed.Descriptor, _ int) string {
		return d.Name
	})
	timeout := cfg.App.Timeout
	if timeout <= 0 {
		timeout = feed.DefaultTimeout
	}
	maxEntries := cfg.App.MaxEntries
	if maxEntries <= 0 {
		maxEntries = feed.DefaultMaxEntries
	}
	return map[string]interface{}{
		"feedsSource": feedsSource(cfg.App.FeedsPath),
		"feedCount":   registry.Len(),
		"feeds":       feeds,
		"timeout":     timeout.String(),
		"refresh":     refreshLabel(cfg.App.Refresh),
		"maxEntries":  maxEntries,
		"footer":      cfg.App.ShowFooter,
		"trace":       cfg.Logging.Trace,
		"viewport":    viewportLabel(cfg.App.Width, cfg.App.Height, size),
	}
}

func feedsSource(path string) string {
	if strings.TrimSpace(path) == "" {
		return "built-in"
	}
	return path
}

func refreshLabel(interval time.Duration) string {
	if interval <= 0 {
		return "off"
	}
	return interval.String()
}

// viewportLabel reports the fixed size when both dimensions are set,
// otherwise the terminal size the program starts in.
func viewportLabel(width, height int, size func() (int, int, bool)) string {
	if width > 0 && height > 0 {
		return fmt.Sprintf("%dx%d fixed", width, height)
	}
	if w, h, ok := size(); ok {
		return fmt.Sprintf("%dx%d terminal", w, h)
	}
	return "unknown"
}

func stdoutSize() (int, int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

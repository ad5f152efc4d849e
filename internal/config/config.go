package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/feed-reader/internal/app"
	"github.com/atomicstack/feed-reader/internal/feed"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envFeeds      = "FEED_READER_FEEDS"
	envTimeout    = "FEED_READER_TIMEOUT"
	envRefresh    = "FEED_READER_REFRESH"
	envMaxEntries = "FEED_READER_MAX_ENTRIES"
	envWidth      = "FEED_READER_WIDTH"
	envHeight     = "FEED_READER_HEIGHT"
	envShowFooter = "FEED_READER_FOOTER"
	envTrace      = "FEED_READER_TRACE"
	envLogFile    = "FEED_READER_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("feed-reader", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	feeds := fs.String("feeds", envOrDefault(env, envFeeds, ""), "path to a TOML feeds file (built-in feeds when empty)")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, feed.DefaultTimeout), "per-load fetch timeout")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, 0), "re-fetch the shown feed at this interval (0 disables)")
	maxEntries := fs.Int("max-entries", envOrInt(env, envMaxEntries, feed.DefaultMaxEntries), "maximum entries shown per feed")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key-help row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			FeedsPath:  *feeds,
			Timeout:    *timeout,
			Refresh:    *refresh,
			MaxEntries: *maxEntries,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects negative limits and makes sure the feeds file loads.
func Validate(cfg Config) error {
	if cfg.App.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", cfg.App.Timeout)
	}
	if cfg.App.Refresh < 0 {
		return fmt.Errorf("refresh must be >= 0 (got %s)", cfg.App.Refresh)
	}
	if cfg.App.MaxEntries < 0 {
		return fmt.Errorf("max-entries must be >= 0 (got %d)", cfg.App.MaxEntries)
	}
	if _, err := app.LoadRegistry(cfg.App.FeedsPath); err != nil {
		return err
	}
	return nil
}

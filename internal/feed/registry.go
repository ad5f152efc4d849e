package feed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrIndexOutOfRange   = errors.New("feed index out of range")
	ErrEmptyRegistry     = errors.New("feed registry is empty")
	ErrInvalidDescriptor = errors.New("invalid feed descriptor")
)

// Descriptor names a remote feed source.
type Descriptor struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// IndexOutOfRangeError reports a lookup outside [0, Len).
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("feed index %d out of range [0, %d)", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Registry is the ordered, read-only list of configured feeds.
type Registry struct {
	feeds []Descriptor
}

// NewRegistry validates and copies the supplied descriptors.
func NewRegistry(feeds []Descriptor) (*Registry, error) {
	if len(feeds) == 0 {
		return nil, ErrEmptyRegistry
	}
	dup := make([]Descriptor, len(feeds))
	for i, d := range feeds {
		d.Name = strings.TrimSpace(d.Name)
		d.URL = strings.TrimSpace(d.URL)
		if d.Name == "" {
			return nil, fmt.Errorf("%w: feed %d has no name", ErrInvalidDescriptor, i)
		}
		if d.URL == "" {
			return nil, fmt.Errorf("%w: feed %d (%s) has no url", ErrInvalidDescriptor, i, d.Name)
		}
		dup[i] = d
	}
	return &Registry{feeds: dup}, nil
}

var defaultFeeds = []Descriptor{
	{Name: "Udacity Blog", URL: "http://blog.udacity.com/feed"},
	{Name: "CSS Tricks", URL: "http://feeds.feedburner.com/CssTricks"},
	{Name: "HTML5 Rocks", URL: "http://feeds.feedburner.com/html5rocks"},
	{Name: "Linear Digressions", URL: "http://feeds.feedburner.com/udacity-linear-digressions"},
}

// DefaultRegistry returns the built-in feed list.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultFeeds)
	if err != nil {
		panic(err)
	}
	return r
}

type registryFile struct {
	Feeds []Descriptor `toml:"feeds"`
}

// LoadRegistry reads [[feeds]] tables from a TOML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading feeds file: %w", err)
	}
	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing feeds file: %w", err)
	}
	r, err := NewRegistry(file.Feeds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Len returns the number of feeds. It is never zero.
func (r *Registry) Len() int {
	return len(r.feeds)
}

// Get returns the descriptor at index.
func (r *Registry) Get(index int) (Descriptor, error) {
	if index < 0 || index >= len(r.feeds) {
		return Descriptor{}, &IndexOutOfRangeError{Index: index, Length: len(r.feeds)}
	}
	return r.feeds[index], nil
}

// MustGet is Get for callers that already validated the index.
func (r *Registry) MustGet(index int) Descriptor {
	d, err := r.Get(index)
	if err != nil {
		panic(err)
	}
	return d
}

// All returns a copy of every descriptor in order.
func (r *Registry) All() []Descriptor {
	dup := make([]Descriptor, len(r.feeds))
	copy(dup, r.feeds)
	return dup
}

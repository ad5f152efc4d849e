package feed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryHasNamedFeeds(t *testing.T) {
	r := DefaultRegistry()
	require.NotZero(t, r.Len())
	for i, d := range r.All() {
		assert.NotEmpty(t, d.Name, "feed %d name", i)
		assert.NotEmpty(t, d.URL, "feed %d url", i)
	}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name  string
		feeds []Descriptor
		want  error
	}{
		{name: "nil", feeds: nil, want: ErrEmptyRegistry},
		{name: "empty", feeds: []Descriptor{}, want: ErrEmptyRegistry},
		{name: "missing name", feeds: []Descriptor{{URL: "u1"}}, want: ErrInvalidDescriptor},
		{name: "blank name", feeds: []Descriptor{{Name: "  ", URL: "u1"}}, want: ErrInvalidDescriptor},
		{name: "missing url", feeds: []Descriptor{{Name: "A"}, {Name: "B"}}, want: ErrInvalidDescriptor},
		{name: "valid", feeds: []Descriptor{{Name: "A", URL: "u1"}, {Name: "B", URL: "u2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.feeds)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.feeds), r.Len())
		})
	}
}

func TestRegistryGet(t *testing.T) {
	r, err := NewRegistry([]Descriptor{{Name: " A ", URL: "u1"}, {Name: "B", URL: "u2"}})
	require.NoError(t, err)

	d, err := r.Get(0)
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Name: "A", URL: "u1"}, d)
	assert.Equal(t, "u2", r.MustGet(1).URL)

	for _, idx := range []int{-1, 2, 100} {
		_, err := r.Get(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		var rangeErr *IndexOutOfRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, idx, rangeErr.Index)
		assert.Equal(t, 2, rangeErr.Length)
	}
	assert.Panics(t, func() { r.MustGet(2) })
}

func TestRegistryAllReturnsCopy(t *testing.T) {
	input := []Descriptor{{Name: "A", URL: "u1"}}
	r, err := NewRegistry(input)
	require.NoError(t, err)
	input[0].Name = "changed"
	all := r.All()
	all[0].URL = "changed"
	assert.Equal(t, Descriptor{Name: "A", URL: "u1"}, r.MustGet(0))
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.toml")
	content := `
[[feeds]]
name = "Go Blog"
url = "https://go.dev/blog/feed.atom"

[[feeds]]
name = "Example"
url = "https://example.com/rss"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "Go Blog", r.MustGet(0).Name)
	assert.Equal(t, "https://example.com/rss", r.MustGet(1).URL)
}

func TestLoadRegistryErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRegistry(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.toml")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))
	_, err = LoadRegistry(empty)
	assert.ErrorIs(t, err, ErrEmptyRegistry)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[[feeds]\nname ="), 0o644))
	_, err = LoadRegistry(broken)
	assert.Error(t, err)
}

package sources

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/kerbaras/spotlight/pkg/data"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceDecodedArray(t *testing.T) {
	path := writeSnapshot(t, `{"creatives": `+creativesJSON+`, "imageIndex": 1, "edgeUri": "microsoft-edge:https://www.bing.com/x"}`)
	src := NewFileSource(path, zerolog.Nop())

	entries, index, err := src.FetchEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, index)

	uri, err := src.FetchCurrentDetailURI()
	require.NoError(t, err)
	assert.Equal(t, "https://www.bing.com/x", uri)
}

func TestFileSourceRegistryString(t *testing.T) {
	// The registry stores the array as a JSON string.
	quoted := strconv.Quote(`[{"ad":{"title":"Alps"}}]`)
	path := writeSnapshot(t, `{"creatives": `+quoted+`, "imageIndex": 0}`)
	src := NewFileSource(path, zerolog.Nop())

	entries, index, err := src.FetchEntries()
	require.NoError(t, err)
	assert.Equal(t, []data.Wallpaper{{Title: "Alps"}}, entries)
	assert.Zero(t, index)
}

func TestFileSourceUnavailable(t *testing.T) {
	tests := map[string]string{
		"missing file":      filepath.Join(t.TempDir(), "absent.json"),
		"malformed file":    writeSnapshot(t, "{"),
		"bad creatives":     writeSnapshot(t, `{"creatives": "not json"}`),
		"missing creatives": writeSnapshot(t, `{"imageIndex": 3}`),
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			src := NewFileSource(path, zerolog.Nop())
			entries, _, err := src.FetchEntries()
			assert.Nil(t, entries)
			assert.True(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestStaticSource(t *testing.T) {
	src := &StaticSource{
		Entries: []data.Wallpaper{{Title: "a"}, {Title: "b"}},
		Index:   1,
	}

	entries, index, err := src.FetchEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, index)

	entries[0].Title = "changed"
	again, _, _ := src.FetchEntries()
	assert.Equal(t, "a", again[0].Title)

	_, err = src.FetchCurrentDetailURI()
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, _, err = (&StaticSource{}).FetchEntries()
	assert.True(t, errors.Is(err, ErrUnavailable))
}

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kerbaras/spotlight/pkg/app/styles"
	"github.com/kerbaras/spotlight/pkg/data"
	"github.com/kerbaras/spotlight/pkg/sources"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	styles.DisableColor()
}

// recorder serves detail pages /a../d and their images, counting requests.
type recorder struct {
	mu   sync.Mutex
	hits []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits = append(r.hits, path)
}

func (r *recorder) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hits...)
}

func newSpotlightServer(t *testing.T) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r.URL.Path)
		name := strings.TrimPrefix(r.URL.Path, "/")
		if img, ok := strings.CutPrefix(name, "img/"); ok {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("jpeg:" + img))
			return
		}
		fmt.Fprintf(w, `<div id="bcg-img-url" style="background-image: url(/img/%s)"></div><p id="heading-url">Title %s</p>`, name, strings.ToUpper(name))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func withSeams(t *testing.T, src sources.Source, client *http.Client) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	oldSource, oldClient := newSource, newHTTPClient
	newSource = func(from string, logger zerolog.Logger) sources.Source {
		if from != "" {
			return oldSource(from, logger)
		}
		return src
	}
	newHTTPClient = func() *http.Client { return client }
	t.Cleanup(func() {
		newSource, newHTTPClient = oldSource, oldClient
	})
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func entriesFor(server *httptest.Server) []data.Wallpaper {
	var entries []data.Wallpaper
	for _, name := range []string{"a", "b", "c", "d"} {
		entries = append(entries, data.Wallpaper{
			Title:       "Entry " + name,
			Description: "About " + name,
			DetailURI:   data.EdgeScheme + server.URL + "/" + name,
		})
	}
	return entries
}

func TestUnavailableSourceFailsWithoutRequests(t *testing.T) {
	server, rec := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{}, server.Client())

	stdout, _, err := execute(t, "--no-color", server.URL+"/a")

	require.Error(t, err)
	assert.True(t, errors.Is(err, sources.ErrUnavailable))
	assert.Contains(t, stdout, "Failed to retrieve spotlight information.")
	assert.Empty(t, rec.paths())
}

func TestDefaultDownloadsCurrentOnly(t *testing.T) {
	server, rec := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{Entries: entriesFor(server), Index: 2}, server.Client())
	dir := t.TempDir()

	stdout, _, err := execute(t, "--no-color", "-o", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"/c", "/img/c"}, rec.paths())
	want := filepath.Join(dir, "Title C.jpeg")
	assert.Contains(t, stdout, "Downloaded to "+want)

	content, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "jpeg:c", string(content))
}

func TestAllDownloadsEveryEntry(t *testing.T) {
	server, rec := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{Entries: entriesFor(server), Index: 0}, server.Client())
	dir := t.TempDir()

	_, _, err := execute(t, "--no-color", "--all", "--output", dir)
	require.NoError(t, err)

	assert.Len(t, rec.paths(), 8)
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 4)
}

func TestExistingFileIsNotFatal(t *testing.T) {
	server, _ := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{Entries: entriesFor(server), Index: 1}, server.Client())
	dest := filepath.Join(t.TempDir(), "current.jpg")
	require.NoError(t, os.WriteFile(dest, []byte("mine"), 0o644))

	stdout, stderr, err := execute(t, "--no-color", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Failed to download the wallpaper Entry b.")
	assert.Contains(t, stderr, "File already exists")

	content, _ := os.ReadFile(dest)
	assert.Equal(t, "mine", string(content))

	stdout, _, err = execute(t, "--no-color", "-f", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Downloaded to "+dest)
	content, _ = os.ReadFile(dest)
	assert.Equal(t, "jpeg:b", string(content))
}

func TestExplicitURLs(t *testing.T) {
	server, rec := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{Entries: entriesFor(server), Index: 0}, server.Client())
	dir := t.TempDir()

	stdout, _, err := execute(t, "--no-color", "-o", dir, server.URL+"/d", "not-a-url")
	require.NoError(t, err)

	assert.Equal(t, []string{"/d", "/img/d"}, rec.paths())
	assert.Contains(t, stdout, "Downloaded to "+filepath.Join(dir, "Title D.jpeg"))
	assert.Contains(t, stdout, "Failed to download the wallpaper at not-a-url.")
}

func TestListPlain(t *testing.T) {
	server, rec := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{Entries: entriesFor(server), Index: 3}, server.Client())

	stdout, _, err := execute(t, "--no-color", "--list", "--plain", "--all")
	require.NoError(t, err)

	assert.Contains(t, stdout, "1. Entry a\n   About a\n")
	assert.Contains(t, stdout, "4. Entry d (current)\n")
	assert.Empty(t, rec.paths())
}

func TestCurrentURI(t *testing.T) {
	server, _ := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{
		Entries:   entriesFor(server),
		DetailURI: "microsoft-edge:https://www.bing.com/spotlight?spotlightId=Alps",
	}, server.Client())

	stdout, _, err := execute(t, "--no-color", "--uri")
	require.NoError(t, err)
	assert.Equal(t, "https://www.bing.com/spotlight?spotlightId=Alps\n", stdout)
}

func TestFromSnapshot(t *testing.T) {
	server, rec := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{}, server.Client())

	snapshot := filepath.Join(t.TempDir(), "snapshot.json")
	content := fmt.Sprintf(`{"creatives": [{"ad": {"title": "Snap", "ctaUri": "microsoft-edge:%s/a"}}], "imageIndex": 0}`, server.URL)
	require.NoError(t, os.WriteFile(snapshot, []byte(content), 0o644))
	dir := t.TempDir()

	stdout, _, err := execute(t, "--no-color", "--from", snapshot, "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Downloaded to "+filepath.Join(dir, "Title A.jpeg"))
	assert.Equal(t, []string{"/a", "/img/a"}, rec.paths())
}

func TestConfigFileDefaults(t *testing.T) {
	server, _ := newSpotlightServer(t)
	withSeams(t, &sources.StaticSource{Entries: entriesFor(server), Index: 0}, server.Client())
	dir := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: "+dir+"\nno_color: true\n"), 0o644))

	stdout, _, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Downloaded to "+filepath.Join(dir, "Title A.jpeg"))
}

func TestMissingExplicitConfig(t *testing.T) {
	withSeams(t, &sources.StaticSource{}, http.DefaultClient)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

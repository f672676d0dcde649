package sources

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/kerbaras/spotlight/pkg/data"
	"github.com/rs/zerolog"
	"go.trai.ch/zerr"
)

// Snapshot is an exported copy of the spotlight registry values. Creatives
// may be either the raw registry string or the decoded array.
type Snapshot struct {
	Creatives  json.RawMessage `json:"creatives"`
	ImageIndex int             `json:"imageIndex"`
	EdgeURI    string          `json:"edgeUri"`
}

// FileSource reads a Snapshot from disk, so the tool can run against a
// registry dump taken on another machine.
type FileSource struct {
	path   string
	logger zerolog.Logger
}

// NewFileSource creates a FileSource reading the snapshot at path.
func NewFileSource(path string, logger zerolog.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

func (s *FileSource) load() (*StaticSource, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("Failed to read snapshot")
		return nil, zerr.With(unavailable(err), "path", s.path)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("Snapshot is not valid JSON")
		return nil, zerr.With(unavailable(err), "path", s.path)
	}

	static := &StaticSource{Index: snap.ImageIndex, DetailURI: snap.EdgeURI}
	if len(snap.Creatives) == 0 {
		return static, nil
	}

	creatives := string(snap.Creatives)
	if bytes.HasPrefix(bytes.TrimSpace(snap.Creatives), []byte(`"`)) {
		if err := json.Unmarshal(snap.Creatives, &creatives); err != nil {
			s.logger.Error().Err(err).Str("path", s.path).Msg("Snapshot creatives is not a string")
			return nil, zerr.With(unavailable(err), "path", s.path)
		}
	}

	entries, err := ParseCreatives(creatives)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("The value of the Creatives key is not valid JSON")
		return nil, zerr.With(unavailable(err), "path", s.path)
	}
	static.Entries = entries
	return static, nil
}

func (s *FileSource) FetchEntries() ([]data.Wallpaper, int, error) {
	static, err := s.load()
	if err != nil {
		return nil, 0, err
	}
	if static.Entries == nil {
		s.logger.Error().Str("path", s.path).Msg("Snapshot has no creatives")
	}
	return static.FetchEntries()
}

func (s *FileSource) FetchCurrentDetailURI() (string, error) {
	static, err := s.load()
	if err != nil {
		return "", err
	}
	return static.FetchCurrentDetailURI()
}

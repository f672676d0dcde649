package sources

import (
	"github.com/kerbaras/spotlight/pkg/data"
	"go.trai.ch/zerr"
)

// StaticSource serves a fixed set of entries from memory.
type StaticSource struct {
	Entries   []data.Wallpaper
	Index     int
	DetailURI string
}

func (s *StaticSource) FetchEntries() ([]data.Wallpaper, int, error) {
	if s.Entries == nil {
		return nil, 0, unavailable(ErrNotFound)
	}
	out := make([]data.Wallpaper, len(s.Entries))
	copy(out, s.Entries)
	return out, s.Index, nil
}

func (s *StaticSource) FetchCurrentDetailURI() (string, error) {
	if s.DetailURI == "" {
		return "", zerr.With(unavailable(ErrNotFound), "value", EdgeURIValue)
	}
	return data.Wallpaper{DetailURI: s.DetailURI}.PageURL(), nil
}

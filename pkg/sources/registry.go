package sources

import (
	"errors"

	"github.com/kerbaras/spotlight/pkg/data"
	"github.com/rs/zerolog"
	"go.trai.ch/zerr"
)

const (
	// CreativesKey lives under HKEY_CURRENT_USER.
	CreativesKey   = `Software\Microsoft\Windows\CurrentVersion\DesktopSpotlight\Creatives`
	CreativesValue = "Creatives"
	IndexValue     = "ImageIndex"

	// SpotlightClickKey lives under HKEY_CLASSES_ROOT.
	SpotlightClickKey = `CLSID\{2cc5ca98-6485-489a-920e-b3e88a6ccce3}\shell\SpotlightClick`
	EdgeURIValue      = "EdgeUri"
)

// store is the raw, read-only view of the two registry keys.
type store interface {
	ReadCreatives() (creatives string, index uint64, err error)
	ReadEdgeURI() (string, error)
}

// RegistrySource reads spotlight entries from the Windows registry. Each
// call opens and closes its own key handle.
type RegistrySource struct {
	store  store
	logger zerolog.Logger
}

// NewRegistrySource creates a RegistrySource backed by the platform registry.
func NewRegistrySource(logger zerolog.Logger) *RegistrySource {
	return &RegistrySource{store: platformStore{}, logger: logger}
}

func (s *RegistrySource) FetchEntries() ([]data.Wallpaper, int, error) {
	raw, index, err := s.store.ReadCreatives()
	if err != nil {
		return nil, 0, s.fail(err, CreativesKey)
	}

	entries, err := ParseCreatives(raw)
	if err != nil {
		s.logger.Error().Err(err).Str("value", CreativesValue).Msg("The value of the Creatives key is not valid JSON")
		return nil, 0, zerr.With(unavailable(err), "key", CreativesKey)
	}

	s.logger.Debug().Int("entries", len(entries)).Uint64("index", index).Msg("Read spotlight creatives")
	return entries, int(index), nil
}

func (s *RegistrySource) FetchCurrentDetailURI() (string, error) {
	uri, err := s.store.ReadEdgeURI()
	if err != nil {
		return "", s.fail(err, SpotlightClickKey)
	}
	return data.Wallpaper{DetailURI: uri}.PageURL(), nil
}

func (s *RegistrySource) fail(err error, key string) error {
	switch {
	case errors.Is(err, ErrUnsupportedPlatform):
		s.logger.Error().Msg("This platform does not provide the spotlight store")
	case errors.Is(err, ErrNotFound):
		s.logger.Error().Str("key", key).Msg("Registry key or value not found")
	default:
		s.logger.Error().Err(err).Str("key", key).Msg("Error reading the registry")
	}
	return zerr.With(unavailable(err), "key", key)
}

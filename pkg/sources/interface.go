package sources

import (
	"fmt"

	"github.com/kerbaras/spotlight/pkg/data"
	"go.trai.ch/zerr"
)

var (
	// ErrUnavailable is returned when the spotlight store cannot be read,
	// whatever the cause.
	ErrUnavailable = zerr.New("spotlight information unavailable")

	// ErrUnsupportedPlatform marks builds without a spotlight store.
	ErrUnsupportedPlatform = zerr.New("platform does not provide the spotlight store")

	// ErrNotFound is returned by a store when the key or value is missing.
	ErrNotFound = zerr.New("registry key or value not found")
)

// Source provides the wallpapers known to the spotlight rotation.
type Source interface {
	// FetchEntries returns every entry in rotation order and the index of
	// the one currently shown.
	FetchEntries() ([]data.Wallpaper, int, error)

	// FetchCurrentDetailURI returns the detail page of the wallpaper on
	// screen, without the edge scheme.
	FetchCurrentDetailURI() (string, error)
}

func unavailable(cause error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, cause)
}

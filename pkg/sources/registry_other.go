//go:build !windows

package sources

type platformStore struct{}

func (platformStore) ReadCreatives() (string, uint64, error) {
	return "", 0, ErrUnsupportedPlatform
}

func (platformStore) ReadEdgeURI() (string, error) {
	return "", ErrUnsupportedPlatform
}

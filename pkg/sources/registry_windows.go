//go:build windows

package sources

import (
	"errors"
	"strconv"

	"go.trai.ch/zerr"
	"golang.org/x/sys/windows/registry"
)

type platformStore struct{}

func (platformStore) ReadCreatives() (string, uint64, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, CreativesKey, registry.QUERY_VALUE)
	if err != nil {
		return "", 0, translate(err)
	}
	defer k.Close()

	creatives, _, err := k.GetStringValue(CreativesValue)
	if err != nil {
		return "", 0, translate(err)
	}

	index, _, err := k.GetIntegerValue(IndexValue)
	if errors.Is(err, registry.ErrUnexpectedType) {
		// Some builds store the index as a decimal string.
		var s string
		if s, _, err = k.GetStringValue(IndexValue); err == nil {
			index, err = strconv.ParseUint(s, 10, 32)
		}
	}
	if err != nil {
		return "", 0, translate(err)
	}

	return creatives, index, nil
}

func (platformStore) ReadEdgeURI() (string, error) {
	k, err := registry.OpenKey(registry.CLASSES_ROOT, SpotlightClickKey, registry.QUERY_VALUE)
	if err != nil {
		return "", translate(err)
	}
	defer k.Close()

	uri, _, err := k.GetStringValue(EdgeURIValue)
	if err != nil {
		return "", translate(err)
	}
	return uri, nil
}

func translate(err error) error {
	if errors.Is(err, registry.ErrNotExist) {
		return zerr.Wrap(ErrNotFound, err.Error())
	}
	return err
}

package services

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kerbaras/spotlight/pkg/data"
	"github.com/kerbaras/spotlight/pkg/utils"
	"github.com/rs/zerolog"
	"go.trai.ch/zerr"
)

var (
	// ErrResolution means the detail page did not lead to an image.
	ErrResolution = zerr.New("could not resolve wallpaper image")
	// ErrTransfer means the image could not be fetched or written.
	ErrTransfer = zerr.New("could not transfer wallpaper image")
	// ErrExists means the destination was left alone because force was off.
	ErrExists = zerr.Wrap(ErrTransfer, "file already exists")
)

// Resolver turns a detail page into a title and image path.
type Resolver interface {
	Resolve(pageURL string) data.ResolvedImage
}

// Downloader saves wallpapers to disk, one blocking request pair at a time.
type Downloader struct {
	resolver Resolver
	api      *utils.API
	logger   zerolog.Logger
}

// NewDownloader creates a Downloader that resolves pages with resolver and
// fetches images through api.
func NewDownloader(resolver Resolver, api *utils.API, logger zerolog.Logger) *Downloader {
	return &Downloader{resolver: resolver, api: api, logger: logger}
}

// Download fetches the wallpaper behind input and writes it to dest. When
// dest is an existing directory the file is named after the wallpaper title,
// otherwise dest is the file itself. The returned path is empty on failure.
func (d *Downloader) Download(input data.DownloadInput, dest string, force bool) (string, error) {
	pageURL := input.DetailURL()

	host, err := imageHost(pageURL)
	if err != nil {
		d.logger.Warn().Err(err).Str("url", pageURL).Msg("Invalid detail page URL")
		return "", zerr.With(zerr.Wrap(ErrResolution, err.Error()), "url", pageURL)
	}

	image := d.resolver.Resolve(pageURL)
	if image.ImagePath == "" {
		d.logger.Warn().Str("url", pageURL).Msg("No background image found on the page")
		return "", zerr.With(zerr.Wrap(ErrResolution, "no background image"), "url", pageURL)
	}

	imageURL := "https://" + host + image.ImagePath

	resp, err := d.api.Get(imageURL, "image/*")
	if err != nil {
		d.logger.Warn().Err(err).Str("url", imageURL).Msg("An error occurred while requesting the image")
		return "", zerr.With(zerr.Wrap(ErrTransfer, err.Error()), "url", imageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Warn().Int("status", resp.StatusCode).Str("url", imageURL).Msg("Failed to download the image")
		return "", zerr.With(zerr.With(zerr.Wrap(ErrTransfer, resp.Status), "url", imageURL), "status", resp.StatusCode)
	}

	filename := destination(dest, fileStem(image), extension(resp.Header.Get("Content-Type")))

	if _, err := os.Stat(filename); err == nil && !force {
		d.logger.Warn().Str("path", filename).Msg("File already exists. Use -f to force download.")
		return "", zerr.With(zerr.Wrap(ErrExists, filename), "path", filename)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		d.logger.Warn().Err(err).Str("url", imageURL).Msg("Failed to read image content")
		return "", zerr.With(zerr.Wrap(ErrTransfer, err.Error()), "url", imageURL)
	}

	if err := os.WriteFile(filename, content, 0o644); err != nil {
		d.logger.Warn().Err(err).Str("path", filename).Msg("Failed to write image")
		return "", zerr.With(zerr.Wrap(ErrTransfer, err.Error()), "path", filename)
	}

	d.logger.Debug().Str("path", filename).Int("bytes", len(content)).Msg("Saved wallpaper")
	return filename, nil
}

// imageHost returns the authority of a detail page URL.
func imageHost(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("detail page URL needs a scheme and a host")
	}
	return u.Host, nil
}

// extension is the media subtype of a Content-Type header as sent, e.g.
// "jpeg" or "WEBP". Parameters are dropped.
func extension(contentType string) string {
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if i := strings.LastIndex(mediaType, "/"); i >= 0 {
		return strings.TrimSpace(mediaType[i+1:])
	}
	return ""
}

func fileStem(image data.ResolvedImage) string {
	if title := sanitizeFilename(image.Title); title != "" {
		return title
	}
	base := path.Base(strings.SplitN(image.ImagePath, "?", 2)[0])
	return sanitizeFilename(strings.TrimSuffix(base, path.Ext(base)))
}

func destination(dest, stem, ext string) string {
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		return dest
	}
	name := stem
	if ext != "" {
		name += "." + ext
	}
	if strings.HasSuffix(dest, string(filepath.Separator)) || strings.HasSuffix(dest, "/") {
		return dest + name
	}
	return dest + string(filepath.Separator) + name
}

func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}

package data

import (
	"strings"
)

// EdgeScheme prefixes every detail URI stored by the spotlight feature.
const EdgeScheme = "microsoft-edge:"

// Wallpaper is one entry of the desktop spotlight rotation.
type Wallpaper struct {
	Title       string
	Description string
	Copyright   string
	DetailURI   string // microsoft-edge: prefixed detail page

	// Provenance fields, carried through untouched.
	TrackingURI    string
	LandscapeAsset string
	PortraitAsset  string
}

// ResolvedImage is what a detail page yields. Either field may be empty.
type ResolvedImage struct {
	Title     string
	ImagePath string
}

// DownloadInput is either a URL or a Wallpaper.
type DownloadInput interface {
	PageURL() string
	DetailURL() string
	Label() string

	sealed()
}

// URL is a detail page address given directly by the user.
type URL string

func (u URL) PageURL() string   { return string(u) }
func (u URL) DetailURL() string { return EncodeURL(string(u)) }
func (u URL) Label() string     { return "at " + string(u) }
func (URL) sealed()             {}

// PageURL returns the detail URI with the edge scheme stripped.
func (w Wallpaper) PageURL() string {
	return strings.ReplaceAll(w.DetailURI, EdgeScheme, "")
}

func (w Wallpaper) Label() string { return w.Title }
func (Wallpaper) sealed()         {}

// DetailURL returns the detail page URL percent-encoded for a request.
func (w Wallpaper) DetailURL() string {
	return EncodeURL(w.PageURL())
}

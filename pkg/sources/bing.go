package sources

import (
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kerbaras/spotlight/pkg/data"
	"github.com/kerbaras/spotlight/pkg/utils"
	"github.com/rs/zerolog"
)

const (
	titleSelector      = "#heading-url"
	backgroundSelector = "#bcg-img-url"
)

// PageResolver scrapes a spotlight detail page for the wallpaper title and
// the host-relative path of the full resolution image.
type PageResolver struct {
	api    *utils.API
	logger zerolog.Logger
}

// NewPageResolver creates a new PageResolver instance.
func NewPageResolver(api *utils.API, logger zerolog.Logger) *PageResolver {
	return &PageResolver{api: api, logger: logger}
}

// Resolve never fails as a whole: fields it cannot find are left empty.
func (r *PageResolver) Resolve(pageURL string) data.ResolvedImage {
	resp, err := r.api.Get(pageURL, "text/html")
	if err != nil {
		r.logger.Warn().Err(err).Str("url", pageURL).Msg("An error occurred while requesting the page")
		return data.ResolvedImage{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn().Int("status", resp.StatusCode).Str("url", pageURL).Msg("Failed to load the page")
		return data.ResolvedImage{}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		r.logger.Warn().Err(err).Str("url", pageURL).Msg("Failed to parse the page")
		return data.ResolvedImage{}
	}

	return ExtractImage(doc)
}

// ExtractImage reads the title and background image from a parsed page.
func ExtractImage(doc *goquery.Document) data.ResolvedImage {
	var out data.ResolvedImage

	if heading := doc.Find(titleSelector).First(); heading.Length() > 0 {
		out.Title = heading.Text()
	}

	if bg := doc.Find(backgroundSelector).First(); bg.Length() > 0 {
		style, _ := bg.Attr("style")
		out.ImagePath = backgroundImageURL(style)
	}

	return out
}

// backgroundImageURL returns what sits between "url(" and the next ")" in a
// style attribute declaring a background-image, without quotes.
func backgroundImageURL(style string) string {
	if !strings.Contains(style, "background-image") {
		return ""
	}
	start := strings.Index(style, "url(")
	if start < 0 {
		return ""
	}
	start += len("url(")
	end := strings.Index(style[start:], ")")
	if end < 0 {
		return ""
	}
	return strings.Trim(style[start:start+end], `'"`)
}

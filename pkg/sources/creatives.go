package sources

import (
	"encoding/json"

	"github.com/kerbaras/spotlight/pkg/data"
)

// Creative mirrors one element of the Creatives registry value.
type Creative struct {
	Ad struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		Copyright      string `json:"copyright"`
		CtaURI         string `json:"ctaUri"`
		LandscapeImage struct {
			Asset string `json:"asset"`
		} `json:"landscapeImage"`
		PortraitImage struct {
			Asset string `json:"asset"`
		} `json:"portraitImage"`
	} `json:"ad"`
	Tracking struct {
		BaseURI string `json:"baseUri"`
	} `json:"tracking"`
}

// ToWallpaper converts the registry DTO into a Wallpaper.
func (c *Creative) ToWallpaper() data.Wallpaper {
	return data.Wallpaper{
		Title:          c.Ad.Title,
		Description:    c.Ad.Description,
		Copyright:      c.Ad.Copyright,
		DetailURI:      c.Ad.CtaURI,
		TrackingURI:    c.Tracking.BaseURI,
		LandscapeAsset: c.Ad.LandscapeImage.Asset,
		PortraitAsset:  c.Ad.PortraitImage.Asset,
	}
}

// ParseCreatives decodes the JSON array stored in the Creatives value,
// keeping the source order.
func ParseCreatives(raw string) ([]data.Wallpaper, error) {
	var creatives []Creative
	if err := json.Unmarshal([]byte(raw), &creatives); err != nil {
		return nil, err
	}
	out := make([]data.Wallpaper, len(creatives))
	for i := range creatives {
		out[i] = creatives[i].ToWallpaper()
	}
	return out, nil
}

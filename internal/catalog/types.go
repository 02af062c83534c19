// Package catalog defines the theme catalog record written for the
// media player, plus the filename grammar and persistence around it.
package catalog

import "themegen/pkg/marker"

// UnresolvedThemeID is the sentinel themeId given to clips processed
// before the batch has assembled a theme. It is back-filled once the
// theme is known.
const UnresolvedThemeID = "any"

// Theme is the top-level record for one visual style collection.
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PreviewURL  string `json:"previewUrl"`
	PosterURL   string `json:"posterUrl"`
}

// Clip is one catalog entry: a short video plus the inputs it requires.
type Clip struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Category            string         `json:"category"`
	CategoryOrder       int            `json:"categoryOrder"`
	PreviewURL          string         `json:"previewUrl"`
	PosterURL           string         `json:"posterUrl"`
	ThemeID             string         `json:"themeId"`
	DefaultDuration     float64        `json:"defaultDuration"`
	IsOverlay           bool           `json:"isOverlay"`
	TierRequirement     string         `json:"tierRequirement"`
	TriggersTierUpgrade bool           `json:"triggersTierUpgrade"`
	RequiresInput       bool           `json:"requiresInput"`
	PopupMessage        string         `json:"popupMessage"`
	CustomInputs        []marker.Field `json:"customInputs"`
}

// Catalog pairs a theme with its ordered clip list.
type Catalog struct {
	Theme Theme  `json:"theme"`
	Clips []Clip `json:"clips"`
}

// HasClip reports whether a clip with the given id is already present.
func (c *Catalog) HasClip(id string) bool {
	for i := range c.Clips {
		if c.Clips[i].ID == id {
			return true
		}
	}
	return false
}

// ResolveThemeIDs back-fills the unresolved sentinel on every clip with
// the catalog's theme id.
func (c *Catalog) ResolveThemeIDs() {
	for i := range c.Clips {
		if c.Clips[i].ThemeID == UnresolvedThemeID {
			c.Clips[i].ThemeID = c.Theme.ID
		}
	}
}

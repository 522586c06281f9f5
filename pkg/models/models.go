package models

// Artwork represents one catalogued image and the galleries it belongs to
type Artwork struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	ImagePath string   `json:"image" yaml:"image"`
	Galleries []string `json:"galleries" yaml:"galleries"`
	Source    string   `json:"-" yaml:"-"`
}

// InGallery reports whether the artwork declares membership of slug
func (a Artwork) InGallery(slug string) bool {
	for _, g := range a.Galleries {
		if g == slug {
			return true
		}
	}
	return false
}

// Gallery represents a named collection of artworks. Members are never
// stored, they are derived from artwork memberships.
type Gallery struct {
	Slug     string `json:"slug" yaml:"slug"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Source   string `json:"-" yaml:"-"`
}

// HubEntry is a single link on a hub page
type HubEntry struct {
	Title     string `json:"title" yaml:"title"`
	TargetURL string `json:"url" yaml:"url"`
	Thumbnail string `json:"image" yaml:"image"`
}

// Hub represents a hand-authored navigation page
type Hub struct {
	Slug    string     `json:"slug" yaml:"slug"`
	Title   string     `json:"title" yaml:"title"`
	Entries []HubEntry `json:"entries" yaml:"entries"`
	Source  string     `json:"-" yaml:"-"`
}

// HubTile is a hub entry resolved for display
type HubTile struct {
	Title     string `json:"title" yaml:"title"`
	TargetURL string `json:"url" yaml:"url"`
	Thumbnail string `json:"thumbnail" yaml:"thumbnail"`
}

// ArtworkView is an artwork resolved for display on a gallery page
type ArtworkView struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Image string `json:"image" yaml:"image"`
}

// GalleryPage is the data a gallery template needs
type GalleryPage struct {
	Slug     string        `json:"slug" yaml:"slug"`
	Title    string        `json:"title" yaml:"title"`
	Subtitle string        `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Artworks []ArtworkView `json:"artworks" yaml:"artworks"`
}

// HubPage is the data a hub template needs
type HubPage struct {
	Slug  string    `json:"slug" yaml:"slug"`
	Title string    `json:"title" yaml:"title"`
	Tiles []HubTile `json:"tiles" yaml:"tiles"`
}

// Index represents the site index page data
type Index struct {
	Hubs      []HubPage     `json:"hubs" yaml:"hubs"`
	Galleries []GalleryPage `json:"galleries" yaml:"galleries"`
}

package catalog

import "portfolio-catalog/pkg/models"

// Members returns the artworks whose memberships contain slug, in
// registration order. An unknown slug, or one nobody declares, yields an
// empty slice.
func (c *Catalog) Members(slug string) []models.Artwork {
	members := []models.Artwork{}
	for _, a := range c.artworks {
		if a.InGallery(slug) {
			members = append(members, copyArtwork(a))
		}
	}
	return members
}

// GalleryPage resolves a gallery and its members for display. The second
// result is false when no gallery has that slug.
func (c *Catalog) GalleryPage(slug string, rule PathRule) (models.GalleryPage, bool) {
	g, ok := c.Gallery(slug)
	if !ok {
		return models.GalleryPage{}, false
	}
	page := models.GalleryPage{
		Slug:     g.Slug,
		Title:    g.Title,
		Subtitle: g.Subtitle,
		Artworks: []models.ArtworkView{},
	}
	for _, a := range c.Members(slug) {
		page.Artworks = append(page.Artworks, models.ArtworkView{
			ID:    a.ID,
			Title: a.Title,
			Image: rule.Resolve(a.ImagePath),
		})
	}
	return page, true
}

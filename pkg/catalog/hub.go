package catalog

import (
	"strings"

	"portfolio-catalog/pkg/models"
)

// HubTiles projects a hub into ordered display tiles, resolving thumbnails
// with rule. Entry order is preserved.
func HubTiles(hub models.Hub, rule PathRule) []models.HubTile {
	tiles := make([]models.HubTile, 0, len(hub.Entries))
	for _, e := range hub.Entries {
		tiles = append(tiles, models.HubTile{
			Title:     e.Title,
			TargetURL: strings.TrimSpace(e.TargetURL),
			Thumbnail: rule.Resolve(e.Thumbnail),
		})
	}
	return tiles
}

// HubPage resolves a hub for display. The second result is false when no hub
// has that slug.
func (c *Catalog) HubPage(slug string, rule PathRule) (models.HubPage, bool) {
	h, ok := c.Hub(slug)
	if !ok {
		return models.HubPage{}, false
	}
	return models.HubPage{Slug: h.Slug, Title: h.Title, Tiles: HubTiles(h, rule)}, true
}

// Index resolves every hub and gallery for display.
func (c *Catalog) Index(rule PathRule) models.Index {
	idx := models.Index{
		Hubs:      make([]models.HubPage, 0, len(c.hubs)),
		Galleries: make([]models.GalleryPage, 0, len(c.galleries)),
	}
	for _, h := range c.hubs {
		page, _ := c.HubPage(h.Slug, rule)
		idx.Hubs = append(idx.Hubs, page)
	}
	for _, g := range c.galleries {
		page, _ := c.GalleryPage(g.Slug, rule)
		idx.Galleries = append(idx.Galleries, page)
	}
	return idx
}

// resolvesTo reports whether slug names a gallery or a hub.
func (c *Catalog) resolvesTo(slug string) bool {
	if _, ok := c.galleryBySlug[slug]; ok {
		return true
	}
	_, ok := c.hubBySlug[slug]
	return ok
}

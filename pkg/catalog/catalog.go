package catalog

import (
	"errors"
	"fmt"

	"portfolio-catalog/pkg/models"
)

// Catalog is a read-only snapshot of artworks, galleries and hubs.
type Catalog struct {
	artworks  []models.Artwork
	galleries []models.Gallery
	hubs      []models.Hub

	artworkByID   map[string]int
	galleryBySlug map[string]int
	hubBySlug     map[string]int
}

// New builds a catalog from records in registration order. Artwork ids must
// be unique, and gallery and hub slugs must be unique across both kinds
// since either may be the target of a hub entry. Every collision is reported
// as a *LoadError, joined into the returned error.
func New(artworks []models.Artwork, galleries []models.Gallery, hubs []models.Hub) (*Catalog, error) {
	c := &Catalog{
		artworks:      make([]models.Artwork, 0, len(artworks)),
		galleries:     make([]models.Gallery, 0, len(galleries)),
		hubs:          make([]models.Hub, 0, len(hubs)),
		artworkByID:   make(map[string]int, len(artworks)),
		galleryBySlug: make(map[string]int, len(galleries)),
		hubBySlug:     make(map[string]int, len(hubs)),
	}

	var errs []error
	idSources := make(map[string][]string)
	var idOrder []string
	for i, a := range artworks {
		if a.ID == "" {
			errs = append(errs, &LoadError{
				Kind:    KindUnparsableRecord,
				Subject: fmt.Sprintf("artwork #%d", i+1),
				Sources: sources(a.Source),
				Err:     errors.New("artwork has no id"),
			})
			continue
		}
		if _, seen := idSources[a.ID]; !seen {
			idOrder = append(idOrder, a.ID)
			c.artworkByID[a.ID] = len(c.artworks)
			c.artworks = append(c.artworks, copyArtwork(a))
		}
		idSources[a.ID] = append(idSources[a.ID], describe(a.Source, "artwork", i))
	}
	for _, id := range idOrder {
		if len(idSources[id]) > 1 {
			errs = append(errs, &LoadError{Kind: KindDuplicateID, Subject: id, Sources: idSources[id]})
		}
	}

	slugSources := make(map[string][]string)
	var slugOrder []string
	claim := func(slug, source string) bool {
		if _, seen := slugSources[slug]; !seen {
			slugOrder = append(slugOrder, slug)
			slugSources[slug] = []string{source}
			return true
		}
		slugSources[slug] = append(slugSources[slug], source)
		return false
	}
	for i, g := range galleries {
		if g.Slug == "" {
			errs = append(errs, &LoadError{
				Kind:    KindUnparsableRecord,
				Subject: fmt.Sprintf("gallery #%d", i+1),
				Sources: sources(g.Source),
				Err:     errors.New("gallery has no slug"),
			})
			continue
		}
		if claim(g.Slug, describe(g.Source, "gallery", i)) {
			c.galleryBySlug[g.Slug] = len(c.galleries)
			c.galleries = append(c.galleries, g)
		}
	}
	for i, h := range hubs {
		if h.Slug == "" {
			errs = append(errs, &LoadError{
				Kind:    KindUnparsableRecord,
				Subject: fmt.Sprintf("hub #%d", i+1),
				Sources: sources(h.Source),
				Err:     errors.New("hub has no slug"),
			})
			continue
		}
		if claim(h.Slug, describe(h.Source, "hub", i)) {
			c.hubBySlug[h.Slug] = len(c.hubs)
			c.hubs = append(c.hubs, copyHub(h))
		}
	}
	for _, s := range slugOrder {
		if len(slugSources[s]) > 1 {
			errs = append(errs, &LoadError{Kind: KindDuplicateSlug, Subject: s, Sources: slugSources[s]})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Artworks returns all artworks in registration order.
func (c *Catalog) Artworks() []models.Artwork {
	out := make([]models.Artwork, len(c.artworks))
	for i, a := range c.artworks {
		out[i] = copyArtwork(a)
	}
	return out
}

// Galleries returns all galleries in registration order.
func (c *Catalog) Galleries() []models.Gallery {
	return append([]models.Gallery(nil), c.galleries...)
}

// Hubs returns all hubs in registration order.
func (c *Catalog) Hubs() []models.Hub {
	out := make([]models.Hub, len(c.hubs))
	for i, h := range c.hubs {
		out[i] = copyHub(h)
	}
	return out
}

// Artwork looks up an artwork by id.
func (c *Catalog) Artwork(id string) (models.Artwork, bool) {
	i, ok := c.artworkByID[id]
	if !ok {
		return models.Artwork{}, false
	}
	return copyArtwork(c.artworks[i]), true
}

// Gallery looks up a gallery by slug.
func (c *Catalog) Gallery(slug string) (models.Gallery, bool) {
	i, ok := c.galleryBySlug[slug]
	if !ok {
		return models.Gallery{}, false
	}
	return c.galleries[i], true
}

// Hub looks up a hub by slug.
func (c *Catalog) Hub(slug string) (models.Hub, bool) {
	i, ok := c.hubBySlug[slug]
	if !ok {
		return models.Hub{}, false
	}
	return copyHub(c.hubs[i]), true
}

func copyArtwork(a models.Artwork) models.Artwork {
	a.Galleries = append([]string(nil), a.Galleries...)
	return a
}

func copyHub(h models.Hub) models.Hub {
	h.Entries = append([]models.HubEntry(nil), h.Entries...)
	return h
}

func describe(source, what string, i int) string {
	if source != "" {
		return source
	}
	return fmt.Sprintf("%s #%d", what, i+1)
}

func sources(source string) []string {
	if source == "" {
		return nil
	}
	return []string{source}
}

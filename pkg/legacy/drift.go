package legacy

import (
	"fmt"
	"path"
	"strings"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/models"
)

// DriftKind classifies a disagreement between a legacy list and the catalog
type DriftKind string

const (
	DuplicateEntry DriftKind = "duplicate-entry"
	MissingArtwork DriftKind = "missing-artwork"
	Untagged       DriftKind = "untagged"
)

// Drift is one legacy list entry the catalog does not agree with
type Drift struct {
	Kind    DriftKind `json:"kind"`
	File    string    `json:"file"`
	Line    int       `json:"line"`
	Gallery string    `json:"gallery"`
	Ref     string    `json:"ref"`
	Message string    `json:"message"`
}

func (d Drift) String() string {
	return fmt.Sprintf("%s:%d: %s", path.Base(d.File), d.Line, d.Message)
}

// FindDrift compares legacy lists with the catalog. Slug entries are matched
// by artwork id, image entries by image path resolved with rule.
func FindDrift(lists []List, c *catalog.Catalog, rule catalog.PathRule) []Drift {
	byImage := make(map[string]models.Artwork)
	for _, a := range c.Artworks() {
		byImage[rule.Resolve(a.ImagePath)] = a
	}

	drift := []Drift{}
	for _, l := range lists {
		seen := make(map[string]int)
		for _, item := range l.Items {
			ref := item.Slug
			if ref == "" {
				ref = item.Image
			}
			if ref == "" {
				continue
			}
			base := Drift{File: l.File, Line: item.Line, Gallery: l.Gallery, Ref: ref}
			if first, dup := seen[ref]; dup {
				base.Kind = DuplicateEntry
				base.Message = fmt.Sprintf("duplicate entry %q (first at line %d)", ref, first)
				drift = append(drift, base)
				continue
			}
			seen[ref] = item.Line

			var (
				a  models.Artwork
				ok bool
			)
			if item.Slug != "" {
				a, ok = c.Artwork(item.Slug)
			} else {
				a, ok = byImage[rule.Resolve(item.Image)]
			}
			switch {
			case !ok:
				base.Kind = MissingArtwork
				base.Message = fmt.Sprintf("no artwork for %q", ref)
				drift = append(drift, base)
			case !a.InGallery(l.Gallery):
				base.Kind = Untagged
				base.Message = fmt.Sprintf("artwork %q not tagged for gallery %q (tagged: %s)", a.ID, l.Gallery, strings.Join(a.Galleries, ", "))
				drift = append(drift, base)
			}
		}
	}
	return drift
}

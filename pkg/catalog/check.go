package catalog

import (
	"fmt"
	"sort"
)

// Finding is a non-fatal integrity issue for a human to fix before
// publishing.
type Finding struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Subject string `json:"subject" yaml:"subject"`
	Ref     string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Entry   int    `json:"entry,omitempty" yaml:"entry,omitempty"` // 1-based hub entry, 0 when not applicable
	Message string `json:"message" yaml:"message"`
}

// Stats counts the records a report was computed over.
type Stats struct {
	Artworks  int `json:"artworks" yaml:"artworks"`
	Galleries int `json:"galleries" yaml:"galleries"`
	Hubs      int `json:"hubs" yaml:"hubs"`
}

// Report is the outcome of Check.
type Report struct {
	Stats    Stats     `json:"stats" yaml:"stats"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Clean reports whether there are no findings.
func (r Report) Clean() bool {
	return len(r.Findings) == 0
}

// Count returns the number of findings of kind k.
func (r Report) Count(k Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Check verifies the catalog invariants. It never mutates the catalog and
// returns findings in a fixed order, so unchanged input always yields an
// identical report.
func Check(c *Catalog) Report {
	r := Report{
		Stats: Stats{
			Artworks:  len(c.artworks),
			Galleries: len(c.galleries),
			Hubs:      len(c.hubs),
		},
		Findings: []Finding{},
	}

	for _, h := range c.hubs {
		for i, e := range h.Entries {
			if target, internal := TargetSlug(e.TargetURL); internal && !c.resolvesTo(target) {
				r.Findings = append(r.Findings, Finding{
					Kind:    KindBrokenHubLink,
					Subject: h.Slug,
					Ref:     e.TargetURL,
					Entry:   i + 1,
					Message: fmt.Sprintf("entry %d %q links to %q, which is neither a gallery nor a hub", i+1, e.Title, e.TargetURL),
				})
			}
			if IsRooted(e.Thumbnail) {
				r.Findings = append(r.Findings, Finding{
					Kind:    KindAmbiguousThumb,
					Subject: h.Slug,
					Ref:     e.Thumbnail,
					Entry:   i + 1,
					Message: fmt.Sprintf("entry %d %q stores a rooted thumbnail %q; store it relative to the base path", i+1, e.Title, e.Thumbnail),
				})
			}
		}
	}

	for _, a := range c.artworks {
		if len(a.Galleries) == 0 {
			r.Findings = append(r.Findings, Finding{
				Kind:    KindUnreachable,
				Subject: a.ID,
				Message: "artwork belongs to no gallery and is reachable from no page",
			})
			continue
		}
		seen := make(map[string]bool, len(a.Galleries))
		for _, g := range a.Galleries {
			if seen[g] {
				continue
			}
			seen[g] = true
			if _, ok := c.galleryBySlug[g]; !ok {
				r.Findings = append(r.Findings, Finding{
					Kind:    KindOrphanMembership,
					Subject: a.ID,
					Ref:     g,
					Message: fmt.Sprintf("member of unknown gallery %q", g),
				})
			}
		}
	}

	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Kind != b.Kind {
			return a.Kind.rank() < b.Kind.rank()
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Entry != b.Entry {
			return a.Entry < b.Entry
		}
		return a.Ref < b.Ref
	})
	return r
}

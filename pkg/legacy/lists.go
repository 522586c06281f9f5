// Package legacy reads the per-gallery image lists the site used before
// artworks owned their gallery memberships, converts them into artwork
// records and reports where the two disagree.
package legacy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/slug"
)

// Item is one entry of a legacy list. Image lists carry Image and Alt; slug
// lists carry only Slug.
type Item struct {
	Image string
	Alt   string
	Slug  string
	Line  int
}

// UnmarshalYAML accepts either a bare slug or an {image, alt} mapping
func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	i.Line = node.Line
	switch node.Kind {
	case yaml.ScalarNode:
		i.Slug = strings.TrimSpace(node.Value)
		return nil
	case yaml.MappingNode:
		var entry struct {
			Image string `yaml:"image"`
			Alt   string `yaml:"alt"`
		}
		if err := node.Decode(&entry); err != nil {
			return err
		}
		i.Image = strings.TrimSpace(entry.Image)
		i.Alt = strings.TrimSpace(entry.Alt)
		return nil
	default:
		return fmt.Errorf("line %d: list entry must be a slug or an image mapping", node.Line)
	}
}

// List is one legacy gallery file
type List struct {
	Gallery string
	File    string
	Items   []Item
}

// ReadLists parses every *.yml file in dir, in file name order. The gallery
// slug is the file stem with underscores turned into hyphens.
func ReadLists(dir string) ([]List, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &catalog.LoadError{Kind: catalog.KindMissingSource, Subject: dir, Err: err}
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var errs []error
	lists := make([]List, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			errs = append(errs, &catalog.LoadError{Kind: catalog.KindUnparsableRecord, Subject: p, Sources: []string{p}, Err: err})
			continue
		}
		var items []Item
		if err := yaml.Unmarshal(content, &items); err != nil {
			errs = append(errs, &catalog.LoadError{Kind: catalog.KindUnparsableRecord, Subject: p, Sources: []string{p}, Err: err})
			continue
		}
		lists = append(lists, List{
			Gallery: slug.FromFileName(p),
			File:    p,
			Items:   items,
		})
	}
	return lists, errors.Join(errs...)
}

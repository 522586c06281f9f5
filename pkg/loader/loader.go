package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/models"
	"portfolio-catalog/pkg/slug"
)

// Layout names the catalog sources inside a site directory.
type Layout struct {
	ArtworksDir   string // one front matter record per artwork
	DataDir       string // holds the gallery definitions and hub files
	GalleriesFile string // gallery definitions, relative to DataDir
	HubSuffix     string // hub files are DataDir/<hub><HubSuffix>
}

// DefaultLayout is the layout the site generator uses.
func DefaultLayout() Layout {
	return Layout{
		ArtworksDir:   "_artworks",
		DataDir:       "_data",
		GalleriesFile: "galleries.yml",
		HubSuffix:     "_galleries.yml",
	}
}

// Records are the raw catalog records in registration order.
type Records struct {
	Artworks  []models.Artwork
	Galleries []models.Gallery
	Hubs      []models.Hub
}

// Loader reads catalog records from a site directory.
type Loader struct {
	layout Layout
	logger *slog.Logger
}

// New creates a loader. A nil logger discards diagnostics.
func New(layout Layout, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{layout: layout, logger: logger}
}

// Build loads the site and constructs the catalog from it.
func (l *Loader) Build(siteDir string) (*catalog.Catalog, error) {
	recs, err := l.Load(siteDir)
	if err != nil {
		return nil, err
	}
	return catalog.New(recs.Artworks, recs.Galleries, recs.Hubs)
}

// Load reads every record. Each file that cannot be read or parsed becomes a
// *catalog.LoadError; all of them are collected and joined so one run shows
// every broken file.
func (l *Loader) Load(siteDir string) (*Records, error) {
	info, err := os.Stat(siteDir)
	if err != nil || !info.IsDir() {
		return nil, &catalog.LoadError{Kind: catalog.KindMissingSource, Subject: siteDir, Err: errors.New("site directory not found")}
	}

	var errs []error
	recs := &Records{}

	artworks, err := l.loadArtworks(siteDir)
	errs = append(errs, err)
	recs.Artworks = artworks

	galleries, err := l.loadGalleries(siteDir)
	errs = append(errs, err)
	recs.Galleries = galleries

	hubs, err := l.loadHubs(siteDir)
	errs = append(errs, err)
	recs.Hubs = hubs

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	l.logger.Debug("catalog records loaded",
		slog.String("site", siteDir),
		slog.Int("artworks", len(recs.Artworks)),
		slog.Int("galleries", len(recs.Galleries)),
		slog.Int("hubs", len(recs.Hubs)),
	)
	return recs, nil
}

func (l *Loader) loadArtworks(siteDir string) ([]models.Artwork, error) {
	dir := filepath.Join(siteDir, l.layout.ArtworksDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &catalog.LoadError{Kind: catalog.KindMissingSource, Subject: l.layout.ArtworksDir, Err: err}
	}

	var errs []error
	artworks := make([]models.Artwork, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		rel := relPath(siteDir, filepath.Join(dir, e.Name()))
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, unparsable(rel, err))
			continue
		}
		fm, err := parseArtwork(content)
		if err != nil {
			errs = append(errs, unparsable(rel, err))
			continue
		}

		id := strings.TrimSpace(fm.ID)
		if id == "" {
			id = strings.TrimSuffix(e.Name(), ".md")
		}
		title := strings.TrimSpace(fm.Title)
		if title == "" {
			title = slug.TitleFromSlug(id)
		}
		artworks = append(artworks, models.Artwork{
			ID:        id,
			Title:     title,
			ImagePath: strings.TrimSpace(fm.Image),
			Galleries: cleanList(fm.Galleries),
			Source:    rel,
		})
	}
	return artworks, errors.Join(errs...)
}

type galleryRecord struct {
	Slug     string `yaml:"slug"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

func (l *Loader) loadGalleries(siteDir string) ([]models.Gallery, error) {
	path := filepath.Join(siteDir, l.layout.DataDir, l.layout.GalleriesFile)
	rel := relPath(siteDir, path)
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("no gallery definitions found", slog.String("file", rel))
		return nil, nil
	}
	if err != nil {
		return nil, unparsable(rel, err)
	}

	var records []galleryRecord
	if err := yaml.Unmarshal(content, &records); err != nil {
		return nil, unparsable(rel, err)
	}
	galleries := make([]models.Gallery, 0, len(records))
	for i, r := range records {
		s := strings.TrimSpace(r.Slug)
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = slug.TitleFromSlug(s)
		}
		galleries = append(galleries, models.Gallery{
			Slug:     s,
			Title:    title,
			Subtitle: strings.TrimSpace(r.Subtitle),
			Source:   fmt.Sprintf("%s#%d", rel, i+1),
		})
	}
	return galleries, nil
}

type hubRecord struct {
	Slug    string            `yaml:"slug"`
	Title   string            `yaml:"title"`
	Entries []models.HubEntry `yaml:"entries"`
}

func (l *Loader) loadHubs(siteDir string) ([]models.Hub, error) {
	pattern := filepath.Join(siteDir, l.layout.DataDir, "*"+l.layout.HubSuffix)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &catalog.LoadError{Kind: catalog.KindMissingSource, Subject: pattern, Err: err}
	}
	sort.Strings(paths)

	var errs []error
	hubs := make([]models.Hub, 0, len(paths))
	for _, path := range paths {
		rel := relPath(siteDir, path)
		hub, err := l.parseHub(path, rel)
		if err != nil {
			errs = append(errs, unparsable(rel, err))
			continue
		}
		hubs = append(hubs, hub)
	}
	return hubs, errors.Join(errs...)
}

// parseHub accepts either a bare sequence of entries or a mapping with
// slug, title and entries.
func (l *Loader) parseHub(path, rel string) (models.Hub, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.Hub{}, err
	}

	var rec hubRecord
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return models.Hub{}, err
	}
	if len(doc.Content) > 0 {
		root := doc.Content[0]
		switch root.Kind {
		case yaml.SequenceNode:
			err = root.Decode(&rec.Entries)
		case yaml.MappingNode:
			err = root.Decode(&rec)
		default:
			err = fmt.Errorf("line %d: hub must be a list of entries or a mapping", root.Line)
		}
		if err != nil {
			return models.Hub{}, err
		}
	}

	s := strings.TrimSpace(rec.Slug)
	if s == "" {
		s = slug.FromFileName(strings.TrimSuffix(filepath.Base(path), l.layout.HubSuffix))
	}
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = slug.TitleFromSlug(s)
	}
	entries := rec.Entries
	if entries == nil {
		entries = []models.HubEntry{}
	}
	return models.Hub{Slug: s, Title: title, Entries: entries, Source: rel}, nil
}

func unparsable(rel string, err error) *catalog.LoadError {
	return &catalog.LoadError{Kind: catalog.KindUnparsableRecord, Subject: rel, Err: err}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

package services

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"
	"unicode"

	"github.com/patrickmn/go-cache"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/config"
	"portfolio-catalog/pkg/loader"
	"portfolio-catalog/pkg/models"
)

const catalogKey = "catalog"

// Service loads the site catalog and serves its projections
type Service struct {
	config       *config.Config
	loader       *loader.Loader
	logger       *slog.Logger
	catalogCache *cache.Cache
	mu           sync.RWMutex
}

// naturalLess compares strings in a way that treats numbers as numbers rather than characters
// For example: "gallery-2" < "gallery-10" when using naturalLess
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		// Skip leading spaces
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}
		if i >= len(s1) || j >= len(s2) {
			break
		}

		if unicode.IsDigit(rune(s1[i])) && unicode.IsDigit(rune(s2[j])) {
			start1, start2 := i, j
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				i++
			}
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				j++
			}
			n1, _ := strconv.Atoi(s1[start1:i])
			n2, _ := strconv.Atoi(s2[start2:j])
			if n1 != n2 {
				return n1 < n2
			}
			continue
		}

		if s1[i] != s2[j] {
			return s1[i] < s2[j]
		}
		i++
		j++
	}

	return len(s1)-i < len(s2)-j
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// NewService creates a service for the site described by cfg. A nil logger
// discards diagnostics.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	layout := loader.Layout{
		ArtworksDir:   cfg.Layout.ArtworksDir,
		DataDir:       cfg.Layout.DataDir,
		GalleriesFile: cfg.Layout.GalleriesFile,
		HubSuffix:     cfg.Layout.HubSuffix,
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = cache.NoExpiration
	}
	return &Service{
		config:       cfg,
		loader:       loader.New(layout, logger),
		logger:       logger,
		catalogCache: cache.New(ttl, 2*ttl),
	}
}

// InitService initializes the process-wide service with the given configuration
func InitService(cfg *config.Config, logger *slog.Logger) *Service {
	once.Do(func() {
		defaultService = NewService(cfg, logger)
	})
	return defaultService
}

// PathRule is the site-wide rule for resolving image paths
func (s *Service) PathRule() catalog.PathRule {
	return catalog.PathRule{BasePath: s.config.BasePath}
}

// Catalog returns the site catalog, loading it when the cached copy is
// missing or expired. Load failures are not cached.
func (s *Service) Catalog() (*catalog.Catalog, error) {
	s.mu.RLock()
	if cached, found := s.catalogCache.Get(catalogKey); found {
		s.mu.RUnlock()
		s.logger.Debug("using cached catalog")
		return cached.(*catalog.Catalog), nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, found := s.catalogCache.Get(catalogKey); found {
		return cached.(*catalog.Catalog), nil
	}

	start := time.Now()
	c, err := s.loader.Build(s.config.SiteDir)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog loaded",
		slog.String("site", s.config.SiteDir),
		slog.Int("artworks", len(c.Artworks())),
		slog.Int("galleries", len(c.Galleries())),
		slog.Int("hubs", len(c.Hubs())),
		slog.Duration("took", time.Since(start)),
	)
	s.catalogCache.Set(catalogKey, c, cache.DefaultExpiration)
	return c, nil
}

// Invalidate drops the cached catalog so the next call reloads the site
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.catalogCache.Delete(catalogKey)
	s.mu.Unlock()
}

// GetHubs returns every hub resolved for display, sorted by slug
func (s *Service) GetHubs() ([]models.HubPage, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	hubs := c.Index(s.PathRule()).Hubs
	sort.SliceStable(hubs, func(i, j int) bool {
		return naturalLess(hubs[i].Slug, hubs[j].Slug)
	})
	return hubs, nil
}

// GetHub returns a hub by its slug
func (s *Service) GetHub(slug string) (models.HubPage, error) {
	c, err := s.Catalog()
	if err != nil {
		return models.HubPage{}, err
	}
	page, ok := c.HubPage(slug, s.PathRule())
	if !ok {
		return models.HubPage{}, fmt.Errorf("%w: hub %s", ErrNotFound, slug)
	}
	return page, nil
}

// GetGalleries returns every gallery with its members, sorted by slug
func (s *Service) GetGalleries() ([]models.GalleryPage, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	galleries := c.Index(s.PathRule()).Galleries
	sort.SliceStable(galleries, func(i, j int) bool {
		return naturalLess(galleries[i].Slug, galleries[j].Slug)
	})
	return galleries, nil
}

// GetGallery returns a gallery by its slug
func (s *Service) GetGallery(slug string) (models.GalleryPage, error) {
	c, err := s.Catalog()
	if err != nil {
		return models.GalleryPage{}, err
	}
	page, ok := c.GalleryPage(slug, s.PathRule())
	if !ok {
		return models.GalleryPage{}, fmt.Errorf("%w: gallery %s", ErrNotFound, slug)
	}
	return page, nil
}

// GetIndex returns the index page data in registration order
func (s *Service) GetIndex() (models.Index, error) {
	c, err := s.Catalog()
	if err != nil {
		return models.Index{}, err
	}
	return c.Index(s.PathRule()), nil
}

// Check runs the consistency checker over the current catalog
func (s *Service) Check() (catalog.Report, error) {
	c, err := s.Catalog()
	if err != nil {
		return catalog.Report{}, err
	}
	return catalog.Check(c), nil
}

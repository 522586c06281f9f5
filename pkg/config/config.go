package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the optional per-site configuration file
const FileName = "catalog.toml"

// Config holds all configuration for the application
type Config struct {
	SiteDir    string        `toml:"-" env:"SITE_DIR"`
	BasePath   string        `toml:"base_path" env:"BASE_PATH"`
	BucketName string        `toml:"bucket" env:"BUCKET_NAME"`
	Port       string        `toml:"port" env:"PORT"`
	CacheTTL   time.Duration `toml:"-" env:"CACHE_TTL"`
	LogLevel   string        `toml:"log_level" env:"LOG_LEVEL"`
	LogFormat  string        `toml:"log_format" env:"LOG_FORMAT"`
	ViewsDir   string        `toml:"views_dir" env:"VIEWS_DIR"`

	Layout Layout `toml:"layout"`

	// CacheTTLText is the TOML form of CacheTTL ("5m", "30s").
	CacheTTLText string `toml:"cache_ttl"`
}

// Layout names the catalog sources inside the site directory
type Layout struct {
	ArtworksDir   string `toml:"artworks_dir"`
	DataDir       string `toml:"data_dir"`
	GalleriesFile string `toml:"galleries_file"`
	HubSuffix     string `toml:"hub_suffix"`
}

// ErrSiteDirNotFound is returned when the site directory does not exist
var ErrSiteDirNotFound = errors.New("site directory not found")

// ErrBucketNameNotSet is returned when a bucket is required but BUCKET_NAME is not set
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// ErrInvalidBasePath is returned when BASE_PATH is neither site-rooted nor an absolute URL
var ErrInvalidBasePath = errors.New("BASE_PATH must start with / or be an absolute URL")

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		SiteDir:   ".",
		BasePath:  "/assets/images/galleries",
		Port:      "8080",
		CacheTTL:  5 * time.Minute,
		LogLevel:  "info",
		LogFormat: "console",
		ViewsDir:  "views",
		Layout: Layout{
			ArtworksDir:   "_artworks",
			DataDir:       "_data",
			GalleriesFile: "galleries.yml",
			HubSuffix:     "_galleries.yml",
		},
	}
}

// Load loads configuration: built-in defaults, then catalog.toml in the site
// directory, then environment variables
func Load() (*Config, error) {
	cfg := Default()

	// SITE_DIR decides where catalog.toml lives, so it is read first
	if dir := os.Getenv("SITE_DIR"); dir != "" {
		cfg.SiteDir = dir
	}
	info, err := os.Stat(cfg.SiteDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSiteDirNotFound, cfg.SiteDir)
	}

	if err := cfg.loadFile(filepath.Join(cfg.SiteDir, FileName)); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if c.CacheTTLText != "" {
		ttl, err := time.ParseDuration(c.CacheTTLText)
		if err != nil {
			return fmt.Errorf("parse %s: cache_ttl: %w", path, err)
		}
		c.CacheTTL = ttl
	}
	return nil
}

// Validate checks values that would otherwise surface as confusing output
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.BasePath)
	if base != "" && !strings.HasPrefix(base, "/") {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBasePath, c.BasePath)
		}
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative: %s", c.CacheTTL)
	}
	return nil
}

// RequireBucket returns ErrBucketNameNotSet when no bucket is configured
func (c *Config) RequireBucket() error {
	if c.BucketName == "" {
		return ErrBucketNameNotSet
	}
	return nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Site index: http://localhost:%s/\n", c.Port)
	fmt.Printf("Check report: http://localhost:%s/report.json\n", c.Port)
}

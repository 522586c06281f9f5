package legacy

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"portfolio-catalog/pkg/models"
	"portfolio-catalog/pkg/slug"
)

const untitled = "Untitled"

// lockName is the lock file that keeps two migrations from writing into the
// same artworks directory at once
const lockName = ".migrate.lock"

// ErrLocked is returned when another migration holds the artworks directory
var ErrLocked = errors.New("artworks directory is locked by another migration")

// Convert collapses image lists into artwork records, one per distinct
// image. An image listed by several galleries becomes one artwork belonging
// to all of them. Artworks come back in order of first appearance; slug-only
// entries are skipped since they already name an artwork.
func Convert(lists []List) []models.Artwork {
	var order []string
	byImage := make(map[string]*models.Artwork)
	for _, l := range lists {
		for _, item := range l.Items {
			if item.Image == "" {
				continue
			}
			a, ok := byImage[item.Image]
			if !ok {
				title := item.Alt
				if title == "" {
					title = untitled
				}
				a = &models.Artwork{Title: title, ImagePath: item.Image}
				byImage[item.Image] = a
				order = append(order, item.Image)
			}
			if !a.InGallery(l.Gallery) {
				a.Galleries = append(a.Galleries, l.Gallery)
			}
		}
	}

	used := make(map[string]bool, len(order))
	artworks := make([]models.Artwork, 0, len(order))
	for _, image := range order {
		a := byImage[image]
		base := slug.Make(a.Title)
		if base == "" {
			base = slug.Make(slug.FromFileName(path.Base(image)))
		}
		if base == "" {
			base = "artwork"
		}
		a.ID = slug.Unique(base, used)
		sort.Strings(a.Galleries)
		artworks = append(artworks, *a)
	}
	return artworks
}

// WriteResult lists what WriteArtworks did, by file name
type WriteResult struct {
	Written []string
	Skipped []string
}

type artworkFile struct {
	Layout    string   `yaml:"layout"`
	Title     string   `yaml:"title"`
	Image     string   `yaml:"image"`
	Galleries []string `yaml:"galleries"`
}

// WriteArtworks writes one <id>.md file per artwork into dir. Existing files
// are never overwritten. With dryRun nothing touches the disk.
func WriteArtworks(dir string, artworks []models.Artwork, dryRun bool) (WriteResult, error) {
	var result WriteResult
	if !dryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result, fmt.Errorf("create %s: %w", dir, err)
		}
		lock := flock.New(filepath.Join(dir, lockName))
		ok, err := lock.TryLock()
		if err != nil {
			return result, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return result, ErrLocked
		}
		defer func() { _ = lock.Unlock() }()
	}
	for _, a := range artworks {
		name := a.ID + ".md"
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			result.Skipped = append(result.Skipped, name)
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("stat %s: %w", target, err)
		}

		content, err := RenderArtwork(a)
		if err != nil {
			return result, err
		}
		if !dryRun {
			if err := os.WriteFile(target, content, 0o644); err != nil {
				return result, fmt.Errorf("write %s: %w", target, err)
			}
		}
		result.Written = append(result.Written, name)
	}
	return result, nil
}

// RenderArtwork renders the front matter file for an artwork
func RenderArtwork(a models.Artwork) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err := enc.Encode(artworkFile{
		Layout:    "artwork",
		Title:     a.Title,
		Image:     a.ImagePath,
		Galleries: a.Galleries,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", a.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render %s: %w", a.ID, err)
	}
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}

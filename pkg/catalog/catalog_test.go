package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-catalog/pkg/models"
)

func diabloArtwork() models.Artwork {
	return models.Artwork{
		ID:        "a1",
		Title:     "Winter Storm",
		ImagePath: "landscapes-mt-diablo/a1.jpg",
		Galleries: []string{"landscapes-mt-diablo"},
	}
}

func diabloCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(
		[]models.Artwork{diabloArtwork()},
		[]models.Gallery{{Slug: "landscapes-mt-diablo", Title: "Mt. Diablo"}},
		[]models.Hub{{
			Slug:  "landscapes",
			Title: "Landscapes",
			Entries: []models.HubEntry{{
				Title:     "Mt. Diablo",
				TargetURL: "/landscapes-mt-diablo",
				Thumbnail: "landscapes-mt-diablo/a1.jpg",
			}},
		}},
	)
	require.NoError(t, err)
	return c
}

func TestNew_DuplicateArtworkIDIsFatal(t *testing.T) {
	first := diabloArtwork()
	first.ID = "mt-diablo-sunset"
	first.Source = "_artworks/mt-diablo-sunset.md"
	second := first
	second.Title = "Mt. Diablo Sunset (second scan)"
	second.Source = "_artworks/extra/mt-diablo-sunset.md"

	c, err := New([]models.Artwork{first, second}, nil, nil)

	require.Error(t, err)
	assert.Nil(t, c)
	loadErrs := LoadErrors(err)
	require.Len(t, loadErrs, 1)
	assert.Equal(t, KindDuplicateID, loadErrs[0].Kind)
	assert.Equal(t, "mt-diablo-sunset", loadErrs[0].Subject)
	assert.Equal(t, []string{"_artworks/mt-diablo-sunset.md", "_artworks/extra/mt-diablo-sunset.md"}, loadErrs[0].Sources)
	assert.Contains(t, err.Error(), "duplicate-id: mt-diablo-sunset")
}

func TestNew_SlugsAreUniqueAcrossGalleriesAndHubs(t *testing.T) {
	_, err := New(
		nil,
		[]models.Gallery{{Slug: "portraits", Title: "Portraits"}, {Slug: "figures"}, {Slug: "figures"}},
		[]models.Hub{{Slug: "portraits", Title: "Portraits hub"}},
	)

	loadErrs := LoadErrors(err)
	require.Len(t, loadErrs, 2)
	assert.Equal(t, KindDuplicateSlug, loadErrs[0].Kind)
	assert.Equal(t, "portraits", loadErrs[0].Subject)
	assert.Equal(t, []string{"gallery #1", "hub #1"}, loadErrs[0].Sources)
	assert.Equal(t, "figures", loadErrs[1].Subject)
}

func TestNew_MissingIdentifierIsUnparsable(t *testing.T) {
	_, err := New([]models.Artwork{{Title: "No id", Source: "_artworks/.md"}}, nil, nil)

	loadErrs := LoadErrors(err)
	require.Len(t, loadErrs, 1)
	assert.Equal(t, KindUnparsableRecord, loadErrs[0].Kind)
	assert.True(t, IsLoadError(err))
}

func TestCatalog_SnapshotIsIsolatedFromCaller(t *testing.T) {
	artworks := []models.Artwork{diabloArtwork()}
	c, err := New(artworks, []models.Gallery{{Slug: "landscapes-mt-diablo"}}, nil)
	require.NoError(t, err)

	artworks[0].Galleries[0] = "changed"
	got, ok := c.Artwork("a1")
	require.True(t, ok)
	assert.Equal(t, []string{"landscapes-mt-diablo"}, got.Galleries)

	got.Galleries[0] = "changed again"
	again, _ := c.Artwork("a1")
	assert.Equal(t, []string{"landscapes-mt-diablo"}, again.Galleries)
}

func TestCatalog_Lookups(t *testing.T) {
	c := diabloCatalog(t)

	_, ok := c.Gallery("landscapes-mt-diablo")
	assert.True(t, ok)
	_, ok = c.Hub("landscapes")
	assert.True(t, ok)
	_, ok = c.Hub("landscapes-mt-diablo")
	assert.False(t, ok)
	_, ok = c.Artwork("missing")
	assert.False(t, ok)
	assert.Len(t, c.Artworks(), 1)
	assert.Len(t, c.Galleries(), 1)
	assert.Len(t, c.Hubs(), 1)
}

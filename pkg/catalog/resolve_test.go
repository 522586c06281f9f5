package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-catalog/pkg/models"
)

func TestMembers_DiabloExample(t *testing.T) {
	c := diabloCatalog(t)

	members := c.Members("landscapes-mt-diablo")

	require.Len(t, members, 1)
	assert.Equal(t, "a1", members[0].ID)
	assert.True(t, Check(c).Clean())
}

func TestMembers_RegistrationOrderAndCrossListing(t *testing.T) {
	c, err := New(
		[]models.Artwork{
			{ID: "zebra", Title: "Zebra", Galleries: []string{"animals"}},
			{ID: "alpaca", Title: "Alpaca", Galleries: []string{"animals", "select-oils"}},
			{ID: "orchard", Title: "Orchard", Galleries: []string{"select-oils"}},
			{ID: "lost", Title: "Lost"},
		},
		[]models.Gallery{{Slug: "animals"}, {Slug: "select-oils"}},
		nil,
	)
	require.NoError(t, err)

	ids := func(as []models.Artwork) []string {
		out := []string{}
		for _, a := range as {
			out = append(out, a.ID)
		}
		return out
	}
	assert.Equal(t, []string{"zebra", "alpaca"}, ids(c.Members("animals")))
	assert.Equal(t, []string{"alpaca", "orchard"}, ids(c.Members("select-oils")))

	// every projected artwork declares the gallery it was projected for
	for _, g := range c.Galleries() {
		for _, a := range c.Members(g.Slug) {
			assert.True(t, a.InGallery(g.Slug), "%s in %s", a.ID, g.Slug)
		}
	}
	// an artwork with no memberships appears in no projection
	for _, g := range c.Galleries() {
		assert.NotContains(t, ids(c.Members(g.Slug)), "lost")
	}
}

func TestMembers_UnknownSlugIsEmptyNotNil(t *testing.T) {
	c := diabloCatalog(t)

	members := c.Members("nowhere")

	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestMembers_MergingGalleriesIsRepointingSlugs(t *testing.T) {
	artworks := []models.Artwork{
		{ID: "a", Galleries: []string{"select-oils"}},
		{ID: "b", Galleries: []string{"other-landscapes"}},
	}
	galleries := []models.Gallery{{Slug: "select-oils"}, {Slug: "other-landscapes"}}
	before, err := New(artworks, galleries, nil)
	require.NoError(t, err)
	assert.Len(t, before.Members("select-oils"), 1)

	artworks[1].Galleries = []string{"select-oils"}
	after, err := New(artworks, galleries[:1], nil)
	require.NoError(t, err)
	assert.Len(t, after.Members("select-oils"), 2)
	assert.True(t, Check(after).Clean())
}

func TestGalleryPage_ResolvesImages(t *testing.T) {
	c := diabloCatalog(t)

	page, ok := c.GalleryPage("landscapes-mt-diablo", PathRule{BasePath: "/assets/images/galleries"})

	require.True(t, ok)
	assert.Equal(t, "Mt. Diablo", page.Title)
	require.Len(t, page.Artworks, 1)
	assert.Equal(t, "/assets/images/galleries/landscapes-mt-diablo/a1.jpg", page.Artworks[0].Image)

	_, ok = c.GalleryPage("landscapes", PathRule{})
	assert.False(t, ok)
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/config"
	"portfolio-catalog/pkg/models"
	"portfolio-catalog/pkg/services"
	"portfolio-catalog/pkg/testsupport"
)

func newServer(t *testing.T, files map[string]string) (*httptest.Server, string) {
	t.Helper()
	site := testsupport.WriteSite(t, files)
	cfg := config.Default()
	cfg.SiteDir = site
	h := New(services.NewService(cfg, nil), filepath.Join("..", "..", "views"), nil)
	srv := httptest.NewServer(h.Routes(site))
	t.Cleanup(srv.Close)
	return srv, site
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestFeedHandler(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	resp, body := get(t, srv.URL+"/feed.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var galleries []models.GalleryPage
	require.NoError(t, json.Unmarshal([]byte(body), &galleries))
	require.Len(t, galleries, 1)
	assert.Equal(t, "landscapes-mt-diablo", galleries[0].Slug)
	assert.Equal(t, []models.ArtworkView{{
		ID:    "a1",
		Title: "Winter Storm",
		Image: "/assets/images/galleries/landscapes-mt-diablo/a1.jpg",
	}}, galleries[0].Artworks)
}

func TestReportHandler(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	resp, body := get(t, srv.URL+"/report.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report catalog.Report
	require.NoError(t, json.Unmarshal([]byte(body), &report))
	assert.Equal(t, catalog.Stats{Artworks: 1, Galleries: 1, Hubs: 1}, report.Stats)
	assert.Empty(t, report.Findings)
}

func TestReportHandler_LoadErrors(t *testing.T) {
	files := testsupport.With(testsupport.DiabloSite(), map[string]string{
		"_artworks/copy.md": "---\nid: a1\ntitle: Copy\n---\n",
	})
	srv, _ := newServer(t, files)

	resp, body := get(t, srv.URL+"/report.json")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload struct {
		LoadErrors []loadErrorJSON `json:"load_errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Len(t, payload.LoadErrors, 1)
	assert.Equal(t, catalog.KindDuplicateID, payload.LoadErrors[0].Kind)
	assert.Equal(t, "a1", payload.LoadErrors[0].Subject)
}

func TestIndexHandler(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	resp, body := get(t, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `<a href="/landscapes">Landscapes</a>`)
	assert.Contains(t, body, `<a href="/landscapes-mt-diablo">Mt. Diablo</a>`)
	assert.Contains(t, body, "(1 entries)")
	assert.Contains(t, body, "(1 artworks)")
}

func TestPageHandler_Gallery(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	for _, path := range []string{"/landscapes-mt-diablo", "/landscapes-mt-diablo.html"} {
		resp, body := get(t, srv.URL+path)
		require.Equal(t, http.StatusOK, resp.StatusCode, body)
		assert.Contains(t, body, "<h1>Mt. Diablo</h1>", path)
		assert.Contains(t, body, `<p class="subtitle">Oils and watercolors</p>`, path)
		assert.Contains(t, body, `<img src="/assets/images/galleries/landscapes-mt-diablo/a1.jpg"`, path)
		assert.Contains(t, body, "<figcaption>Winter Storm</figcaption>", path)
	}
}

func TestPageHandler_Hub(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	resp, body := get(t, srv.URL+"/landscapes")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "<h1>Landscapes</h1>")
	assert.Contains(t, body, `<a class="tile" href="/landscapes-mt-diablo">`)
	assert.Contains(t, body, `<img src="/assets/images/galleries/landscapes-mt-diablo/a1.jpg"`)
	assert.Contains(t, body, "<p>Mt. Diablo</p>")
}

func TestPageHandler_AbsoluteViewsDir(t *testing.T) {
	views, err := filepath.Abs(filepath.Join("..", "..", "views"))
	require.NoError(t, err)
	site := testsupport.WriteSite(t, testsupport.DiabloSite())
	cfg := config.Default()
	cfg.SiteDir = site
	srv := httptest.NewServer(New(services.NewService(cfg, nil), views, nil).Routes(site))
	defer srv.Close()

	resp, body := get(t, srv.URL+"/landscapes-mt-diablo")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "<figcaption>Winter Storm</figcaption>")
}

func TestPageHandler_UnknownSlug(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	resp, _ := get(t, srv.URL+"/seascapes")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_ServeSiteAssets(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	resp, body := get(t, srv.URL+"/assets/images/galleries/landscapes-mt-diablo/a1.jpg")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jpeg-bytes-a1", body)
}

func TestReloadHandler(t *testing.T) {
	srv, site := newServer(t, testsupport.DiabloSite())

	_, body := get(t, srv.URL+"/report.json")
	assert.Contains(t, body, `"artworks": 1`)

	extra := "---\ntitle: Loose\nimage: loose.jpg\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(site, "_artworks", "a2.md"), []byte(extra), 0o644))

	// cached until reloaded
	_, body = get(t, srv.URL+"/report.json")
	assert.Contains(t, body, `"artworks": 1`)

	resp, err := http.Post(srv.URL+"/admin/reload", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Status   string        `json:"status"`
		Stats    catalog.Stats `json:"stats"`
		Findings int           `json:"findings"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "reloaded", payload.Status)
	assert.Equal(t, 2, payload.Stats.Artworks)
	assert.Equal(t, 1, payload.Findings)
}

func TestRoutes_TagRequests(t *testing.T) {
	srv, _ := newServer(t, testsupport.DiabloSite())

	resp, _ := get(t, srv.URL+"/feed.json")
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/feed.json", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

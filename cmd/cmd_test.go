package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/testsupport"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	testsupport.ClearEnv(t)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func messySite() map[string]string {
	return testsupport.With(testsupport.DiabloSite(), map[string]string{
		"_artworks/a2.md": "---\ntitle: Loose\nimage: loose.jpg\n---\n",
	})
}

func TestCheck_CleanSite(t *testing.T) {
	site := testsupport.WriteSite(t, testsupport.DiabloSite())

	res := run(t, "check", "--site", site)

	require.NoError(t, res.err)
	assert.Equal(t, "Checked 1 artworks, 1 galleries, 1 hubs\nNo findings.\n", res.stdout)
}

func TestCheck_FindingsFailOnlyWhenStrict(t *testing.T) {
	site := testsupport.WriteSite(t, messySite())

	res := run(t, "check", "--site", site)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[unreachable-artwork] a2")

	res = run(t, "check", "--site", site, "--strict")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
}

func TestCheck_JSON(t *testing.T) {
	site := testsupport.WriteSite(t, messySite())

	res := run(t, "check", "--site", site, "--format", "json")
	require.NoError(t, res.err)

	var report catalog.Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, 1, report.Count(catalog.KindUnreachable))
}

func TestCheck_DuplicateIDIsFatal(t *testing.T) {
	files := testsupport.With(testsupport.DiabloSite(), map[string]string{
		"_artworks/copy.md": "---\nid: a1\ntitle: Copy\n---\n",
	})
	site := testsupport.WriteSite(t, files)

	res := run(t, "check", "--site", site)

	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.stderr, "duplicate-id: a1 (_artworks/a1.md, _artworks/copy.md)")
	assert.Empty(t, res.stdout)
}

func TestRoot_InvalidFormat(t *testing.T) {
	site := testsupport.WriteSite(t, testsupport.DiabloSite())

	res := run(t, "check", "--site", site, "--format", "xml")

	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
}

func TestRoot_MissingSite(t *testing.T) {
	res := run(t, "list-hubs", "--site", filepath.Join(t.TempDir(), "nope"))

	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.err.Error(), "site directory not found")
}

func TestListCommands(t *testing.T) {
	site := testsupport.WriteSite(t, testsupport.DiabloSite())

	res := run(t, "list-galleries", "--site", site)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "landscapes-mt-diablo")
	assert.Contains(t, res.stdout, "Total: 1 galleries, 1 memberships")

	res = run(t, "list-hubs", "--site", site)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "landscapes")
	assert.Contains(t, res.stdout, "Total: 1 hubs")
}

func TestShowGallery(t *testing.T) {
	site := testsupport.WriteSite(t, testsupport.DiabloSite())

	res := run(t, "show-gallery", "landscapes-mt-diablo", "--site", site)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Gallery: Mt. Diablo\n")
	assert.Contains(t, res.stdout, "Subtitle: Oils and watercolors\n")
	assert.Contains(t, res.stdout, "/assets/images/galleries/landscapes-mt-diablo/a1.jpg")

	res = run(t, "show-gallery", "seascapes", "--site", site)
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
}

func TestShowHub_BasePathFlag(t *testing.T) {
	site := testsupport.WriteSite(t, testsupport.DiabloSite())

	res := run(t, "show-hub", "landscapes", "--site", site, "--base-path", "https://cdn.example.com/img", "--format", "json")
	require.NoError(t, res.err)

	var hub struct {
		Tiles []struct {
			URL       string `json:"url"`
			Thumbnail string `json:"thumbnail"`
		} `json:"tiles"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &hub))
	require.Len(t, hub.Tiles, 1)
	assert.Equal(t, "/landscapes-mt-diablo", hub.Tiles[0].URL)
	assert.Equal(t, "https://cdn.example.com/img/landscapes-mt-diablo/a1.jpg", hub.Tiles[0].Thumbnail)
}

func TestExport(t *testing.T) {
	site := testsupport.WriteSite(t, testsupport.DiabloSite())

	res := run(t, "export", "yaml", "--site", site)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "slug: landscapes-mt-diablo")

	res = run(t, "export", "--site", site)
	require.NoError(t, res.err)
	var index struct {
		Hubs      []json.RawMessage `json:"hubs"`
		Galleries []json.RawMessage `json:"galleries"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &index))
	assert.Len(t, index.Hubs, 1)
	assert.Len(t, index.Galleries, 1)

	res = run(t, "export", "toml", "--site", site)
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
}

func TestVerifyAssets(t *testing.T) {
	site := testsupport.WriteSite(t, testsupport.DiabloSite())

	res := run(t, "verify-assets", "--site", site, "--duplicates")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "All image references are valid.")
	assert.Contains(t, res.stdout, "No duplicate images found.")

	require.NoError(t, os.Remove(filepath.Join(site, "assets", "images", "galleries", "landscapes-mt-diablo", "a1.jpg")))
	res = run(t, "verify-assets", "--site", site)
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stdout, "missing-image")
	assert.Contains(t, res.stdout, "missing-thumbnail")
}

func TestMigrateLegacy(t *testing.T) {
	files := map[string]string{
		"_data/galleries.yml":                      "- slug: landscapes-mt-diablo\n  title: Mt. Diablo\n",
		"_data/galleries/landscapes_mt_diablo.yml": "- image: landscapes-mt-diablo/a1.jpg\n  alt: Winter Storm\n",
		"_artworks/.keep":                          "",
	}
	site := testsupport.WriteSite(t, files)
	target := filepath.Join(site, "_artworks", "winter-storm.md")

	res := run(t, "migrate-legacy", "--site", site, "--dry-run")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Would write 1 artwork files")
	assert.NoFileExists(t, target)

	res = run(t, "migrate-legacy", "--site", site)
	require.NoError(t, res.err)
	assert.FileExists(t, target)

	res = run(t, "migrate-legacy", "--site", site, "--check-tags")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "All 1 legacy lists agree with the catalog.")

	res = run(t, "check", "--site", site)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No findings.")
}

func TestMigrateLegacy_CheckTagsReportsDrift(t *testing.T) {
	files := testsupport.With(testsupport.DiabloSite(), map[string]string{
		"_data/galleries/favorites.yml": "- a1\n- ghost\n",
	})
	site := testsupport.WriteSite(t, files)

	res := run(t, "migrate-legacy", "--site", site, "--check-tags", "--format", "json")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))

	var drift []struct {
		Kind string `json:"kind"`
		Ref  string `json:"ref"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &drift))
	require.Len(t, drift, 2)
	assert.Equal(t, "untagged", drift[0].Kind)
	assert.Equal(t, "missing-artwork", drift[1].Kind)
	assert.Equal(t, "ghost", drift[1].Ref)
}

// Package testsupport builds throwaway site directories for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteSite writes files (slash-separated path -> content) under a fresh
// temporary directory and returns its path.
func WriteSite(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

// DiabloSite is a consistent one-gallery site: artwork a1 in gallery
// landscapes-mt-diablo, linked from the landscapes hub.
func DiabloSite() map[string]string {
	return map[string]string{
		"_artworks/a1.md": `---
layout: artwork
title: "Winter Storm"
image: landscapes-mt-diablo/a1.jpg
galleries:
  - landscapes-mt-diablo
---
`,
		"_data/galleries.yml": `- slug: landscapes-mt-diablo
  title: Mt. Diablo
  subtitle: Oils and watercolors
`,
		"_data/landscapes_galleries.yml": `- title: Mt. Diablo
  url: /landscapes-mt-diablo
  image: landscapes-mt-diablo/a1.jpg
`,
		"assets/images/galleries/landscapes-mt-diablo/a1.jpg": "jpeg-bytes-a1",
	}
}

// With returns a copy of base with extra files added or replaced.
func With(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

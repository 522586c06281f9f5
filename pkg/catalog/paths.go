package catalog

import (
	"net/url"
	"path"
	"strings"
)

// PathRule is the single site-wide rule for turning stored asset paths into
// display paths. Relative paths are joined onto BasePath. Rooted paths are
// used as they are, so a rooted path under BasePath resolves exactly like
// its relative form. Absolute URLs pass through untouched.
type PathRule struct {
	BasePath string
}

// Resolve applies the rule to p.
func (r PathRule) Resolve(p string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return ""
	case IsExternal(p):
		return p
	case IsRooted(p):
		return path.Clean(p)
	}

	base := strings.TrimSpace(r.BasePath)
	if IsExternal(base) {
		return strings.TrimRight(base, "/") + "/" + strings.TrimPrefix(path.Clean(p), "/")
	}
	return path.Join("/", base, p)
}

// IsExternal reports whether p is a protocol-relative URL or carries a
// scheme, as in "https://…", "mailto:…" or "tel:…".
func IsExternal(p string) bool {
	if strings.HasPrefix(p, "//") {
		return true
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme != ""
}

// IsRooted reports whether p is a site-rooted path such as
// "/assets/images/galleries/a.jpg".
func IsRooted(p string) bool {
	return strings.HasPrefix(p, "/") && !IsExternal(p)
}

// TargetSlug extracts the catalog slug a hub entry links to: the last path
// segment, without query, fragment or ".html" suffix. The second result is
// false for external URLs, which are not catalog references.
func TargetSlug(target string) (string, bool) {
	target = strings.TrimSpace(target)
	if IsExternal(target) {
		return "", false
	}
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	target = strings.Trim(target, "/")
	if i := strings.LastIndex(target, "/"); i >= 0 {
		target = target[i+1:]
	}
	return strings.TrimSuffix(target, ".html"), true
}

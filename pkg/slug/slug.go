// Package slug builds the identifiers used as both lookup keys and URL
// segments for artworks, galleries and hubs.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs; longer ones are cut on a word boundary.
const MaxLength = 60

var (
	dropped    = strings.NewReplacer("'", "", "’", "", `"`, "", ",", "", "(", "", ")", "", "[", "", "]", "", "&", "")
	separators = regexp.MustCompile(`[^a-z0-9]+`)
)

// Make converts free text (usually an artwork title) into a slug.
func Make(text string) string {
	s := strings.ToLower(stripMarks(text))
	s = dropped.Replace(s)
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxLength {
		s = s[:MaxLength]
		if i := strings.LastIndex(s, "-"); i > 0 {
			s = s[:i]
		}
	}
	return s
}

// Unique returns base, or base with the lowest numeric suffix starting at 2
// that is not yet taken. The returned slug is recorded in used.
func Unique(base string, used map[string]bool) string {
	candidate := base
	for n := 2; used[candidate]; n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	used[candidate] = true
	return candidate
}

// FromFileName derives a slug-like id from a data file name:
// "cal_rowing.yml" becomes "cal-rowing".
func FromFileName(name string) string {
	base := name
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "_", "-")
}

// TitleFromSlug produces a display title for records that carry none.
func TitleFromSlug(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

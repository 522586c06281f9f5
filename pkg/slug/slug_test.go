package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain title", "Winter Storm Over Mt. Diablo", "winter-storm-over-mt-diablo"},
		{"diacritics and brackets", "Café (Study) & Sketch", "cafe-study-sketch"},
		{"apostrophe dropped", "Artist's View", "artists-view"},
		{"leading and trailing junk", "  --Sunset!-- ", "sunset"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMake_TruncatesOnWordBoundary(t *testing.T) {
	got := Make(strings.Repeat("word ", 20))

	assert.LessOrEqual(t, len(got), MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.Equal(t, strings.Repeat("word-", 11)+"word", got)
}

func TestUnique(t *testing.T) {
	used := map[string]bool{}

	assert.Equal(t, "sunset", Unique("sunset", used))
	assert.Equal(t, "sunset-2", Unique("sunset", used))
	assert.Equal(t, "sunset-3", Unique("sunset", used))
	assert.True(t, used["sunset-2"])
}

func TestFromFileName(t *testing.T) {
	assert.Equal(t, "cal-rowing", FromFileName("cal_rowing.yml"))
	assert.Equal(t, "campus-drawings", FromFileName("_data/galleries/campus_drawings.yml"))
	assert.Equal(t, "mt-diablo-sunset", FromFileName("mt-diablo-sunset.md"))
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Landscapes Mt Diablo", TitleFromSlug("landscapes-mt-diablo"))
}

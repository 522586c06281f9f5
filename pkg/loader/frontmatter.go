package loader

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

var (
	errNoFrontMatter = errors.New("file does not start with a front matter block")
	errUnterminated  = errors.New("front matter block is not closed")
	frontMatterFence = []byte("---")
	byteOrderMark    = []byte("\xef\xbb\xbf")
)

// splitFrontMatter returns the YAML between the opening and closing "---"
// fences and the body after them.
func splitFrontMatter(content []byte) ([]byte, []byte, error) {
	content = bytes.TrimPrefix(content, byteOrderMark)
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	first, rest, ok := bytes.Cut(content, []byte("\n"))
	if !ok || !bytes.Equal(bytes.TrimSpace(first), frontMatterFence) {
		return nil, nil, errNoFrontMatter
	}

	var head [][]byte
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimRight(line, " \t"), frontMatterFence) {
			return bytes.Join(head, []byte("\n")), rest, nil
		}
		head = append(head, line)
	}
	return nil, nil, errUnterminated
}

// artworkFrontMatter is the subset of artwork front matter the catalog reads.
// Layout and other template keys are ignored.
type artworkFrontMatter struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Image     string   `yaml:"image"`
	Galleries []string `yaml:"galleries"`
}

func parseArtwork(content []byte) (artworkFrontMatter, error) {
	var fm artworkFrontMatter
	head, _, err := splitFrontMatter(content)
	if err != nil {
		return fm, err
	}
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return fm, err
	}
	return fm, nil
}

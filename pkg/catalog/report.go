package catalog

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders the report as the plain summary list printed by the
// check command.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Checked %d artworks, %d galleries, %d hubs\n", r.Stats.Artworks, r.Stats.Galleries, r.Stats.Hubs)
	if r.Clean() {
		b.WriteString("No findings.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Findings (%d):\n", len(r.Findings))
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", f.Kind, f.Subject, f.Message)
	}
	fmt.Fprintf(&b, "Summary: %s\n", r.summary())
	_, err := io.WriteString(w, b.String())
	return err
}

func (r Report) summary() string {
	var parts []string
	for _, k := range kindOrder {
		if n := r.Count(k); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	return strings.Join(parts, ", ")
}

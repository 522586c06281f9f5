package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError is a fatal problem with the catalog source data. Generation must
// stop rather than silently dropping or overwriting a record.
type LoadError struct {
	Kind    Kind
	Subject string   // the colliding identifier, or the offending file
	Sources []string // files involved, in registration order
	Err     error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Subject)
	if len(e.Sources) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Sources, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadErrors flattens err into the load errors it carries. Errors joined with
// errors.Join are walked; anything that is not a *LoadError is skipped.
func LoadErrors(err error) []*LoadError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*LoadError
		for _, e := range joined.Unwrap() {
			out = append(out, LoadErrors(e)...)
		}
		return out
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return []*LoadError{loadErr}
	}
	return nil
}

// IsLoadError reports whether err carries at least one *LoadError.
func IsLoadError(err error) bool {
	return len(LoadErrors(err)) > 0
}

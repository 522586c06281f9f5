package assets

import (
	"context"
	"net/url"
	"path"
	"sort"
	"strings"

	"portfolio-catalog/pkg/catalog"
)

// ProblemKind classifies an asset problem
type ProblemKind string

const (
	MissingImage     ProblemKind = "missing-image"
	MissingThumbnail ProblemKind = "missing-thumbnail"
	UnreadableImage  ProblemKind = "unreadable-image"
	BlankImage       ProblemKind = "blank-image"
	SharedImage      ProblemKind = "shared-image"
)

// Problem is one asset reference that does not hold up
type Problem struct {
	Kind    ProblemKind `json:"kind"`
	Subject string      `json:"subject"`
	Entry   int         `json:"entry,omitempty"`
	Ref     string      `json:"ref"`
	Object  string      `json:"object"`
	Similar []string    `json:"similar,omitempty"`
	Shared  []string    `json:"shared,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

// Options tune Verify
type Options struct {
	// Decode opens every referenced image and reports files that do not
	// decode or are a single solid color.
	Decode bool
}

// ObjectName maps an image reference to the store object it names. External
// references and empty ones have no object.
func ObjectName(rule catalog.PathRule, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || catalog.IsExternal(ref) {
		return "", false
	}
	if catalog.IsExternal(rule.BasePath) {
		if catalog.IsRooted(ref) {
			return strings.TrimPrefix(path.Clean(ref), "/"), true
		}
		u, err := url.Parse(rule.BasePath)
		if err != nil {
			return "", false
		}
		return strings.TrimPrefix(path.Join("/", u.Path, ref), "/"), true
	}
	return strings.TrimPrefix(rule.Resolve(ref), "/"), true
}

// Verify checks that every artwork image and hub thumbnail exists in store.
// Problems come back in catalog order: artworks first, then images claimed
// by more than one artwork, then hub entries.
func Verify(ctx context.Context, store Store, c *catalog.Catalog, rule catalog.PathRule, opts Options) ([]Problem, error) {
	objects, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(objects))
	byDir := make(map[string][]string)
	for _, o := range objects {
		present[o.Name] = true
		dir := path.Dir(o.Name)
		byDir[dir] = append(byDir[dir], path.Base(o.Name))
	}

	v := &verifier{store: store, opts: opts, present: present, byDir: byDir, decoded: map[string]*Problem{}}
	problems := []Problem{}
	owners := make(map[string][]string)
	var shared []Problem
	for _, a := range c.Artworks() {
		name, ok := ObjectName(rule, a.ImagePath)
		if !ok {
			continue
		}
		if ids := owners[name]; len(ids) == 0 {
			shared = append(shared, Problem{Kind: SharedImage, Subject: a.ID, Ref: a.ImagePath, Object: name})
		}
		owners[name] = append(owners[name], a.ID)

		p := Problem{Kind: MissingImage, Subject: a.ID, Ref: a.ImagePath, Object: name}
		if found := v.check(ctx, &p); found {
			problems = append(problems, p)
		}
	}
	problems = append(problems, sharedImages(shared, owners)...)
	for _, h := range c.Hubs() {
		for i, e := range h.Entries {
			name, ok := ObjectName(rule, e.Thumbnail)
			if !ok {
				continue
			}
			p := Problem{Kind: MissingThumbnail, Subject: h.Slug, Entry: i + 1, Ref: e.Thumbnail, Object: name}
			if found := v.check(ctx, &p); found {
				problems = append(problems, p)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return problems, nil
}

// sharedImages keeps the candidates whose object is claimed by more than one
// artwork. The first artwork stays the subject; the others are listed in
// Shared.
func sharedImages(candidates []Problem, owners map[string][]string) []Problem {
	var out []Problem
	for _, p := range candidates {
		ids := owners[p.Object]
		if len(ids) < 2 {
			continue
		}
		p.Shared = append([]string(nil), ids[1:]...)
		p.Detail = "also used by " + strings.Join(p.Shared, ", ")
		out = append(out, p)
	}
	return out
}

type verifier struct {
	store   Store
	opts    Options
	present map[string]bool
	byDir   map[string][]string
	decoded map[string]*Problem
}

// check fills in p and reports whether it is a real problem
func (v *verifier) check(ctx context.Context, p *Problem) bool {
	if !v.present[p.Object] {
		p.Similar = v.similar(p.Object)
		return true
	}
	if !v.opts.Decode {
		return false
	}
	found, seen := v.decoded[p.Object]
	if !seen {
		found = inspect(ctx, v.store, p.Object)
		v.decoded[p.Object] = found
	}
	if found == nil {
		return false
	}
	p.Kind = found.Kind
	p.Detail = found.Detail
	return true
}

// similar lists files in the same directory whose stem contains, or is
// contained in, the missing file's stem
func (v *verifier) similar(name string) []string {
	stem := fileStem(path.Base(name))
	var out []string
	for _, candidate := range v.byDir[path.Dir(name)] {
		other := fileStem(candidate)
		if other == "" || stem == "" {
			continue
		}
		if strings.Contains(other, stem) || strings.Contains(stem, other) {
			out = append(out, candidate)
		}
	}
	sort.Strings(out)
	return out
}

func fileStem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DuplicateSet is a group of image objects with identical content
type DuplicateSet struct {
	Hash  string   `json:"hash"`
	Size  int64    `json:"size_bytes"`
	Files []string `json:"files"`
}

// Wasted is the space the extra copies take
func (d DuplicateSet) Wasted() int64 {
	return d.Size * int64(len(d.Files)-1)
}

// Duplicates hashes every image object under prefix and returns the groups
// that share a SHA-256 digest, largest groups first.
func Duplicates(ctx context.Context, store Store, prefix string) ([]DuplicateSet, error) {
	objects, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	prefix = strings.Trim(prefix, "/")

	byHash := make(map[string]*DuplicateSet)
	for _, o := range objects {
		if prefix != "" && !strings.HasPrefix(o.Name, prefix+"/") {
			continue
		}
		if !IsImage(o.Name) {
			continue
		}
		sum, err := hashObject(ctx, store, o.Name)
		if err != nil {
			return nil, err
		}
		set, ok := byHash[sum]
		if !ok {
			set = &DuplicateSet{Hash: sum, Size: o.Size}
			byHash[sum] = set
		}
		set.Files = append(set.Files, o.Name)
	}

	sets := []DuplicateSet{}
	for _, set := range byHash {
		if len(set.Files) < 2 {
			continue
		}
		sort.Strings(set.Files)
		sets = append(sets, *set)
	}
	sort.Slice(sets, func(i, j int) bool {
		if len(sets[i].Files) != len(sets[j].Files) {
			return len(sets[i].Files) > len(sets[j].Files)
		}
		return sets[i].Files[0] < sets[j].Files[0]
	})
	return sets, nil
}

func hashObject(ctx context.Context, store Store, name string) (string, error) {
	r, err := store.Open(ctx, name)
	if err != nil {
		return "", err
	}
	defer r.Close()
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash %s: %w", name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

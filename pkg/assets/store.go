// Package assets checks the image files a catalog refers to. Images live in
// a Store whose object names are site paths without the leading slash, so
// "/assets/images/galleries/a1.jpg" is the object "assets/images/galleries/a1.jpg".
package assets

import (
	"context"
	"io"
	"path"
	"strings"
)

// Object is one file in a store
type Object struct {
	Name string
	Size int64
}

// Store lists and opens image objects
type Store interface {
	List(ctx context.Context) ([]Object, error)
	// Open returns an error wrapping fs.ErrNotExist when name is absent.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether name has an image file extension
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

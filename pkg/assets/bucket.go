package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// BucketStore serves objects from a Google Cloud Storage bucket. Object names
// mirror site paths below Prefix.
type BucketStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// NewBucketStore connects to the named bucket using default credentials
func NewBucketStore(ctx context.Context, bucketName, prefix string) (*BucketStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &BucketStore{
		client: client,
		bucket: client.Bucket(bucketName),
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// Close releases the storage client
func (b *BucketStore) Close() error {
	return b.client.Close()
}

func (b *BucketStore) objectName(name string) string {
	if b.prefix == "" {
		return name
	}
	return b.prefix + "/" + name
}

// List returns every object below the prefix, sorted by name
func (b *BucketStore) List(ctx context.Context) ([]Object, error) {
	query := &storage.Query{}
	if b.prefix != "" {
		query.Prefix = b.prefix + "/"
	}
	it := b.bucket.Objects(ctx, query)

	var objects []Object
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		name := attrs.Name
		if b.prefix != "" {
			name = strings.TrimPrefix(name, b.prefix+"/")
		}
		objects = append(objects, Object{Name: name, Size: attrs.Size})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })
	return objects, nil
}

// Open opens the named object for reading
func (b *BucketStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	reader, err := b.bucket.Object(b.objectName(name)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("object %s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("Object(%q).NewReader: %w", name, err)
	}
	return reader, nil
}

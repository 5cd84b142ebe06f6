package source

import (
	"context"
	"fmt"
	"io"

	"cover-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Bucket reads an archive that was uploaded to object storage under a prefix.
type Bucket struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucket creates a bucket archive source.
func NewBucket(client storage.Client, bucket, prefix string) *Bucket {
	return &Bucket{client: client, bucket: bucket, prefix: prefix}
}

// Name returns the source name.
func (b *Bucket) Name() string {
	return "bucket"
}

// Entries reads and decodes <prefix>/maimai_songs.json.
func (b *Bucket) Entries(ctx context.Context) ([]Entry, error) {
	key := storage.ObjectKey(b.prefix, CatalogFile)
	data, err := b.read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read bucket catalog %s: %w", key, err)
	}
	return DecodeCatalog(data)
}

// Fetch reads <prefix>/<imageID>. A missing object yields ErrNotFound.
func (b *Bucket) Fetch(ctx context.Context, imageID string) ([]byte, error) {
	if err := ValidateImageID(imageID); err != nil {
		return nil, err
	}
	key := storage.ObjectKey(b.prefix, imageID)
	data, err := b.read(ctx, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, b.bucket, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (b *Bucket) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// Package gcs stores one JSON object per list in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/rezkam/listly/internal/storage/document"
)

const ext = ".json"

// Store is a GCS-backed list repository.
type Store struct {
	*document.Collection
	client *storage.Client
}

// NewStore creates a new GCS store.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
func NewStore(ctx context.Context, bucketName, prefix string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return NewStoreWithClient(client, bucketName, prefix), nil
}

// NewStoreWithClient creates a store using an existing client.
func NewStoreWithClient(client *storage.Client, bucketName, prefix string) *Store {
	b := &bucket{handle: client.Bucket(bucketName), prefix: prefix}
	return &Store{Collection: document.NewCollection(b), client: client}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// bucket implements document.Blobs with one object per key.
type bucket struct {
	handle *storage.BucketHandle
	prefix string
}

func (b *bucket) object(id string) *storage.ObjectHandle {
	return b.handle.Object(b.prefix + id + ext)
}

func (b *bucket) Get(ctx context.Context, id string) ([]byte, error) {
	r, err := b.object(id).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, document.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

func (b *bucket) Put(ctx context.Context, id string, data []byte) error {
	w := b.object(id).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

func (b *bucket) Delete(ctx context.Context, id string) error {
	err := b.object(id).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return document.ErrBlobNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (b *bucket) Exists(ctx context.Context, id string) (bool, error) {
	_, err := b.object(id).Attrs(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrObjectNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
}

func (b *bucket) Keys(ctx context.Context) ([]string, error) {
	it := b.handle.Objects(ctx, &storage.Query{Prefix: b.prefix})

	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		name := strings.TrimPrefix(attrs.Name, b.prefix)
		if !strings.HasSuffix(name, ext) || strings.Contains(name, "/") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	return keys, nil
}

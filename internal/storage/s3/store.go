// Package s3 stores one JSON object per list in an S3-compatible bucket
// (AWS S3, MinIO, R2).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rezkam/listly/internal/storage/document"
)

const ext = ".json"

// Config holds the S3 connection settings.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Prefix          string
	UseSSL          bool
}

// Store is an S3-backed list repository.
type Store struct {
	*document.Collection
}

// NewStore connects to the endpoint and creates the bucket if it is missing.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	b := &bucket{client: client, name: cfg.Bucket, prefix: cfg.Prefix}
	return &Store{Collection: document.NewCollection(b)}, nil
}

// bucket implements document.Blobs with one object per key.
type bucket struct {
	client *minio.Client
	name   string
	prefix string
}

func (b *bucket) key(id string) string {
	return b.prefix + id + ext
}

func (b *bucket) Get(ctx context.Context, id string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.name, b.key(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "read")
	}
	defer obj.Close()

	// GetObject is lazy: a missing key surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapError(err, "read")
	}
	return data, nil
}

func (b *bucket) Put(ctx context.Context, id string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.name, b.key(id), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// Delete succeeds for missing keys; S3 does not report them.
func (b *bucket) Delete(ctx context.Context, id string) error {
	if err := b.client.RemoveObject(ctx, b.name, b.key(id), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (b *bucket) Exists(ctx context.Context, id string) (bool, error) {
	_, err := b.client.StatObject(ctx, b.name, b.key(id), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat object: %w", err)
}

func (b *bucket) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range b.client.ListObjects(ctx, b.name, minio.ListObjectsOptions{Prefix: b.prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, b.prefix)
		if !strings.HasSuffix(name, ext) || strings.Contains(name, "/") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	return keys, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

func mapError(err error, op string) error {
	if isNotFound(err) {
		return document.ErrBlobNotFound
	}
	return fmt.Errorf("failed to %s object: %w", op, err)
}

// Package redis stores one JSON string per list in Redis, with a set
// indexing the list IDs.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rezkam/listly/internal/storage/document"
)

// DefaultKeyPrefix namespaces every key the store writes.
const DefaultKeyPrefix = "listly:"

// Store is a Redis-backed list repository.
type Store struct {
	*document.Collection
	client *redis.Client
}

// NewStore connects to redisURL and verifies the connection.
func NewStore(ctx context.Context, redisURL, keyPrefix string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewStoreWithClient(client, keyPrefix), nil
}

// NewStoreWithClient creates a store from an existing Redis client.
func NewStoreWithClient(client *redis.Client, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	kv := &keyspace{client: client, prefix: keyPrefix}
	return &Store{Collection: document.NewCollection(kv), client: client}
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// keyspace implements document.Blobs: list:<id> holds the document and the
// ids set indexes them.
type keyspace struct {
	client *redis.Client
	prefix string
}

func (k *keyspace) key(id string) string {
	return k.prefix + "list:" + id
}

func (k *keyspace) index() string {
	return k.prefix + "ids"
}

func (k *keyspace) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := k.client.Get(ctx, k.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, document.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return data, nil
}

func (k *keyspace) Put(ctx context.Context, id string, data []byte) error {
	_, err := k.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, k.key(id), data, 0)
		pipe.SAdd(ctx, k.index(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save list: %w", err)
	}
	return nil
}

func (k *keyspace) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := k.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, k.key(id))
		pipe.SRem(ctx, k.index(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if del.Val() == 0 {
		return document.ErrBlobNotFound
	}
	return nil
}

func (k *keyspace) Exists(ctx context.Context, id string) (bool, error) {
	n, err := k.client.Exists(ctx, k.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("check list: %w", err)
	}
	return n > 0, nil
}

func (k *keyspace) Keys(ctx context.Context) ([]string, error) {
	ids, err := k.client.SMembers(ctx, k.index()).Result()
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	return ids, nil
}

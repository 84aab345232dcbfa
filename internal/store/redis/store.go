package redis

import (
	"github.com/redis/go-redis/v9"
)

// Store implements store.Store on top of Redis. Documents are JSON
// blobs keyed by id; per-owner membership lives in Redis sets so that
// fetch-all-by-owner never scans the keyspace.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed document store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

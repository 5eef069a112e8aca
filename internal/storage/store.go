// Package storage holds the key-value backends that keep visitor state
// (booking lists, consent flags) between requests.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store reads and writes opaque values by string key. Values are JSON
// documents produced by the state package; backends treat them as bytes.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

// Backend names accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendDynamoDB = "dynamodb"
)

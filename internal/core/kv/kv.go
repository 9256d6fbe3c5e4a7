// Package kv defines the persistence port for client-session state:
// bulk selections, restoration snapshots, and other small JSON values
// that must survive a process restart. Implementations live in
// internal/data/stores; tests substitute the in-memory store.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key does not exist or has expired.
var ErrNotFound = errors.New("kv: key not found")

// KV is the interface for a persistent key-value store. Keys are strings,
// values are JSON-serializable. Expired entries behave as missing.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	SetTTL(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

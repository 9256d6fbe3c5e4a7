package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deckrev/deckrev/internal/core/kv"
)

// MemoryKV is an in-memory kv.KV used in tests and when persistence is
// disabled. Values round-trip through JSON so type behavior matches the
// SQLite store exactly.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	value     []byte
	expiresAt *time.Time
}

var _ kv.KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]memEntry)}
}

// Get retrieves and deserializes a value by key.
func (s *MemoryKV) Get(_ context.Context, key string, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		delete(s.entries, key)
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	if err := json.Unmarshal(e.value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value with no expiry.
func (s *MemoryKV) Set(_ context.Context, key string, value any) error {
	return s.set(key, value, nil)
}

// SetTTL stores a value that expires after the given duration.
func (s *MemoryKV) SetTTL(_ context.Context, key string, value any, ttl time.Duration) error {
	exp := time.Now().Add(ttl)
	return s.set(key, value, &exp)
}

// Delete removes a key.
func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Has returns whether a key exists and is not expired.
func (s *MemoryKV) Has(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if s.expired(e) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}

// ListKeys returns all non-expired keys with the given prefix in sorted order.
func (s *MemoryKV) ListKeys(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for k, e := range s.entries {
		if s.expired(e) || !strings.HasPrefix(k, prefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryKV) set(key string, value any, expiresAt *time.Time) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{value: data, expiresAt: expiresAt}
	return nil
}

func (s *MemoryKV) expired(e memEntry) bool {
	return e.expiresAt != nil && e.expiresAt.Before(time.Now())
}

// Package state persists the two durable values the session core owns: the
// bearer token and the active organization id. Values are small strings,
// written whole, read-after-write consistent within one client.
package state

import (
	"context"
	"sync"
)

// Keys for the durable values. Implementations namespace them with their
// own prefix.
const (
	// TokenKey stores the raw bearer token.
	TokenKey = "token"
	// ActiveOrganizationKey stores the active organization id.
	ActiveOrganizationKey = "active_org"
)

// Store is the persisted key-value contract. Writes replace the whole value
// atomically; a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps values in process memory. It satisfies the contract for
// tests and for short-lived clients that do not need rehydration.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

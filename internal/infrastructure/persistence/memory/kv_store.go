// Package memory provides in-process implementations of the outbound storage ports
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cookbook/catalog/internal/ports/outbound"
)

// KeyValueStore implements outbound.KeyValueStore over a map
type KeyValueStore struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

// NewKeyValueStore creates an empty in-memory key-value store
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		data: make(map[string][]byte),
	}
}

// Get retrieves a copy of the value stored under key
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.data[key]
	if !exists {
		return nil, outbound.ErrKeyNotFound
	}

	return slices.Clone(value), nil
}

// Set stores a copy of value under key
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = slices.Clone(value)
	return nil
}

// Delete removes a key
func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}

// Ping always succeeds
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return nil
}

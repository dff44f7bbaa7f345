package testutil

import (
	"context"
	"errors"
	"sync"
)

// MemoryStorage is an in-memory storage.ObjectStorage.
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	// PutErr, when set, is returned by every Put.
	PutErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

func (m *MemoryStorage) Put(_ context.Context, key, contentType string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	if key == "" {
		return errors.New("empty key")
	}
	m.Objects[key] = append([]byte(nil), body...)
	m.Types[key] = contentType
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	delete(m.Types, key)
	return nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return "https://cdn.test/avatars/" + key
}

// Keys returns the stored object keys.
func (m *MemoryStorage) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Objects))
	for k := range m.Objects {
		keys = append(keys, k)
	}
	return keys
}

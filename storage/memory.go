package storage

import (
	"context"
	"sync"

	"career-guide/errors"
)

// MemoryAdapter holds collections in process memory. Contents are lost on
// restart; the server seeds it at startup.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string][]byte)}
}

func (m *MemoryAdapter) Load(_ context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[collection]
	if !ok {
		return nil, errors.E(errors.NotFound, collection+" not found")
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryAdapter) Save(_ context.Context, collection string, data []byte) error {
	if err := checkName(collection); err != nil {
		return err
	}
	m.mu.Lock()
	m.data[collection] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

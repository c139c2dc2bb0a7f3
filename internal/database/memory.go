package database

import (
	"context"
	"sync"
)

type memoryService struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns a process-local store. Values do not survive a restart.
func NewMemory() Service {
	return &memoryService{data: make(map[string][]byte)}
}

func (m *memoryService) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryService) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryService) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *memoryService) Health() map[string]string {
	return map[string]string{
		"message": "It's healthy",
	}
}

func (m *memoryService) Close(context.Context) error {
	return nil
}

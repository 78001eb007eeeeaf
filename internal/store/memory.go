package store

import (
	"context"
	"maps"
	"sync"
)

// Memory is an in-process KV backed by a map. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int64
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory(opts Options) *Memory {
	return &Memory{
		data:  make(map[string]string),
		quota: opts.Quota,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 && ProjectedFootprint(m.data, key, value) > m.quota {
		return ErrQuotaExceeded
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}

func (m *Memory) Entries(_ context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data), nil
}

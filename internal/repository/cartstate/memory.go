package cartstate

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// Memory keeps encoded records in a process-local map. Records go through
// Encode/Decode so callers never share state with the store.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) (domain.Cart, error) {
	m.mu.RLock()
	data, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return domain.Cart{}, domain.ErrNotFound
	}
	return Decode(data)
}

func (m *Memory) Save(_ context.Context, key string, cart domain.Cart) error {
	data, err := Encode(cart)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[key] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

// Raw returns the stored bytes for key, if any.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.records[key]
	return data, ok
}

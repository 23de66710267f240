package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryState is an in-memory StateRepo for tests and dry runs. It mirrors
// the persistence contract exactly: values round-trip through JSON.
type MemoryState struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewMemoryState creates an empty in-memory state repo.
func NewMemoryState() *MemoryState {
	return &MemoryState{values: make(map[string]json.RawMessage)}
}

func (m *MemoryState) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	return raw, ok, nil
}

func (m *MemoryState) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = b
	return nil
}

func (m *MemoryState) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// SetRaw stores pre-encoded JSON under key, bypassing marshalling. Tests use
// it to simulate corrupt stored state.
func (m *MemoryState) SetRaw(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = raw
}

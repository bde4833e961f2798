// Package kv provides the key-value persistence service the history store
// writes through. Values are opaque byte slices; callers own the encoding.
package kv

import (
	"context"
	"sync"
)

// Store is an asynchronous key-value store with overwrite semantics.
type Store interface {
	// Get returns the stored value and true, or nil and false when the key
	// has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Memory is an in-process Store, used in tests and as a fallback when the
// on-disk store cannot be opened.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements Store.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

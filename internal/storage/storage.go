// Package storage provides the durable key/value backends that persisted
// state is mirrored into.
package storage

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by Read when no value is stored under a key
var ErrNotFound = errors.New("storage: key not found")

// Backend is a flat key/value store. Values are opaque bytes.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Driver names accepted by app.OpenBackend
const (
	DriverSQLite = "sqlite"
	DriverDiskv  = "diskv"
	DriverMemory = "memory"
)

// Memory is an in-process Backend. Nothing survives the process.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }

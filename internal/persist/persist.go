// Package persist mirrors a single value into a storage.Backend key.
//
// A Store is hydrated from its key when opened and written back on every
// change. Storage problems never reach the caller: a missing or unreadable
// value falls back to the configured initial value and failed writes are
// logged and dropped, leaving the in-memory value authoritative.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tgienger/taskflow/internal/logging"
	"github.com/tgienger/taskflow/internal/storage"
)

// ErrUseDefault is returned by Load when the stored value cannot be used and
// the caller should fall back to its initial value.
var ErrUseDefault = errors.New("persist: use default")

// Load reads and decodes the value stored under key. Any failure is reported
// as ErrUseDefault wrapping the cause.
func Load[T any](backend storage.Backend, key string) (T, error) {
	var zero T
	raw, err := backend.Read(key)
	if err != nil {
		return zero, fmt.Errorf("%w: read %s: %w", ErrUseDefault, key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("%w: decode %s: %w", ErrUseDefault, key, err)
	}
	return v, nil
}

// Store holds a value of type T mirrored under one key
type Store[T any] struct {
	backend  storage.Backend
	key      string
	initial  T
	value    T
	restored bool
	logger   *slog.Logger
}

// Open hydrates a Store from backend, falling back to initial
func Open[T any](backend storage.Backend, key string, initial T, logger *slog.Logger) *Store[T] {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store[T]{
		backend: backend,
		key:     key,
		initial: initial,
		value:   initial,
		logger:  logger.With("key", key),
	}

	v, err := Load[T](backend, key)
	switch {
	case err == nil:
		s.value = v
		s.restored = true
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Debug("no stored value, using default")
	default:
		s.logger.Warn("stored value unusable, using default", "error", err)
	}
	return s
}

// Key returns the storage key
func (s *Store[T]) Key() string { return s.key }

// Get returns the current value
func (s *Store[T]) Get() T { return s.value }

// Restored reports whether the value was read from storage when opened
func (s *Store[T]) Restored() bool { return s.restored }

// Set replaces the value and writes it through
func (s *Store[T]) Set(v T) {
	s.value = v
	s.flush()
}

// Update applies fn to the current value and writes the result through
func (s *Store[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Reset restores the initial value and removes the stored key
func (s *Store[T]) Reset() {
	s.value = s.initial
	if err := s.backend.Delete(s.key); err != nil {
		s.logger.Warn("delete failed", "error", err)
	}
}

func (s *Store[T]) flush() {
	raw, err := json.Marshal(s.value)
	if err != nil {
		s.logger.Warn("encode failed", "error", err)
		return
	}
	if err := s.backend.Write(s.key, raw); err != nil {
		s.logger.Warn("write failed", "error", err)
	}
}

// Package kv provides a small key/value snapshot abstraction used by the
// report store. Values are opaque byte blobs; each Set replaces the value
// for the key in full.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence contract for snapshot blobs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Memory is an in-memory Store for tests and local development.
type Memory struct {
	data map[string][]byte

	// FailGet and FailSet, when non-nil, are returned by the respective
	// operation. Used to exercise read-fallback and write-error paths.
	FailGet error
	FailSet error

	// SetCalls counts successful writes.
	SetCalls int
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if m.FailGet != nil {
		return nil, m.FailGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	m.SetCalls++
	return nil
}

// Package memory provides process-local implementations of the storage and
// notification ports. They back the "memory" storage backend and the tests.
package memory

import (
	"context"
	"sync"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

type entry struct {
	data    []byte
	version int64
}

// Storage is a mutex-guarded map implementing ports.DurableStorage.
type Storage struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewStorage() *Storage {
	return &Storage{entries: make(map[string]entry)}
}

func (s *Storage) Get(_ context.Context, key string) (ports.VersionedValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return ports.VersionedValue{}, ports.ErrKeyNotFound
	}
	return ports.VersionedValue{Data: clone(e.data), Version: e.version}, nil
}

func (s *Storage) CompareAndSet(_ context.Context, key string, data []byte, expected int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[key].version != expected {
		return 0, domain.ErrVersionConflict
	}
	next := expected + 1
	s.entries[key] = entry{data: clone(data), version: next}
	return next, nil
}

func (s *Storage) Set(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{data: clone(data), version: s.entries[key].version + 1}
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *Storage) Ping(context.Context) error { return nil }

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

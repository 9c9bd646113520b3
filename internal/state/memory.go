package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps values in process memory. Values are stored encoded so
// callers never share state with the store.
type MemoryStore[T any] struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{values: make(map[string][]byte)}
}

func (s *MemoryStore[T]) Load(ctx context.Context, sessionID string) (*T, error) {
	s.mu.RLock()
	data, ok := s.values[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("unmarshal state failed: %w", err)
	}
	return &value, nil
}

func (s *MemoryStore[T]) Save(ctx context.Context, sessionID string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state failed: %w", err)
	}

	s.mu.Lock()
	s.values[sessionID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.values, sessionID)
	s.mu.Unlock()
	return nil
}

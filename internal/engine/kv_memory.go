package engine

import (
	"context"
	"sync"
)

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	m sync.Map // key → string
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{}
}

func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.m.Load(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.m.Store(key, value)
	return nil
}

func (s *MemoryKV) Remove(_ context.Context, key string) error {
	s.m.Delete(key)
	return nil
}

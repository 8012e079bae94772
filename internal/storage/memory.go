package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps the ledger in process memory. Used by tests and as a
// throwaway development backend.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (inMem *MemoryKV) Type() string {
	return "memory"
}

func (inMem *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	value, ok := inMem.values[key]
	return value, ok, nil
}

func (inMem *MemoryKV) Set(ctx context.Context, key string, value string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.values[key] = value
	return nil
}

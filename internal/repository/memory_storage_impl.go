package repository

import (
	"context"
	"sync"
)

type MemoryStorageImpl struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func CreateMemoryStorage() Storage {
	return &MemoryStorageImpl{data: make(map[string][]byte)}
}

func (r *MemoryStorageImpl) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return nil, nil
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (r *MemoryStorageImpl) Set(ctx context.Context, key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = copied

	return nil
}

func (r *MemoryStorageImpl) Clear(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)

	return nil
}

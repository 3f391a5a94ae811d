package cart

import (
	"context"
	"sync"
)

// MemorySnapshot is a process-local Snapshot, used in tests and as a
// fallback when no Redis is configured.
type MemorySnapshot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySnapshot() *MemorySnapshot { return &MemorySnapshot{} }

func (m *MemorySnapshot) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemorySnapshot) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

func (m *MemorySnapshot) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

package sequence

import (
	"context"
	"sync"
)

// Memory hands out per-partition sequences from process memory. Numbering
// restarts with the process.
type Memory struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewMemory() *Memory {
	return &Memory{last: map[string]int64{}}
}

func (m *Memory) NextSequence(_ context.Context, partitionKey string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[partitionKey]++
	return m.last[partitionKey], nil
}

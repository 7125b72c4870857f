package backing

import (
	"context"
	"sync"
)

// Memory is an in-process blob store used by tests and throwaway runs.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
	puts  int

	// FailPuts makes every Put return this error when non-nil. Tests use
	// it to exercise the committed-but-not-durable path.
	FailPuts error
}

func NewMemory() *Memory {
	return &Memory{blobs: map[string][]byte{}}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (m *Memory) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts != nil {
		return m.FailPuts
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[key] = cp
	m.puts++
	return nil
}

// Puts reports how many successful writes have happened, so tests can
// check that redundant exports coalesce.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// Len reports how many keys hold a blob.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

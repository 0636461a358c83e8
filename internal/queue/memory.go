package queue

import (
	"context"
	"sync"
)

// MemoryClient buffers messages in memory. Used in tests and in
// single-process deployments without SQS.
type MemoryClient struct {
	mu       sync.Mutex
	messages []Message
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

func (m *MemoryClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
	return nil
}

// Drain returns and clears all buffered messages.
func (m *MemoryClient) Drain() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.messages
	m.messages = nil
	return out
}

var _ Client = (*MemoryClient)(nil)

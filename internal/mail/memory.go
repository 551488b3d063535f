package mail

import (
	"context"
	"fmt"
	"sync"
)

// MemoryTransport records messages instead of delivering them. It backs
// local development and tests; FailWith makes every send fail.
type MemoryTransport struct {
	mu       sync.Mutex
	sent     []Message
	next     int
	FailWith error
}

// NewMemoryTransport returns an empty recording transport.
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

// Send records the message and returns a deterministic message id.
func (t *MemoryTransport) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailWith != nil {
		return "", t.FailWith
	}
	t.next++
	t.sent = append(t.sent, msg)
	return fmt.Sprintf("mem-%d", t.next), nil
}

// Sent returns a copy of every recorded message.
func (t *MemoryTransport) Sent() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.sent))
	copy(out, t.sent)
	return out
}

var _ Transport = (*MemoryTransport)(nil)

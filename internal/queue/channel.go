package queue

import (
	"context"

	"hrms-backend/internal/shared/telemetry"
)

// ChannelClient is an in-process queue backed by a buffered channel. It is
// the default backend when no SQS queue is configured: the API process runs
// the consumer loop itself. Send never blocks the producer; if the buffer is
// full the message is dropped and logged, matching the no-backpressure,
// single-attempt delivery contract.
type ChannelClient struct {
	ch chan Message
}

// NewChannelClient returns a channel-backed queue with the given buffer.
func NewChannelClient(buffer int) *ChannelClient {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelClient{ch: make(chan Message, buffer)}
}

// Send enqueues the message without blocking.
func (c *ChannelClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case c.ch <- msg:
		return nil
	default:
		telemetry.Error("queue.channel.full", map[string]any{
			"event":        msg.Event,
			"candidate_id": msg.CandidateID,
			"request_id":   msg.RequestID,
		})
		return nil
	}
}

// Run consumes messages until ctx is done, invoking handler for each.
// Handler errors are the handler's to log; the loop never retries.
func (c *ChannelClient) Run(ctx context.Context, handler func(ctx context.Context, msg Message)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.ch:
			handler(ctx, msg)
		}
	}
}

var _ Client = (*ChannelClient)(nil)

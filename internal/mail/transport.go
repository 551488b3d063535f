package mail

import "context"

// Message is one outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Transport delivers email through an external provider. Send returns the
// provider message id on acceptance; there is no delivery confirmation
// beyond that, and callers make exactly one attempt per event.
type Transport interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
}

package workerproc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"hrms-backend/internal/queue"
)

// Meta describes the raw body for logging, whether or not it decoded.
type Meta struct {
	BodyLen int
	BodySHA string
}

// ErrDecode marks a body that is not valid message JSON. The worker deletes
// such messages: redelivery can never fix them.
type ErrDecode struct {
	Err error
}

func (e ErrDecode) Error() string { return "decode message: " + e.Err.Error() }

// ErrMissingEvent marks a decoded message with no event name. Also
// unrecoverable.
type ErrMissingEvent struct {
	RequestID string
}

func (e ErrMissingEvent) Error() string { return "message has no event" }

// ErrMissingTarget marks a decoded message with neither a candidate id nor
// an explicit recipient, so there is nobody to notify.
type ErrMissingTarget struct {
	Event     string
	RequestID string
}

func (e ErrMissingTarget) Error() string { return "message has no candidate or recipient" }

// ParseMessage decodes and validates a queue body. Meta is populated even
// when decoding fails so callers can log what they received.
func ParseMessage(body string) (queue.Message, Meta, error) {
	meta := Meta{BodyLen: len(body), BodySHA: bodySHA(body)}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Err: err}
	}
	if strings.TrimSpace(msg.Event) == "" {
		return queue.Message{}, meta, ErrMissingEvent{RequestID: msg.RequestID}
	}
	if msg.CandidateID == 0 && strings.TrimSpace(msg.Recipient) == "" {
		return queue.Message{}, meta, ErrMissingTarget{Event: msg.Event, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

func bodySHA(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

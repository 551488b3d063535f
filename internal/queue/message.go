package queue

import "encoding/json"

// Message is a queued notification event. Candidate events carry the
// candidate id; posting broadcasts carry an explicit recipient instead.
type Message struct {
	Event         string            `json:"event"`
	CandidateID   int               `json:"candidateId,omitempty"`
	PostingID     int               `json:"postingId,omitempty"`
	Recipient     string            `json:"recipient,omitempty"`
	RecipientName string            `json:"recipientName,omitempty"`
	Data          map[string]string `json:"data,omitempty"`
	RequestID     string            `json:"requestId"`
	EnqueuedAt    string            `json:"enqueuedAt"`
	Version       int               `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

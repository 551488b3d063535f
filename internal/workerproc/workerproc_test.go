package workerproc

import (
	"errors"
	"testing"

	"hrms-backend/internal/queue"
)

func TestParseMessage(t *testing.T) {
	body, _ := queue.EncodeMessage(queue.Message{
		Event:       "shortlisted",
		CandidateID: 7,
		RequestID:   "req-1",
	})

	msg, meta, err := ParseMessage(string(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if msg.Event != "shortlisted" || msg.CandidateID != 7 {
		t.Fatalf("msg = %+v", msg)
	}
	if meta.BodyLen != len(body) || meta.BodySHA == "" {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestParseMessageInvalidJSON(t *testing.T) {
	_, meta, err := ParseMessage("{bad-json")
	var decodeErr ErrDecode
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if meta.BodyLen == 0 || meta.BodySHA == "" {
		t.Fatalf("meta not populated: %+v", meta)
	}
}

func TestParseMessageMissingEvent(t *testing.T) {
	body, _ := queue.EncodeMessage(queue.Message{CandidateID: 7, RequestID: "req-2"})
	_, _, err := ParseMessage(string(body))
	var missing ErrMissingEvent
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingEvent, got %v", err)
	}
	if missing.RequestID != "req-2" {
		t.Fatalf("request id = %q", missing.RequestID)
	}
}

func TestParseMessageMissingTarget(t *testing.T) {
	body, _ := queue.EncodeMessage(queue.Message{Event: "posting_broadcast"})
	_, _, err := ParseMessage(string(body))
	var missing ErrMissingTarget
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingTarget, got %v", err)
	}
	if missing.Event != "posting_broadcast" {
		t.Fatalf("event = %q", missing.Event)
	}
}

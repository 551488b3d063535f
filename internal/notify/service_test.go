package notify

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/mail"
	"hrms-backend/internal/queue"
	"hrms-backend/internal/store"
)

func newTestService(t *testing.T) (*Service, *mail.MemoryTransport, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), &store.FilePersister{Path: filepath.Join(t.TempDir(), "graph.json")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	transport := mail.NewMemoryTransport()
	// No queue: send paths dispatch inline, which keeps assertions simple.
	svc := NewService(st, transport, nil, "hr@acme.test", "Acme")
	return svc, transport, st
}

func seedCandidate(t *testing.T, st *store.Store, status domain.CandidateStatus) (candidateID, postingID int) {
	t.Helper()
	err := st.Update(context.Background(), func(g *domain.Graph) error {
		now := time.Now().UTC()
		postingID = g.NextID(domain.CollPostings)
		g.Postings = append(g.Postings, domain.Posting{
			ID: postingID, Title: "Backend Engineer", Status: domain.PostingOpen,
			CreatedAt: now, UpdatedAt: now,
		})
		candidateID = g.NextID(domain.CollCandidates)
		g.Candidates = append(g.Candidates, domain.Candidate{
			ID: candidateID, JobPostingID: postingID, Name: "Jane Smith",
			Email: "jane@example.com", Status: status,
			CreatedAt: now, UpdatedAt: now,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return candidateID, postingID
}

func TestDispatchSent(t *testing.T) {
	svc, transport, st := newTestService(t)
	candidateID, postingID := seedCandidate(t, st, domain.CandidateApplied)

	err := svc.Dispatch(context.Background(), queue.Message{
		Event:       mail.EventApplicationReceived,
		CandidateID: candidateID,
		PostingID:   postingID,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	sent := transport.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent = %d", len(sent))
	}
	if sent[0].To != "jane@example.com" || sent[0].From != "hr@acme.test" {
		t.Fatalf("message = %+v", sent[0])
	}
	if !strings.Contains(sent[0].Subject, "Backend Engineer") {
		t.Fatalf("subject = %q", sent[0].Subject)
	}

	st.View(func(g *domain.Graph) error {
		if len(g.EmailLogs) != 1 {
			t.Fatalf("email logs = %d", len(g.EmailLogs))
		}
		row := g.EmailLogs[0]
		if row.Status != domain.EmailSent || row.MessageID == "" || row.EmailType != mail.EventApplicationReceived {
			t.Fatalf("log row = %+v", row)
		}
		return nil
	})
}

func TestDispatchFailureLogsAndWraps(t *testing.T) {
	svc, transport, st := newTestService(t)
	candidateID, _ := seedCandidate(t, st, domain.CandidateApplied)
	transport.FailWith = errors.New("ses throttled")

	err := svc.Dispatch(context.Background(), queue.Message{
		Event:       mail.EventShortlisted,
		CandidateID: candidateID,
	})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}

	st.View(func(g *domain.Graph) error {
		if len(g.EmailLogs) != 1 {
			t.Fatalf("email logs = %d", len(g.EmailLogs))
		}
		row := g.EmailLogs[0]
		if row.Status != domain.EmailFailed || row.Error != "ses throttled" || row.MessageID != "" {
			t.Fatalf("log row = %+v", row)
		}
		return nil
	})
}

func TestDispatchValidation(t *testing.T) {
	svc, _, st := newTestService(t)
	seedCandidate(t, st, domain.CandidateApplied)

	err := svc.Dispatch(context.Background(), queue.Message{Event: "nonsense", CandidateID: 1})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	err = svc.Dispatch(context.Background(), queue.Message{Event: mail.EventShortlisted, CandidateID: 999})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	err = svc.Dispatch(context.Background(), queue.Message{Event: mail.EventPostingBroadcast})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing recipient, got %v", err)
	}
}

func TestHandleMessageSwallowsErrors(t *testing.T) {
	svc, transport, st := newTestService(t)
	candidateID, _ := seedCandidate(t, st, domain.CandidateApplied)
	transport.FailWith = errors.New("boom")

	// Must not panic or propagate.
	svc.HandleMessage(context.Background(), queue.Message{
		Event:       mail.EventSelected,
		CandidateID: candidateID,
	})
}

func TestBulkNotify(t *testing.T) {
	svc, transport, st := newTestService(t)
	candidateID, _ := seedCandidate(t, st, domain.CandidateShortlisted)

	out, err := svc.BulkNotify(context.Background(), []int{candidateID, 999}, domain.CandidateShortlisted, "req-1")
	if err != nil {
		t.Fatalf("bulk notify: %v", err)
	}
	if len(out.Success) != 1 || out.Success[0] != candidateID {
		t.Fatalf("success = %v", out.Success)
	}
	if len(out.Failed) != 1 || out.Failed[0].ID != 999 || out.Failed[0].Reason != "candidate not found" {
		t.Fatalf("failed = %+v", out.Failed)
	}
	if len(transport.Sent()) != 1 {
		t.Fatalf("sent = %d", len(transport.Sent()))
	}
}

func TestBulkNotifyUnsupportedStatus(t *testing.T) {
	svc, transport, st := newTestService(t)
	candidateID, _ := seedCandidate(t, st, domain.CandidateApplied)

	out, err := svc.BulkNotify(context.Background(), []int{candidateID, 42}, domain.CandidateApplied, "req-1")
	if err != nil {
		t.Fatalf("bulk notify: %v", err)
	}
	if len(out.Success) != 0 || len(out.Failed) != 2 {
		t.Fatalf("out = %+v", out)
	}
	for _, f := range out.Failed {
		if !strings.Contains(f.Reason, "unsupported status") {
			t.Fatalf("reason = %q", f.Reason)
		}
	}
	if len(transport.Sent()) != 0 {
		t.Fatalf("sent = %d", len(transport.Sent()))
	}
}

func TestBroadcastPosting(t *testing.T) {
	svc, transport, st := newTestService(t)
	_, postingID := seedCandidate(t, st, domain.CandidateApplied)

	sent, err := svc.BroadcastPosting(context.Background(), postingID, []Recipient{
		{Email: "a@example.com", Name: "A"},
		{Email: "b@example.com", Name: "B"},
	}, "req-1")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if sent != 2 {
		t.Fatalf("sent = %d", sent)
	}
	msgs := transport.Sent()
	if len(msgs) != 2 {
		t.Fatalf("delivered = %d", len(msgs))
	}
	if !strings.Contains(msgs[0].Subject, "Backend Engineer") {
		t.Fatalf("subject = %q", msgs[0].Subject)
	}

	if _, err := svc.BroadcastPosting(context.Background(), 999, []Recipient{{Email: "a@example.com"}}, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.BroadcastPosting(context.Background(), postingID, nil, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

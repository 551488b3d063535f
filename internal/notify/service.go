package notify

import (
	"context"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/mail"
	"hrms-backend/internal/queue"
	"hrms-backend/internal/shared/metrics"
	"hrms-backend/internal/shared/telemetry"
	"hrms-backend/internal/store"
)

// Service renders and delivers notification emails. Dispatch is the single
// delivery path: the queue worker and the bulk endpoint both funnel through
// it, so every attempt lands in the email log exactly once.
type Service struct {
	Store       *store.Store
	Transport   mail.Transport
	Queue       queue.Client
	From        string
	CompanyName string
}

// NewService constructs a Service.
func NewService(st *store.Store, transport mail.Transport, q queue.Client, from, companyName string) *Service {
	return &Service{Store: st, Transport: transport, Queue: q, From: from, CompanyName: companyName}
}

// BulkResult partitions a bulk notify request into delivered and failed ids.
type BulkResult struct {
	Success []int         `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

// BulkFailure explains why one candidate was skipped.
type BulkFailure struct {
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

// Recipient is one broadcast target.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Dispatch renders the event template, sends it through the transport, and
// appends an email log row for the attempt. The transport error, if any, is
// returned wrapped as a transport error after the failed row is recorded.
// One attempt per call, no retries.
func (s *Service) Dispatch(ctx context.Context, msg queue.Message) error {
	if !mail.ValidEvent(msg.Event) {
		return domain.Validationf("dispatch: unknown event %q", msg.Event)
	}

	recipient := strings.TrimSpace(msg.Recipient)
	recipientName := msg.RecipientName
	jobTitle := msg.Data["jobTitle"]

	err := s.Store.View(func(g *domain.Graph) error {
		if msg.CandidateID != 0 {
			c := g.CandidateByID(msg.CandidateID)
			if c == nil {
				return domain.NotFoundf("dispatch: candidate %d", msg.CandidateID)
			}
			recipient = c.Email
			recipientName = c.Name
			if jobTitle == "" {
				if p := g.PostingByID(c.JobPostingID); p != nil {
					jobTitle = p.Title
				}
			}
			return nil
		}
		if jobTitle == "" && msg.PostingID != 0 {
			if p := g.PostingByID(msg.PostingID); p != nil {
				jobTitle = p.Title
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if recipient == "" {
		return domain.Validationf("dispatch: no recipient for event %q", msg.Event)
	}

	subject, html, err := mail.Render(msg.Event, mail.TemplateData{
		CandidateName: recipientName,
		JobTitle:      jobTitle,
		CompanyName:   s.CompanyName,
		Data:          msg.Data,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	messageID, sendErr := s.Transport.Send(ctx, mail.Message{
		From:    s.From,
		To:      recipient,
		Subject: subject,
		HTML:    html,
	})
	metrics.ObserveNotifyDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	logRow := domain.EmailLog{
		CandidateID: msg.CandidateID,
		EmailType:   msg.Event,
		Recipient:   recipient,
		MessageID:   messageID,
		Status:      domain.EmailSent,
	}
	if sendErr != nil {
		logRow.Status = domain.EmailFailed
		logRow.MessageID = ""
		logRow.Error = sendErr.Error()
	}
	if err := s.Store.Update(ctx, func(g *domain.Graph) error {
		logRow.ID = g.NextID(domain.CollEmailLogs)
		logRow.At = time.Now().UTC()
		g.EmailLogs = append(g.EmailLogs, logRow)
		return nil
	}); err != nil {
		telemetry.Error("notify.log", map[string]any{
			"event":        msg.Event,
			"candidate_id": msg.CandidateID,
			"error":        err.Error(),
		})
	}

	if sendErr != nil {
		metrics.IncNotificationsFailed()
		return domain.Transportf("send %s to %s: %v", msg.Event, recipient, sendErr)
	}
	metrics.IncNotificationsSent()
	return nil
}

// HandleMessage is the queue consumer entry point. Errors are logged and
// swallowed: a failed notification never propagates back to the workflow
// that enqueued it.
func (s *Service) HandleMessage(ctx context.Context, msg queue.Message) {
	if err := s.Dispatch(ctx, msg); err != nil {
		telemetry.Error("notify.dispatch", map[string]any{
			"event":        msg.Event,
			"candidate_id": msg.CandidateID,
			"posting_id":   msg.PostingID,
			"request_id":   msg.RequestID,
			"error":        err.Error(),
		})
		return
	}
	telemetry.Info("notify.dispatched", map[string]any{
		"event":        msg.Event,
		"candidate_id": msg.CandidateID,
		"request_id":   msg.RequestID,
	})
}

// bulkEvents maps the statuses BulkNotify accepts to their events.
var bulkEvents = map[domain.CandidateStatus]string{
	domain.CandidateShortlisted: mail.EventShortlisted,
	domain.CandidateInterviewed: mail.EventInterviewScheduled,
	domain.CandidateSelected:    mail.EventSelected,
	domain.CandidateRejected:    mail.EventRejected,
}

// BulkNotify enqueues the status event for each candidate. An unsupported
// status fails every item with the same reason; a missing candidate or
// posting fails only that item.
func (s *Service) BulkNotify(ctx context.Context, candidateIDs []int, status domain.CandidateStatus, requestID string) (BulkResult, error) {
	out := BulkResult{Success: []int{}, Failed: []BulkFailure{}}
	if len(candidateIDs) == 0 {
		return out, domain.Validationf("bulk notify: candidateIds is required")
	}

	event, ok := bulkEvents[status]
	if !ok {
		reason := "unsupported status: " + string(status)
		for _, id := range candidateIDs {
			out.Failed = append(out.Failed, BulkFailure{ID: id, Reason: reason})
		}
		return out, nil
	}

	type target struct {
		id        int
		postingID int
		data      map[string]string
	}
	targets := []target{}
	err := s.Store.View(func(g *domain.Graph) error {
		for _, id := range candidateIDs {
			c := g.CandidateByID(id)
			if c == nil {
				out.Failed = append(out.Failed, BulkFailure{ID: id, Reason: "candidate not found"})
				continue
			}
			p := g.PostingByID(c.JobPostingID)
			if p == nil {
				out.Failed = append(out.Failed, BulkFailure{ID: id, Reason: "posting not found"})
				continue
			}
			data := map[string]string{"jobTitle": p.Title}
			if status == domain.CandidateRejected && c.RejectionReason != nil {
				data["rejectionReason"] = *c.RejectionReason
			}
			targets = append(targets, target{id: id, postingID: p.ID, data: data})
		}
		return nil
	})
	if err != nil {
		return out, err
	}

	for _, tgt := range targets {
		if err := s.send(ctx, queue.Message{
			Event:       event,
			CandidateID: tgt.id,
			PostingID:   tgt.postingID,
			Data:        tgt.data,
			RequestID:   requestID,
		}); err != nil {
			out.Failed = append(out.Failed, BulkFailure{ID: tgt.id, Reason: err.Error()})
			continue
		}
		out.Success = append(out.Success, tgt.id)
	}
	return out, nil
}

// BroadcastPosting enqueues a posting announcement for every recipient.
// Returns the number of enqueued messages.
func (s *Service) BroadcastPosting(ctx context.Context, postingID int, recipients []Recipient, requestID string) (int, error) {
	if len(recipients) == 0 {
		return 0, domain.Validationf("broadcast posting: recipients is required")
	}
	for _, r := range recipients {
		if !strings.Contains(r.Email, "@") {
			return 0, domain.Validationf("broadcast posting: invalid recipient email %q", r.Email)
		}
	}

	var posting domain.Posting
	err := s.Store.View(func(g *domain.Graph) error {
		p := g.PostingByID(postingID)
		if p == nil {
			return domain.NotFoundf("broadcast posting: id %d", postingID)
		}
		posting = *p
		return nil
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range recipients {
		if err := s.send(ctx, queue.Message{
			Event:         mail.EventPostingBroadcast,
			PostingID:     posting.ID,
			Recipient:     r.Email,
			RecipientName: r.Name,
			Data: map[string]string{
				"jobTitle":    posting.Title,
				"location":    posting.Location,
				"description": posting.Description,
			},
			RequestID: requestID,
		}); err != nil {
			telemetry.Error("notify.broadcast", map[string]any{
				"posting_id": posting.ID,
				"recipient":  r.Email,
				"error":      err.Error(),
			})
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *Service) send(ctx context.Context, msg queue.Message) error {
	if s.Queue == nil {
		s.HandleMessage(ctx, msg)
		return nil
	}
	msg.EnqueuedAt = time.Now().UTC().Format(time.RFC3339)
	msg.Version = 1
	return s.Queue.Send(ctx, msg)
}

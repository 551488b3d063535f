package candidates

import (
	"context"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/mail"
	"hrms-backend/internal/queue"
	"hrms-backend/internal/shared/metrics"
	"hrms-backend/internal/shared/storage/object"
	"hrms-backend/internal/shared/telemetry"
	"hrms-backend/internal/store"
)

// Service contains business logic for candidates: applications, status
// transitions, interviews, and notes. Status changes and applications
// enqueue notification events after the store update has committed.
type Service struct {
	Store   *store.Store
	Queue   queue.Client
	Objects object.ObjectStore
}

// NewService constructs a Service.
func NewService(st *store.Store, q queue.Client, objects object.ObjectStore) *Service {
	return &Service{Store: st, Queue: q, Objects: objects}
}

// ApplyInput is the payload for Apply.
type ApplyInput struct {
	JobPostingID    int
	Name            string
	Email           string
	Phone           string
	Experience      string
	Skills          []string
	LinkedinProfile string
	RequestID       string
}

// UpdateStatusInput is the payload for UpdateStatus.
type UpdateStatusInput struct {
	Status    domain.CandidateStatus
	Notes     string
	RequestID string
}

// InterviewInput is the payload for AddInterview.
type InterviewInput struct {
	Date        string
	Interviewer string
	Rating      int
	Feedback    string
	RequestID   string
}

// ListFilter narrows List results; zero values match everything.
type ListFilter struct {
	JobPostingID int
	Status       domain.CandidateStatus
	Email        string
}

// PostingCandidates groups one posting's candidates by status. Every
// candidate appears in exactly one bucket.
type PostingCandidates struct {
	Total    int                                           `json:"total"`
	ByStatus map[domain.CandidateStatus][]domain.Candidate `json:"byStatus"`
}

const defaultRejectionReason = "Not a fit for this position at this time."

// Apply records a new application against an open posting. The pair
// (posting, email) is unique; a duplicate application is a conflict. The
// posting's applicant count is incremented in the same store update, so the
// count and the candidate list can never disagree.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (domain.Candidate, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.JobPostingID <= 0 {
		return domain.Candidate{}, domain.Validationf("apply: jobPostingId is required")
	}
	if in.Name == "" {
		return domain.Candidate{}, domain.Validationf("apply: name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return domain.Candidate{}, domain.Validationf("apply: a valid email is required")
	}
	skills := normalizeSkills(in.Skills)

	var created domain.Candidate
	var jobTitle string
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		p := g.PostingByID(in.JobPostingID)
		if p == nil {
			return domain.NotFoundf("apply: posting %d", in.JobPostingID)
		}
		for i := range g.Candidates {
			c := &g.Candidates[i]
			if c.JobPostingID == in.JobPostingID && strings.EqualFold(c.Email, in.Email) {
				return domain.Conflictf("apply: %s already applied to posting %d", in.Email, in.JobPostingID)
			}
		}
		now := time.Now().UTC()
		created = domain.Candidate{
			ID:              g.NextID(domain.CollCandidates),
			JobPostingID:    p.ID,
			Name:            in.Name,
			Email:           in.Email,
			Phone:           in.Phone,
			Experience:      in.Experience,
			Skills:          skills,
			LinkedinProfile: in.LinkedinProfile,
			Status:          domain.CandidateApplied,
			Interviews:      []domain.Interview{},
			Notes:           []domain.Note{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		g.Candidates = append(g.Candidates, created)
		p.ApplicantCount++
		p.UpdatedAt = now
		jobTitle = p.Title
		return nil
	})
	if err != nil {
		return domain.Candidate{}, err
	}

	metrics.IncApplicationsReceived()
	s.enqueue(ctx, queue.Message{
		Event:       mail.EventApplicationReceived,
		CandidateID: created.ID,
		PostingID:   created.JobPostingID,
		Data:        map[string]string{"jobTitle": jobTitle},
		RequestID:   in.RequestID,
	})
	return created, nil
}

// UpdateStatus moves a candidate to the given status. There is no
// transition guard; any of the five statuses may be set at any time. A
// status change log row is appended on every call, even when the status is
// unchanged. The first rejection pins the rejection reason; later
// rejections keep it unless new notes are supplied.
func (s *Service) UpdateStatus(ctx context.Context, id int, in UpdateStatusInput) (domain.Candidate, error) {
	if !in.Status.Valid() {
		return domain.Candidate{}, domain.Validationf("update candidate status: invalid status %q", in.Status)
	}
	in.Notes = strings.TrimSpace(in.Notes)

	var out domain.Candidate
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		c := g.CandidateByID(id)
		if c == nil {
			return domain.NotFoundf("update candidate status: id %d", id)
		}
		now := time.Now().UTC()
		old := c.Status
		c.Status = in.Status
		c.UpdatedAt = now
		if in.Notes != "" {
			c.Notes = append(c.Notes, domain.Note{Text: in.Notes, At: now})
		}
		if in.Status == domain.CandidateRejected {
			switch {
			case in.Notes != "":
				reason := in.Notes
				c.RejectionReason = &reason
			case c.RejectionReason == nil:
				reason := defaultRejectionReason
				c.RejectionReason = &reason
			}
		}
		g.StatusChanges = append(g.StatusChanges, domain.StatusChange{
			ID:          g.NextID(domain.CollStatusChanges),
			CandidateID: c.ID,
			OldStatus:   old,
			NewStatus:   in.Status,
			At:          now,
		})
		out = *c
		return nil
	})
	if err != nil {
		return domain.Candidate{}, err
	}

	metrics.IncStatusChanges()
	if event := statusEvent(in.Status); event != "" {
		data := map[string]string{}
		if in.Status == domain.CandidateRejected && out.RejectionReason != nil {
			data["rejectionReason"] = *out.RejectionReason
		}
		s.enqueue(ctx, queue.Message{
			Event:       event,
			CandidateID: out.ID,
			PostingID:   out.JobPostingID,
			Data:        data,
			RequestID:   in.RequestID,
		})
	}
	return out, nil
}

// AddInterview records an interview round. An explicit rating outside
// [1, 5] is rejected; zero means not yet rated. A shortlisted candidate
// auto-advances to interviewed; all other statuses are left alone.
func (s *Service) AddInterview(ctx context.Context, id int, in InterviewInput) (domain.Candidate, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.Interviewer = strings.TrimSpace(in.Interviewer)

	if in.Date == "" {
		return domain.Candidate{}, domain.Validationf("add interview: date is required")
	}
	if in.Interviewer == "" {
		return domain.Candidate{}, domain.Validationf("add interview: interviewer is required")
	}
	if in.Rating != 0 && (in.Rating < 1 || in.Rating > 5) {
		return domain.Candidate{}, domain.Validationf("add interview: rating must be between 1 and 5")
	}

	var out domain.Candidate
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		c := g.CandidateByID(id)
		if c == nil {
			return domain.NotFoundf("add interview: candidate %d", id)
		}
		now := time.Now().UTC()
		c.Interviews = append(c.Interviews, domain.Interview{
			ID:          g.NextID(domain.CollInterviews),
			Date:        in.Date,
			Interviewer: in.Interviewer,
			Rating:      in.Rating,
			Feedback:    in.Feedback,
			CreatedAt:   now,
		})
		if c.Status == domain.CandidateShortlisted {
			g.StatusChanges = append(g.StatusChanges, domain.StatusChange{
				ID:          g.NextID(domain.CollStatusChanges),
				CandidateID: c.ID,
				OldStatus:   c.Status,
				NewStatus:   domain.CandidateInterviewed,
				At:          now,
			})
			c.Status = domain.CandidateInterviewed
		}
		c.UpdatedAt = now
		out = *c
		return nil
	})
	if err != nil {
		return domain.Candidate{}, err
	}

	s.enqueue(ctx, queue.Message{
		Event:       mail.EventInterviewScheduled,
		CandidateID: out.ID,
		PostingID:   out.JobPostingID,
		Data: map[string]string{
			"interviewDate": in.Date,
			"interviewer":   in.Interviewer,
		},
		RequestID: in.RequestID,
	})
	return out, nil
}

// List returns candidates matching every supplied filter, in insertion order.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.Candidate{}
	err := s.Store.View(func(g *domain.Graph) error {
		for _, c := range g.Candidates {
			if f.JobPostingID != 0 && c.JobPostingID != f.JobPostingID {
				continue
			}
			if f.Status != "" && c.Status != f.Status {
				continue
			}
			if f.Email != "" && !strings.EqualFold(c.Email, f.Email) {
				continue
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

// Get returns one candidate by id.
func (s *Service) Get(ctx context.Context, id int) (domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Candidate{}, err
	}
	var out domain.Candidate
	err := s.Store.View(func(g *domain.Graph) error {
		c := g.CandidateByID(id)
		if c == nil {
			return domain.NotFoundf("get candidate: id %d", id)
		}
		out = *c
		return nil
	})
	return out, err
}

// ListByPosting groups a posting's candidates into the five status buckets.
func (s *Service) ListByPosting(ctx context.Context, postingID int) (PostingCandidates, error) {
	if err := ctx.Err(); err != nil {
		return PostingCandidates{}, err
	}
	out := PostingCandidates{ByStatus: make(map[domain.CandidateStatus][]domain.Candidate, 5)}
	err := s.Store.View(func(g *domain.Graph) error {
		if g.PostingByID(postingID) == nil {
			return domain.NotFoundf("list candidates: posting %d", postingID)
		}
		for _, status := range domain.CandidateStatuses() {
			out.ByStatus[status] = []domain.Candidate{}
		}
		for _, c := range g.Candidates {
			if c.JobPostingID != postingID {
				continue
			}
			out.Total++
			out.ByStatus[c.Status] = append(out.ByStatus[c.Status], c)
		}
		return nil
	})
	return out, err
}

// StatusHistory returns the candidate's status change rows, oldest first.
func (s *Service) StatusHistory(ctx context.Context, id int) ([]domain.StatusChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.StatusChange{}
	err := s.Store.View(func(g *domain.Graph) error {
		if g.CandidateByID(id) == nil {
			return domain.NotFoundf("status history: candidate %d", id)
		}
		for _, sc := range g.StatusChanges {
			if sc.CandidateID == id {
				out = append(out, sc)
			}
		}
		return nil
	})
	return out, err
}

// enqueue sends a notification event; failures are logged and swallowed so
// that a queue outage never fails the mutation that already committed.
func (s *Service) enqueue(ctx context.Context, msg queue.Message) {
	if s.Queue == nil {
		return
	}
	msg.EnqueuedAt = time.Now().UTC().Format(time.RFC3339)
	msg.Version = 1
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Error("candidates.enqueue", map[string]any{
			"event":        msg.Event,
			"candidate_id": msg.CandidateID,
			"error":        err.Error(),
		})
	}
}

func statusEvent(status domain.CandidateStatus) string {
	switch status {
	case domain.CandidateShortlisted:
		return mail.EventShortlisted
	case domain.CandidateSelected:
		return mail.EventSelected
	case domain.CandidateRejected:
		return mail.EventRejected
	}
	return ""
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		sk = strings.TrimSpace(sk)
		if sk != "" {
			out = append(out, sk)
		}
	}
	return out
}

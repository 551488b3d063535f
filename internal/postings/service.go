package postings

import (
	"context"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

// Service contains business logic for job postings.
type Service struct {
	Store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

// CreateInput is the payload for Create.
type CreateInput struct {
	RequirementID       int
	Title               string
	Description         string
	Location            string
	SalaryRange         string
	ApplicationDeadline string
	CreatedBy           string
}

// ListFilter narrows List results; zero values match everything.
type ListFilter struct {
	Status     domain.PostingStatus
	Department string
	Location   string
}

// Stats breaks down a posting's candidates by status.
type Stats struct {
	Total    int                            `json:"total"`
	ByStatus map[domain.CandidateStatus]int `json:"byStatus"`
}

// PostingWithStats is the Get response shape.
type PostingWithStats struct {
	domain.Posting
	Stats Stats `json:"stats"`
}

// Create publishes a posting from an approved requirement. The department
// is inherited from the requirement.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Posting, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return domain.Posting{}, domain.Validationf("create posting: title is required")
	}
	if in.Description == "" {
		return domain.Posting{}, domain.Validationf("create posting: description is required")
	}
	if in.Location == "" {
		return domain.Posting{}, domain.Validationf("create posting: location is required")
	}

	var created domain.Posting
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		req := g.RequirementByID(in.RequirementID)
		if req == nil {
			return domain.NotFoundf("create posting: requirement %d", in.RequirementID)
		}
		if req.Status != domain.RequirementApproved {
			return domain.Validationf("create posting: requirement %d is %s, not approved", req.ID, req.Status)
		}
		now := time.Now().UTC()
		created = domain.Posting{
			ID:                  g.NextID(domain.CollPostings),
			RequirementID:       req.ID,
			Title:               in.Title,
			Description:         in.Description,
			Department:          req.Department,
			Location:            in.Location,
			SalaryRange:         in.SalaryRange,
			ApplicationDeadline: in.ApplicationDeadline,
			Status:              domain.PostingOpen,
			ApplicantCount:      0,
			CreatedBy:           in.CreatedBy,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		g.Postings = append(g.Postings, created)
		return nil
	})
	if err != nil {
		return domain.Posting{}, err
	}
	return created, nil
}

// List returns postings matching every supplied filter, in insertion order.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Posting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.Posting{}
	err := s.Store.View(func(g *domain.Graph) error {
		for _, p := range g.Postings {
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.Department != "" && p.Department != f.Department {
				continue
			}
			if f.Location != "" && p.Location != f.Location {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

// Get returns one posting with derived candidate stats.
func (s *Service) Get(ctx context.Context, id int) (PostingWithStats, error) {
	if err := ctx.Err(); err != nil {
		return PostingWithStats{}, err
	}
	var out PostingWithStats
	err := s.Store.View(func(g *domain.Graph) error {
		p := g.PostingByID(id)
		if p == nil {
			return domain.NotFoundf("get posting: id %d", id)
		}
		stats := Stats{ByStatus: make(map[domain.CandidateStatus]int, 5)}
		for _, status := range domain.CandidateStatuses() {
			stats.ByStatus[status] = 0
		}
		for _, cand := range g.Candidates {
			if cand.JobPostingID != p.ID {
				continue
			}
			stats.Total++
			stats.ByStatus[cand.Status]++
		}
		out = PostingWithStats{Posting: *p, Stats: stats}
		return nil
	})
	return out, err
}

// UpdateStatus overwrites the posting status.
func (s *Service) UpdateStatus(ctx context.Context, id int, status domain.PostingStatus) (domain.Posting, error) {
	if !status.Valid() {
		return domain.Posting{}, domain.Validationf("update posting status: invalid status %q", status)
	}
	var out domain.Posting
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		p := g.PostingByID(id)
		if p == nil {
			return domain.NotFoundf("update posting status: id %d", id)
		}
		p.Status = status
		p.UpdatedAt = time.Now().UTC()
		out = *p
		return nil
	})
	return out, err
}

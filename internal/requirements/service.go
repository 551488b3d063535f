package requirements

import (
	"context"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

// Service contains business logic for job requirements.
type Service struct {
	Store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

// CreateInput is the payload for Create.
type CreateInput struct {
	Title       string
	Department  string
	Description string
	Budget      float64
	Positions   int
	CreatedBy   string
}

// ListFilter narrows List results; zero values match everything.
type ListFilter struct {
	Department string
	Status     domain.RequirementStatus
	CreatedBy  string
}

// Create records a new requirement in pending state.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Requirement, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Department = strings.TrimSpace(in.Department)

	if in.Title == "" {
		return domain.Requirement{}, domain.Validationf("create requirement: title is required")
	}
	if in.Department == "" {
		return domain.Requirement{}, domain.Validationf("create requirement: department is required")
	}
	if in.Budget < 0 {
		return domain.Requirement{}, domain.Validationf("create requirement: budget must be >= 0")
	}
	if in.Positions == 0 {
		in.Positions = 1
	}
	if in.Positions < 1 {
		return domain.Requirement{}, domain.Validationf("create requirement: positions must be >= 1")
	}

	var created domain.Requirement
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		now := time.Now().UTC()
		created = domain.Requirement{
			ID:          g.NextID(domain.CollRequirements),
			Title:       in.Title,
			Department:  in.Department,
			Description: in.Description,
			Budget:      in.Budget,
			Positions:   in.Positions,
			Status:      domain.RequirementPending,
			CreatedBy:   in.CreatedBy,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		g.Requirements = append(g.Requirements, created)
		return nil
	})
	if err != nil {
		return domain.Requirement{}, err
	}
	return created, nil
}

// List returns requirements matching every supplied filter, in insertion order.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Requirement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.Requirement{}
	err := s.Store.View(func(g *domain.Graph) error {
		for _, r := range g.Requirements {
			if f.Department != "" && r.Department != f.Department {
				continue
			}
			if f.Status != "" && r.Status != f.Status {
				continue
			}
			if f.CreatedBy != "" && r.CreatedBy != f.CreatedBy {
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// Get returns one requirement by id.
func (s *Service) Get(ctx context.Context, id int) (domain.Requirement, error) {
	if err := ctx.Err(); err != nil {
		return domain.Requirement{}, err
	}
	var out domain.Requirement
	err := s.Store.View(func(g *domain.Graph) error {
		r := g.RequirementByID(id)
		if r == nil {
			return domain.NotFoundf("get requirement: id %d", id)
		}
		out = *r
		return nil
	})
	return out, err
}

// Approve marks the requirement approved. There is no transition guard:
// re-approval overwrites the approver and timestamp, and a rejected or
// closed requirement can still be approved.
func (s *Service) Approve(ctx context.Context, id int, approvedBy string) (domain.Requirement, error) {
	var out domain.Requirement
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		r := g.RequirementByID(id)
		if r == nil {
			return domain.NotFoundf("approve requirement: id %d", id)
		}
		now := time.Now().UTC()
		r.Status = domain.RequirementApproved
		r.ApprovedBy = &approvedBy
		r.ApprovedAt = &now
		r.UpdatedAt = now
		out = *r
		return nil
	})
	return out, err
}

// Reject marks the requirement rejected with the given reason. Same lack of
// transition guard as Approve.
func (s *Service) Reject(ctx context.Context, id int, reason string) (domain.Requirement, error) {
	var out domain.Requirement
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		r := g.RequirementByID(id)
		if r == nil {
			return domain.NotFoundf("reject requirement: id %d", id)
		}
		r.Status = domain.RequirementRejected
		r.RejectionReason = &reason
		r.UpdatedAt = time.Now().UTC()
		out = *r
		return nil
	})
	return out, err
}

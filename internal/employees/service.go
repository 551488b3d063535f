package employees

import (
	"context"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

// Service contains business logic for employee records.
type Service struct {
	Store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

// CreateInput is the payload for Create.
type CreateInput struct {
	Name       string
	Email      string
	Department string
	Position   string
	Salary     float64
	JoinDate   string
}

// UpdateInput carries the partial update; nil fields are left untouched.
type UpdateInput struct {
	Name       *string
	Department *string
	Position   *string
	Salary     *float64
	Status     *domain.EmployeeStatus
}

// ListFilter narrows List results; zero values match everything.
type ListFilter struct {
	Department string
	Status     domain.EmployeeStatus
}

// Create records a new active employee. Email is unique across employees.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Employee, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" {
		return domain.Employee{}, domain.Validationf("create employee: name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return domain.Employee{}, domain.Validationf("create employee: a valid email is required")
	}
	if in.Salary < 0 {
		return domain.Employee{}, domain.Validationf("create employee: salary must be >= 0")
	}

	var created domain.Employee
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		for i := range g.Employees {
			if strings.EqualFold(g.Employees[i].Email, in.Email) {
				return domain.Conflictf("create employee: email %s already exists", in.Email)
			}
		}
		now := time.Now().UTC()
		created = domain.Employee{
			ID:         g.NextID(domain.CollEmployees),
			Name:       in.Name,
			Email:      in.Email,
			Department: in.Department,
			Position:   in.Position,
			Salary:     in.Salary,
			JoinDate:   in.JoinDate,
			Status:     domain.EmployeeActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		g.Employees = append(g.Employees, created)
		return nil
	})
	if err != nil {
		return domain.Employee{}, err
	}
	return created, nil
}

// List returns employees matching every supplied filter, in insertion order.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.Employee{}
	err := s.Store.View(func(g *domain.Graph) error {
		for _, e := range g.Employees {
			if f.Department != "" && e.Department != f.Department {
				continue
			}
			if f.Status != "" && e.Status != f.Status {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// Get returns one employee by id.
func (s *Service) Get(ctx context.Context, id int) (domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return domain.Employee{}, err
	}
	var out domain.Employee
	err := s.Store.View(func(g *domain.Graph) error {
		e := g.EmployeeByID(id)
		if e == nil {
			return domain.NotFoundf("get employee: id %d", id)
		}
		out = *e
		return nil
	})
	return out, err
}

// Update applies the non-nil fields of in to the employee.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (domain.Employee, error) {
	if in.Status != nil && !in.Status.Valid() {
		return domain.Employee{}, domain.Validationf("update employee: invalid status %q", *in.Status)
	}
	if in.Salary != nil && *in.Salary < 0 {
		return domain.Employee{}, domain.Validationf("update employee: salary must be >= 0")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.Employee{}, domain.Validationf("update employee: name cannot be empty")
	}

	var out domain.Employee
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		e := g.EmployeeByID(id)
		if e == nil {
			return domain.NotFoundf("update employee: id %d", id)
		}
		if in.Name != nil {
			e.Name = strings.TrimSpace(*in.Name)
		}
		if in.Department != nil {
			e.Department = *in.Department
		}
		if in.Position != nil {
			e.Position = *in.Position
		}
		if in.Salary != nil {
			e.Salary = *in.Salary
		}
		if in.Status != nil {
			e.Status = *in.Status
		}
		e.UpdatedAt = time.Now().UTC()
		out = *e
		return nil
	})
	return out, err
}

// Exit marks the employee exited. The first exit pins the date and reason;
// a repeated exit keeps them unless new values are supplied, mirroring the
// candidate rejection-reason rule.
func (s *Service) Exit(ctx context.Context, id int, date, reason string) (domain.Employee, error) {
	date = strings.TrimSpace(date)
	reason = strings.TrimSpace(reason)

	var out domain.Employee
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		e := g.EmployeeByID(id)
		if e == nil {
			return domain.NotFoundf("exit employee: id %d", id)
		}
		if e.Status != domain.EmployeeExited && date == "" {
			return domain.Validationf("exit employee: date is required")
		}
		if date != "" {
			e.ExitDate = &date
		}
		if reason != "" {
			e.ExitReason = &reason
		}
		e.Status = domain.EmployeeExited
		e.UpdatedAt = time.Now().UTC()
		out = *e
		return nil
	})
	return out, err
}

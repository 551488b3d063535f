package leave

import (
	"context"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

const dateLayout = "2006-01-02"

// Service contains business logic for leave requests.
type Service struct {
	Store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

// RequestInput is the payload for Request.
type RequestInput struct {
	EmployeeID int
	Type       domain.LeaveType
	StartDate  string
	EndDate    string
	Reason     string
}

// ListFilter narrows List results; zero values match everything.
type ListFilter struct {
	EmployeeID int
	Status     domain.LeaveStatus
	Type       domain.LeaveType
}

// Summary reports approved leave days per type for one employee.
type Summary struct {
	EmployeeID int                      `json:"employeeId"`
	ByType     map[domain.LeaveType]int `json:"byType"`
	TotalDays  int                      `json:"totalDays"`
}

// Request files a leave request for an active or on-leave employee. Days
// are derived from the inclusive date range.
func (s *Service) Request(ctx context.Context, in RequestInput) (domain.LeaveRequest, error) {
	if !in.Type.Valid() {
		return domain.LeaveRequest{}, domain.Validationf("request leave: invalid type %q", in.Type)
	}
	days, err := spanDays(in.StartDate, in.EndDate)
	if err != nil {
		return domain.LeaveRequest{}, err
	}

	var created domain.LeaveRequest
	err = s.Store.Update(ctx, func(g *domain.Graph) error {
		e := g.EmployeeByID(in.EmployeeID)
		if e == nil {
			return domain.NotFoundf("request leave: employee %d", in.EmployeeID)
		}
		if e.Status == domain.EmployeeExited {
			return domain.Validationf("request leave: employee %d has exited", in.EmployeeID)
		}
		now := time.Now().UTC()
		created = domain.LeaveRequest{
			ID:         g.NextID(domain.CollLeaveRequests),
			EmployeeID: in.EmployeeID,
			Type:       in.Type,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Days:       days,
			Reason:     strings.TrimSpace(in.Reason),
			Status:     domain.LeavePending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		g.LeaveRequests = append(g.LeaveRequests, created)
		return nil
	})
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	return created, nil
}

// List returns leave requests matching every supplied filter, in insertion
// order.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.LeaveRequest{}
	err := s.Store.View(func(g *domain.Graph) error {
		for _, l := range g.LeaveRequests {
			if f.EmployeeID != 0 && l.EmployeeID != f.EmployeeID {
				continue
			}
			if f.Status != "" && l.Status != f.Status {
				continue
			}
			if f.Type != "" && l.Type != f.Type {
				continue
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

// Get returns one leave request by id.
func (s *Service) Get(ctx context.Context, id int) (domain.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return domain.LeaveRequest{}, err
	}
	var out domain.LeaveRequest
	err := s.Store.View(func(g *domain.Graph) error {
		l := g.LeaveRequestByID(id)
		if l == nil {
			return domain.NotFoundf("get leave request: id %d", id)
		}
		out = *l
		return nil
	})
	return out, err
}

// Approve marks the request approved. Like requirement approval there is no
// transition guard; a re-decision overwrites the previous one.
func (s *Service) Approve(ctx context.Context, id int, decidedBy, note string) (domain.LeaveRequest, error) {
	return s.decide(ctx, id, domain.LeaveApproved, decidedBy, note)
}

// Reject marks the request rejected. Same lack of guard as Approve.
func (s *Service) Reject(ctx context.Context, id int, decidedBy, note string) (domain.LeaveRequest, error) {
	return s.decide(ctx, id, domain.LeaveRejected, decidedBy, note)
}

func (s *Service) decide(ctx context.Context, id int, status domain.LeaveStatus, decidedBy, note string) (domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		l := g.LeaveRequestByID(id)
		if l == nil {
			return domain.NotFoundf("decide leave request: id %d", id)
		}
		l.Status = status
		l.DecidedBy = &decidedBy
		if note = strings.TrimSpace(note); note != "" {
			l.DecisionNote = &note
		}
		l.UpdatedAt = time.Now().UTC()
		out = *l
		return nil
	})
	return out, err
}

// SummaryFor totals approved leave days per type for the employee.
func (s *Service) SummaryFor(ctx context.Context, employeeID int) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	out := Summary{EmployeeID: employeeID, ByType: map[domain.LeaveType]int{}}
	err := s.Store.View(func(g *domain.Graph) error {
		if g.EmployeeByID(employeeID) == nil {
			return domain.NotFoundf("leave summary: employee %d", employeeID)
		}
		for _, l := range g.LeaveRequests {
			if l.EmployeeID != employeeID || l.Status != domain.LeaveApproved {
				continue
			}
			out.ByType[l.Type] += l.Days
			out.TotalDays += l.Days
		}
		return nil
	})
	return out, err
}

// spanDays returns the inclusive day count between two dates.
func spanDays(start, end string) (int, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0, domain.Validationf("request leave: invalid startDate %q", start)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0, domain.Validationf("request leave: invalid endDate %q", end)
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return 0, domain.Validationf("request leave: endDate before startDate")
	}
	return days, nil
}

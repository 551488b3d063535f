package reports

import (
	"context"
	"fmt"
	"sort"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

// Service derives recruitment statistics from the graph. Everything is
// recomputed per call; nothing is cached.
type Service struct {
	Store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

// Overview is the all-up stats payload.
type Overview struct {
	Requirements    map[string]int `json:"requirements"`
	Postings        map[string]int `json:"postings"`
	Candidates      map[string]int `json:"candidates"`
	Employees       map[string]int `json:"employees"`
	LeaveRequests   map[string]int `json:"leaveRequests"`
	TotalCandidates int            `json:"totalCandidates"`
	ConversionRate  string         `json:"conversionRate"`
	EmailsSent      int            `json:"emailsSent"`
	EmailsFailed    int            `json:"emailsFailed"`
}

// RankedCandidate is one row of the top-candidates report.
type RankedCandidate struct {
	CandidateID   int                    `json:"candidateId"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	JobPostingID  int                    `json:"jobPostingId"`
	Status        domain.CandidateStatus `json:"status"`
	Interviews    int                    `json:"interviews"`
	AverageRating float64                `json:"averageRating"`
}

// Overview returns per-status counts across every collection plus the
// applied-to-selected conversion rate.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if err := ctx.Err(); err != nil {
		return Overview{}, err
	}
	out := Overview{
		Requirements:  map[string]int{},
		Postings:      map[string]int{},
		Candidates:    map[string]int{},
		Employees:     map[string]int{},
		LeaveRequests: map[string]int{},
	}
	selected := 0
	err := s.Store.View(func(g *domain.Graph) error {
		for _, r := range g.Requirements {
			out.Requirements[string(r.Status)]++
		}
		for _, p := range g.Postings {
			out.Postings[string(p.Status)]++
		}
		for _, c := range g.Candidates {
			out.Candidates[string(c.Status)]++
			if c.Status == domain.CandidateSelected {
				selected++
			}
		}
		for _, e := range g.Employees {
			out.Employees[string(e.Status)]++
		}
		for _, l := range g.LeaveRequests {
			out.LeaveRequests[string(l.Status)]++
		}
		for _, row := range g.EmailLogs {
			switch row.Status {
			case domain.EmailSent:
				out.EmailsSent++
			case domain.EmailFailed:
				out.EmailsFailed++
			}
		}
		out.TotalCandidates = len(g.Candidates)
		return nil
	})
	if err != nil {
		return Overview{}, err
	}
	out.ConversionRate = conversionRate(selected, out.TotalCandidates)
	return out, nil
}

// conversionRate formats selected/total as a fixed two-decimal percentage.
// Zero candidates yields "0.00" rather than a division error.
func conversionRate(selected, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(selected)/float64(total)*100)
}

// TopCandidates ranks candidates by mean interview rating, descending.
// Candidates without interviews are excluded; ties keep insertion order.
func (s *Service) TopCandidates(ctx context.Context, limit int) ([]RankedCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	out := []RankedCandidate{}
	err := s.Store.View(func(g *domain.Graph) error {
		for _, c := range g.Candidates {
			if len(c.Interviews) == 0 {
				continue
			}
			sum := 0
			for _, iv := range c.Interviews {
				sum += iv.Rating
			}
			out = append(out, RankedCandidate{
				CandidateID:   c.ID,
				Name:          c.Name,
				Email:         c.Email,
				JobPostingID:  c.JobPostingID,
				Status:        c.Status,
				Interviews:    len(c.Interviews),
				AverageRating: float64(sum) / float64(len(c.Interviews)),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageRating > out[j].AverageRating
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

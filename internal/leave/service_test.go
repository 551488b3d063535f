package leave

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), &store.FilePersister{Path: filepath.Join(t.TempDir(), "graph.json")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewService(st), st
}

func seedEmployee(t *testing.T, st *store.Store, status domain.EmployeeStatus) int {
	t.Helper()
	var id int
	err := st.Update(context.Background(), func(g *domain.Graph) error {
		now := time.Now().UTC()
		id = g.NextID(domain.CollEmployees)
		g.Employees = append(g.Employees, domain.Employee{
			ID: id, Name: "Jane", Email: "jane@example.com", Status: status,
			CreatedAt: now, UpdatedAt: now,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return id
}

func TestRequest(t *testing.T) {
	svc, st := newTestService(t)
	empID := seedEmployee(t, st, domain.EmployeeActive)

	out, err := svc.Request(context.Background(), RequestInput{
		EmployeeID: empID, Type: domain.LeaveAnnual,
		StartDate: "2026-09-01", EndDate: "2026-09-05", Reason: "vacation",
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if out.Status != domain.LeavePending {
		t.Fatalf("status = %s", out.Status)
	}
	if out.Days != 5 {
		t.Fatalf("days = %d", out.Days)
	}

	// Single-day leave counts as one day.
	out, err = svc.Request(context.Background(), RequestInput{
		EmployeeID: empID, Type: domain.LeaveSick,
		StartDate: "2026-09-10", EndDate: "2026-09-10",
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if out.Days != 1 {
		t.Fatalf("days = %d", out.Days)
	}
}

func TestRequestValidation(t *testing.T) {
	svc, st := newTestService(t)
	empID := seedEmployee(t, st, domain.EmployeeActive)
	exited := seedEmployee2(t, st)

	cases := []RequestInput{
		{EmployeeID: empID, Type: "parental", StartDate: "2026-09-01", EndDate: "2026-09-02"},
		{EmployeeID: empID, Type: domain.LeaveAnnual, StartDate: "bad", EndDate: "2026-09-02"},
		{EmployeeID: empID, Type: domain.LeaveAnnual, StartDate: "2026-09-05", EndDate: "2026-09-01"},
		{EmployeeID: exited, Type: domain.LeaveAnnual, StartDate: "2026-09-01", EndDate: "2026-09-02"},
	}
	for i, in := range cases {
		if _, err := svc.Request(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}

	_, err := svc.Request(context.Background(), RequestInput{
		EmployeeID: 999, Type: domain.LeaveAnnual, StartDate: "2026-09-01", EndDate: "2026-09-02",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func seedEmployee2(t *testing.T, st *store.Store) int {
	t.Helper()
	var id int
	st.Update(context.Background(), func(g *domain.Graph) error {
		id = g.NextID(domain.CollEmployees)
		g.Employees = append(g.Employees, domain.Employee{
			ID: id, Name: "Gone", Email: "gone@example.com", Status: domain.EmployeeExited,
		})
		return nil
	})
	return id
}

func TestDecisions(t *testing.T) {
	svc, st := newTestService(t)
	empID := seedEmployee(t, st, domain.EmployeeActive)
	req, _ := svc.Request(context.Background(), RequestInput{
		EmployeeID: empID, Type: domain.LeaveAnnual, StartDate: "2026-09-01", EndDate: "2026-09-02",
	})

	out, err := svc.Approve(context.Background(), req.ID, "hr-1", "enjoy")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if out.Status != domain.LeaveApproved || *out.DecidedBy != "hr-1" || *out.DecisionNote != "enjoy" {
		t.Fatalf("out = %+v", out)
	}

	// No transition guard: a decided request can be re-decided.
	out, err = svc.Reject(context.Background(), req.ID, "hr-2", "")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if out.Status != domain.LeaveRejected || *out.DecidedBy != "hr-2" {
		t.Fatalf("out = %+v", out)
	}
	// Empty note keeps the previous one.
	if out.DecisionNote == nil || *out.DecisionNote != "enjoy" {
		t.Fatalf("decision note = %v", out.DecisionNote)
	}
}

func TestSummary(t *testing.T) {
	svc, st := newTestService(t)
	empID := seedEmployee(t, st, domain.EmployeeActive)

	annual, _ := svc.Request(context.Background(), RequestInput{
		EmployeeID: empID, Type: domain.LeaveAnnual, StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	sick, _ := svc.Request(context.Background(), RequestInput{
		EmployeeID: empID, Type: domain.LeaveSick, StartDate: "2026-10-01", EndDate: "2026-10-02",
	})
	// Pending request, excluded from the summary.
	svc.Request(context.Background(), RequestInput{
		EmployeeID: empID, Type: domain.LeaveUnpaid, StartDate: "2026-11-01", EndDate: "2026-11-03",
	})
	svc.Approve(context.Background(), annual.ID, "hr-1", "")
	svc.Approve(context.Background(), sick.ID, "hr-1", "")

	out, err := svc.SummaryFor(context.Background(), empID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.TotalDays != 7 {
		t.Fatalf("total days = %d", out.TotalDays)
	}
	if out.ByType[domain.LeaveAnnual] != 5 || out.ByType[domain.LeaveSick] != 2 {
		t.Fatalf("by type = %v", out.ByType)
	}

	if _, err := svc.SummaryFor(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

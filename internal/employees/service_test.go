package employees

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(context.Background(), &store.FilePersister{Path: filepath.Join(t.TempDir(), "graph.json")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewService(st)
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)

	emp, err := svc.Create(context.Background(), CreateInput{
		Name: "Jane Smith", Email: "Jane@Example.com", Department: "Engineering",
		Position: "Engineer", Salary: 90000, JoinDate: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if emp.Status != domain.EmployeeActive {
		t.Fatalf("status = %s", emp.Status)
	}
	if emp.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %s", emp.Email)
	}

	// Email unique, case-insensitive.
	_, err = svc.Create(context.Background(), CreateInput{Name: "Other", Email: "JANE@example.com"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{Name: "X", Email: "bad-email"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.Create(context.Background(), CreateInput{Name: "X", Email: "x@y.z", Salary: -1})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for negative salary, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	svc.Create(context.Background(), CreateInput{Name: "A", Email: "a@x.y", Department: "Engineering"})
	svc.Create(context.Background(), CreateInput{Name: "B", Email: "b@x.y", Department: "Sales"})

	out, err := svc.List(context.Background(), ListFilter{Department: "Sales"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].Name != "B" {
		t.Fatalf("out = %+v", out)
	}

	out, _ = svc.List(context.Background(), ListFilter{Status: domain.EmployeeActive})
	if len(out) != 2 {
		t.Fatalf("active = %d", len(out))
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestService(t)
	emp, _ := svc.Create(context.Background(), CreateInput{Name: "A", Email: "a@x.y", Department: "Engineering", Salary: 100})

	dept := "Platform"
	out, err := svc.Update(context.Background(), emp.ID, UpdateInput{Department: &dept})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Department != "Platform" || out.Name != "A" || out.Salary != 100 {
		t.Fatalf("out = %+v", out)
	}

	bad := domain.EmployeeStatus("retired")
	if _, err := svc.Update(context.Background(), emp.ID, UpdateInput{Status: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(context.Background(), 999, UpdateInput{Department: &dept}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExit(t *testing.T) {
	svc := newTestService(t)
	emp, _ := svc.Create(context.Background(), CreateInput{Name: "A", Email: "a@x.y"})

	// First exit requires a date.
	if _, err := svc.Exit(context.Background(), emp.ID, "", "left"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	out, err := svc.Exit(context.Background(), emp.ID, "2026-08-01", "relocation")
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	if out.Status != domain.EmployeeExited || out.ExitDate == nil || *out.ExitDate != "2026-08-01" {
		t.Fatalf("out = %+v", out)
	}

	// Re-exit without new values keeps the first exit fields.
	out, err = svc.Exit(context.Background(), emp.ID, "", "")
	if err != nil {
		t.Fatalf("re-exit: %v", err)
	}
	if *out.ExitDate != "2026-08-01" || *out.ExitReason != "relocation" {
		t.Fatalf("exit fields changed: %+v", out)
	}

	// Supplying new values overwrites them.
	out, _ = svc.Exit(context.Background(), emp.ID, "2026-08-15", "")
	if *out.ExitDate != "2026-08-15" || *out.ExitReason != "relocation" {
		t.Fatalf("out = %+v", out)
	}
}

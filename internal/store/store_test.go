package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hrms-backend/internal/domain"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	st, err := Open(context.Background(), NewFilePersister(path))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = st.Update(context.Background(), func(g *domain.Graph) error {
		g.Requirements = append(g.Requirements, domain.Requirement{
			ID: g.NextID(domain.CollRequirements), Title: "Backend Engineer", Status: domain.RequirementPending,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("document not flushed: %v", err)
	}

	// A second store opened from the same path sees the committed state,
	// counters included.
	st2, err := Open(context.Background(), NewFilePersister(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	st2.View(func(g *domain.Graph) error {
		if len(g.Requirements) != 1 || g.Requirements[0].Title != "Backend Engineer" {
			t.Fatalf("requirements = %+v", g.Requirements)
		}
		if g.NextID(domain.CollRequirements) != 2 {
			t.Fatal("counter not persisted")
		}
		return nil
	})
}

func TestOpenMissingFileYieldsEmptyGraph(t *testing.T) {
	st, err := Open(context.Background(), NewFilePersister(filepath.Join(t.TempDir(), "missing.json")))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	st.View(func(g *domain.Graph) error {
		if len(g.Requirements) != 0 || len(g.Candidates) != 0 {
			t.Fatalf("graph not empty: %+v", g)
		}
		return nil
	})
}

func TestUpdateErrorDoesNotFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	st, err := Open(context.Background(), NewFilePersister(path))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	wantErr := errors.New("validation failed")
	err = st.Update(context.Background(), func(g *domain.Graph) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("document flushed despite update error")
	}
}

func TestNextIDMonotonicPerCollection(t *testing.T) {
	g := domain.NewGraph()
	if got := g.NextID(domain.CollCandidates); got != 1 {
		t.Fatalf("first id = %d", got)
	}
	if got := g.NextID(domain.CollCandidates); got != 2 {
		t.Fatalf("second id = %d", got)
	}
	// Counters are independent per collection.
	if got := g.NextID(domain.CollInterviews); got != 1 {
		t.Fatalf("interview id = %d", got)
	}
}

func TestCorruptDocumentRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(context.Background(), NewFilePersister(path)); err == nil {
		t.Fatal("expected decode error")
	}
}

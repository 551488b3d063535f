package reports

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

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

func seedCandidate(t *testing.T, st *store.Store, status domain.CandidateStatus, ratings ...int) int {
	t.Helper()
	var id int
	err := st.Update(context.Background(), func(g *domain.Graph) error {
		now := time.Now().UTC()
		id = g.NextID(domain.CollCandidates)
		c := domain.Candidate{
			ID: id, JobPostingID: 1, Name: "Candidate", Email: "c@example.com",
			Status: status, CreatedAt: now, UpdatedAt: now,
		}
		for _, r := range ratings {
			c.Interviews = append(c.Interviews, domain.Interview{
				ID: g.NextID(domain.CollInterviews), Rating: r, CreatedAt: now,
			})
		}
		g.Candidates = append(g.Candidates, c)
		return nil
	})
	if err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	return id
}

func TestConversionRate(t *testing.T) {
	cases := []struct {
		selected, total int
		want            string
	}{
		{0, 0, "0.00"},
		{0, 3, "0.00"},
		{1, 2, "50.00"},
		{1, 3, "33.33"},
		{3, 3, "100.00"},
	}
	for _, tc := range cases {
		if got := conversionRate(tc.selected, tc.total); got != tc.want {
			t.Fatalf("conversionRate(%d, %d) = %q, want %q", tc.selected, tc.total, got, tc.want)
		}
	}
}

func TestOverview(t *testing.T) {
	svc, st := newTestService(t)

	out, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if out.ConversionRate != "0.00" || out.TotalCandidates != 0 {
		t.Fatalf("empty overview = %+v", out)
	}

	seedCandidate(t, st, domain.CandidateSelected)
	seedCandidate(t, st, domain.CandidateRejected)
	st.Update(context.Background(), func(g *domain.Graph) error {
		g.EmailLogs = append(g.EmailLogs,
			domain.EmailLog{ID: 1, Status: domain.EmailSent},
			domain.EmailLog{ID: 2, Status: domain.EmailFailed},
		)
		return nil
	})

	out, err = svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if out.ConversionRate != "50.00" {
		t.Fatalf("conversion rate = %q", out.ConversionRate)
	}
	if out.Candidates["selected"] != 1 || out.Candidates["rejected"] != 1 {
		t.Fatalf("candidate counts = %v", out.Candidates)
	}
	if out.EmailsSent != 1 || out.EmailsFailed != 1 {
		t.Fatalf("email counts = %d/%d", out.EmailsSent, out.EmailsFailed)
	}
}

func TestTopCandidates(t *testing.T) {
	svc, st := newTestService(t)

	low := seedCandidate(t, st, domain.CandidateInterviewed, 2, 3)        // mean 2.5
	high := seedCandidate(t, st, domain.CandidateInterviewed, 5, 4)       // mean 4.5
	tiedFirst := seedCandidate(t, st, domain.CandidateInterviewed, 3)     // mean 3.0
	tiedSecond := seedCandidate(t, st, domain.CandidateInterviewed, 3, 3) // mean 3.0
	seedCandidate(t, st, domain.CandidateApplied)                         // no interviews, excluded

	out, err := svc.TopCandidates(context.Background(), 0)
	if err != nil {
		t.Fatalf("top candidates: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("ranked = %d", len(out))
	}
	if out[0].CandidateID != high || out[0].AverageRating != 4.5 {
		t.Fatalf("first = %+v", out[0])
	}
	// Ties keep insertion order.
	if out[1].CandidateID != tiedFirst || out[2].CandidateID != tiedSecond {
		t.Fatalf("tie order = %d, %d", out[1].CandidateID, out[2].CandidateID)
	}
	if out[3].CandidateID != low {
		t.Fatalf("last = %+v", out[3])
	}

	out, _ = svc.TopCandidates(context.Background(), 2)
	if len(out) != 2 {
		t.Fatalf("limited ranked = %d", len(out))
	}
}

func TestExportWorkbook(t *testing.T) {
	svc, st := newTestService(t)
	seedCandidate(t, st, domain.CandidateSelected, 5)
	seedCandidate(t, st, domain.CandidateRejected, 2)

	buf, err := svc.ExportWorkbook(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != summarySheet || sheets[1] != rankedSheet {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows(rankedSheet)
	if err != nil {
		t.Fatalf("ranked rows: %v", err)
	}
	// Header plus both interviewed candidates.
	if len(rows) != 3 {
		t.Fatalf("ranked rows = %d", len(rows))
	}
	if rows[0][0] != "Rank" {
		t.Fatalf("header = %v", rows[0])
	}
}

package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"hrms-backend/internal/domain"
)

const (
	summarySheet = "Summary"
	rankedSheet  = "Ranked Candidates"
)

// ExportWorkbook renders the overview and the full candidate ranking into
// an xlsx workbook.
func (s *Service) ExportWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	ranked, err := s.TopCandidates(ctx, overview.TotalCandidates)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	if _, err := f.NewSheet(rankedSheet); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}

	row := 1
	writeRow := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(summarySheet, cell, &values)
	}

	if err := writeRow("Recruitment summary"); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	if err := writeRow("Total candidates", overview.TotalCandidates); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	if err := writeRow("Conversion rate (%)", overview.ConversionRate); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	if err := writeRow("Emails sent", overview.EmailsSent); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	if err := writeRow("Emails failed", overview.EmailsFailed); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	if err := writeRow(); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	if err := writeRow("Candidates by status"); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	for _, status := range domain.CandidateStatuses() {
		if err := writeRow(string(status), overview.Candidates[string(status)]); err != nil {
			return nil, fmt.Errorf("export workbook: %w", err)
		}
	}

	header := []interface{}{"Rank", "Candidate", "Email", "Posting", "Interviews", "Average rating", "Status"}
	if err := f.SetSheetRow(rankedSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	for i, rc := range ranked {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export workbook: %w", err)
		}
		values := []interface{}{i + 1, rc.Name, rc.Email, rc.JobPostingID, rc.Interviews, rc.AverageRating, string(rc.Status)}
		if err := f.SetSheetRow(rankedSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("export workbook: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	return buf, nil
}

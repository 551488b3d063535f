package candidates

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/extract"
	"hrms-backend/internal/shared/telemetry"
)

// AllowedResumeFile reports whether the filename carries a resume extension
// we accept.
func AllowedResumeFile(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".doc", ".docx", ".txt":
		return true
	}
	return false
}

// UploadResume stores a resume file for the candidate and records the
// storage key on the record. Text extraction runs best-effort after the
// upload: a format we cannot parse still leaves the file stored and the
// key set.
func (s *Service) UploadResume(ctx context.Context, id int, fileName string, r io.Reader) (domain.Candidate, error) {
	if s.Objects == nil {
		return domain.Candidate{}, fmt.Errorf("upload resume: object store not configured")
	}
	if !AllowedResumeFile(fileName) {
		return domain.Candidate{}, domain.Validationf("upload resume: unsupported file type %q, allowed: .pdf, .doc, .docx, .txt", filepath.Ext(fileName))
	}

	// Existence check up front so we do not store orphaned files.
	if _, err := s.Get(ctx, id); err != nil {
		return domain.Candidate{}, err
	}

	scope := fmt.Sprintf("candidate-%d", id)
	key, size, mimeType, err := s.Objects.Save(ctx, scope, fileName, r)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("upload resume: save: %w", err)
	}

	if _, err := extract.ExtractText(ctx, s.Objects, key, mimeType, fileName); err != nil {
		telemetry.Error("candidates.resume.extract", map[string]any{
			"candidate_id": id,
			"storage_key":  key,
			"mime_type":    mimeType,
			"error":        err.Error(),
		})
	}

	var out domain.Candidate
	err = s.Store.Update(ctx, func(g *domain.Graph) error {
		c := g.CandidateByID(id)
		if c == nil {
			return domain.NotFoundf("upload resume: candidate %d", id)
		}
		c.Resume = key
		c.UpdatedAt = time.Now().UTC()
		out = *c
		return nil
	})
	if err != nil {
		return domain.Candidate{}, err
	}

	telemetry.Info("candidates.resume.uploaded", map[string]any{
		"candidate_id": id,
		"storage_key":  key,
		"size_bytes":   size,
		"mime_type":    mimeType,
	})
	return out, nil
}

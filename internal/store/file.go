package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hrms-backend/internal/domain"
)

// FilePersister stores the graph as one JSON document on disk. Writes go to
// a temp file in the same directory and are renamed into place.
type FilePersister struct {
	Path string
}

// NewFilePersister returns a persister rooted at path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{Path: path}
}

// Load reads the document, returning an empty graph if the file is absent.
func (p *FilePersister) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewGraph(), nil
		}
		return nil, fmt.Errorf("read %s: %w", p.Path, err)
	}
	g := domain.NewGraph()
	if err := json.Unmarshal(raw, g); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.Path, err)
	}
	return g, nil
}

// Save replaces the document on disk.
func (p *FilePersister) Save(ctx context.Context, g *domain.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}

	dir := filepath.Dir(p.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".graph-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, p.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

var _ Persister = (*FilePersister)(nil)

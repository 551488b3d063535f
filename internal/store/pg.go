package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hrms-backend/internal/domain"
)

// The whole graph lives in one jsonb row so Postgres keeps the same
// whole-document-replace semantics as the file persister.
const documentRowID = 1

// PGPersister stores the graph as a single jsonb row in Postgres.
type PGPersister struct {
	DB *sql.DB
}

// Load reads the document row, returning an empty graph if it is absent.
func (p *PGPersister) Load(ctx context.Context) (*domain.Graph, error) {
	var raw []byte
	err := p.DB.QueryRowContext(ctx,
		`SELECT graph FROM hr_document WHERE id = $1`, documentRowID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewGraph(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	g := domain.NewGraph()
	if err := json.Unmarshal(raw, g); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return g, nil
}

// Save upserts the document row.
func (p *PGPersister) Save(ctx context.Context, g *domain.Graph) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	_, err = p.DB.ExecContext(ctx,
		`INSERT INTO hr_document (id, graph, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (id) DO UPDATE SET graph = EXCLUDED.graph, updated_at = now()`,
		documentRowID, raw,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

var _ Persister = (*PGPersister)(nil)

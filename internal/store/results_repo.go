package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/b2b-attribution/engine/internal/attribution"
)

// ResultsRepo persists attribution.ResultDocument values into the
// attribution_results table (spec §6 "Persisted state layout"). It
// implements attribution.ResultWriter.
//
// Schema assumption (managed by migrations, not by this package):
//
//	CREATE TABLE IF NOT EXISTS attribution_results (
//	  id          UUID PRIMARY KEY,
//	  model_name  TEXT NOT NULL,
//	  created_at  TIMESTAMPTZ NOT NULL,
//	  payload     JSONB NOT NULL,
//	  metadata    JSONB NOT NULL
//	);
type ResultsRepo struct{}

// NewResultsRepo constructs a ResultsRepo.
func NewResultsRepo() *ResultsRepo {
	return &ResultsRepo{}
}

// WriteResult persists doc under a freshly generated id. Per spec §7,
// a write failure here is the caller's (the facade's) concern to log
// and swallow — this method just reports the error.
func (r *ResultsRepo) WriteResult(ctx context.Context, doc attribution.ResultDocument) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal result document: %w", err)
	}
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal result metadata: %w", err)
	}

	query := `
		INSERT INTO attribution_results (id, model_name, created_at, payload, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = pool.Exec(ctx, query, uuid.NewString(), doc.ModelName, doc.CreatedAt, payload, metadata)
	if err != nil {
		return fmt.Errorf("failed to persist attribution result: %w", err)
	}

	return nil
}

// LoadResult retrieves a previously persisted result document by id.
func (r *ResultsRepo) LoadResult(ctx context.Context, id string) (*attribution.ResultDocument, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT payload FROM attribution_results WHERE id = $1`

	var payload []byte
	err := pool.QueryRow(ctx, query, id).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no attribution result found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load attribution result: %w", err)
	}

	var doc attribution.ResultDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attribution result: %w", err)
	}
	return &doc, nil
}

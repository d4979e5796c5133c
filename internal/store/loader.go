package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/b2b-attribution/engine/internal/attribution"
	"github.com/b2b-attribution/engine/internal/domain"
)

// RecordLoader implements attribution.Loader against Postgres tables
// holding one JSONB document per lead/opportunity/touchpoint, the same
// payload-column shape ResultsRepo uses for results. Each table also
// carries the plain columns the WHERE clauses below filter on, so a
// query never has to unmarshal a row it is going to discard.
//
// Schema assumption (managed by migrations, not by this package):
//
//	CREATE TABLE IF NOT EXISTS leads (
//	  id TEXT PRIMARY KEY, account_id TEXT NOT NULL, payload JSONB NOT NULL
//	);
//	CREATE TABLE IF NOT EXISTS opportunities (
//	  id TEXT PRIMARY KEY, account_id TEXT NOT NULL, close_date DATE,
//	  stage TEXT NOT NULL, payload JSONB NOT NULL
//	);
//	CREATE TABLE IF NOT EXISTS touchpoints (
//	  id TEXT PRIMARY KEY, account_id TEXT NOT NULL, occurred_at TIMESTAMPTZ NOT NULL,
//	  payload JSONB NOT NULL
//	);
type RecordLoader struct{}

// NewRecordLoader constructs a RecordLoader.
func NewRecordLoader() *RecordLoader {
	return &RecordLoader{}
}

// LoadLeads returns every lead for the requested accounts, ignoring
// the date window (spec §7: "LoadLeads ignores the date window
// entirely").
func (l *RecordLoader) LoadLeads(ctx context.Context, q attribution.Query) ([]domain.Lead, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT payload FROM leads WHERE cardinality($1::text[]) = 0 OR account_id = ANY($1)`, q.AccountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load leads: %w", err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		var lead domain.Lead
		if err := json.Unmarshal(payload, &lead); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// LoadOpportunities returns only won deals with a close date inside
// the requested window (spec §7).
func (l *RecordLoader) LoadOpportunities(ctx context.Context, q attribution.Query) ([]domain.Opportunity, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `
		SELECT payload FROM opportunities
		WHERE (cardinality($1::text[]) = 0 OR account_id = ANY($1))
		  AND stage = 'closed_won'
		  AND ($2::timestamptz IS NULL OR close_date >= $2)
		  AND ($3::timestamptz IS NULL OR close_date <= $3)
	`, q.AccountIDs, q.From, q.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load opportunities: %w", err)
	}
	defer rows.Close()

	var opps []domain.Opportunity
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan opportunity row: %w", err)
		}
		var opp domain.Opportunity
		if err := json.Unmarshal(payload, &opp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal opportunity: %w", err)
		}
		opps = append(opps, opp)
	}
	return opps, rows.Err()
}

// LoadTouchpoints returns every touchpoint whose timestamp falls
// inside the requested window (spec §7).
func (l *RecordLoader) LoadTouchpoints(ctx context.Context, q attribution.Query) ([]domain.Touchpoint, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `
		SELECT payload FROM touchpoints
		WHERE (cardinality($1::text[]) = 0 OR account_id = ANY($1))
		  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		  AND ($3::timestamptz IS NULL OR occurred_at <= $3)
	`, q.AccountIDs, q.From, q.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load touchpoints: %w", err)
	}
	defer rows.Close()

	var touchpoints []domain.Touchpoint
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan touchpoint row: %w", err)
		}
		var tp domain.Touchpoint
		if err := json.Unmarshal(payload, &tp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal touchpoint: %w", err)
		}
		touchpoints = append(touchpoints, tp)
	}
	return touchpoints, rows.Err()
}

// Package attribution implements the Service Facade of spec §4.5: it
// orchestrates load -> compute -> analyze -> summarize -> persist,
// dispatches the five Factor Calculators concurrently, and produces
// the result document returned to callers and handed to the writer.
package attribution

import (
	"context"
	"time"

	"github.com/b2b-attribution/engine/internal/domain"
)

// Query is the common account/date filter every collaborator
// operation accepts (spec §6).
type Query struct {
	AccountIDs []string
	From       *time.Time
	To         *time.Time
}

// Loader is the narrow storage collaborator the facade depends on to
// fetch already-loaded records (spec §6, §7 Collaborator Contracts).
// Implementations own the filtering rules: LoadOpportunities returns
// only won deals with close_date inside the window; LoadTouchpoints
// filters by timestamp; LoadLeads ignores the date window entirely.
type Loader interface {
	LoadLeads(ctx context.Context, q Query) ([]domain.Lead, error)
	LoadOpportunities(ctx context.Context, q Query) ([]domain.Opportunity, error)
	LoadTouchpoints(ctx context.Context, q Query) ([]domain.Touchpoint, error)
}

// ResultWriter is the narrow persistence collaborator. Its failures
// are logged by the facade but never fail the calling operation (spec
// §6, §7 Writer failure).
type ResultWriter interface {
	WriteResult(ctx context.Context, doc ResultDocument) error
}

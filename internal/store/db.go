// Package store provides the Postgres-backed implementation of the
// ResultWriter collaborator (spec §6) that persists a calculated
// attribution result document. Persistence of leads/accounts/
// opportunities/touchpoints themselves is explicitly out of the
// core's scope (spec §1) — the facade receives those already loaded
// through the attribution.Loader interface.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/b2b-attribution/engine/internal/config"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the database connection pool from the
// DATABASE_URL environment variable, sized per poolCfg. A loader that
// fans out three concurrent queries per calculate call (spec §5) and
// a writer called once per call both draw from this single pool, so
// MaxConns is the concrete cap on how many calculate requests can have
// in-flight Postgres work at once.
func InitDB(ctx context.Context, poolCfg config.DBPoolConfig) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		pgxCfg, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}
		if poolCfg.MaxConns > 0 {
			pgxCfg.MaxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			pgxCfg.MinConns = poolCfg.MinConns
		}

		pool, err = pgxpool.NewWithConfig(ctx, pgxCfg)
	})
	return err
}

// GetPool returns the shared connection pool, or nil if InitDB was
// never called or failed.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

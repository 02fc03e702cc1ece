// Package postgres persists listing records in a PostgreSQL table.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nervousmark/firecrawl-integration/internal/extraction"
)

// Querier is the subset of pgxpool.Pool used by the store. pgxmock
// satisfies it in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store inserts listing records into the listings table.
//
// Expected schema:
//
//	CREATE TABLE listings (
//	    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    company_description TEXT NOT NULL,
//	    company_industry TEXT NOT NULL,
//	    who_they_serve TEXT NOT NULL,
//	    created_at TIMESTAMPTZ DEFAULT NOW()
//	);
type Store struct {
	db Querier
}

// New creates a Store over an open connection pool.
func New(db Querier) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &Store{db: db}, nil
}

// Connect opens a pgx pool for dsn and verifies the connection.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

const insertListing = `INSERT INTO listings (company_description, company_industry, who_they_serve)
VALUES ($1, $2, $3)
RETURNING id`

// WriteRecord inserts the record and returns its table-qualified row ID.
func (s *Store) WriteRecord(ctx context.Context, rec extraction.ListingRecord) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, insertListing,
		rec.CompanyDescription,
		rec.CompanyIndustry,
		rec.WhoTheyServe,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert listing: %w", err)
	}
	return "listings/" + id, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps values in the visitor_state table (see migrations/).
type PostgresStore struct {
	pool rowQuerier
}

// NewPostgresStore creates a store backed by a pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("storage: pgx pool required")
	}
	return &PostgresStore{pool: pool}
}

func newPostgresStoreWithQuerier(q rowQuerier) *PostgresStore {
	return &PostgresStore{pool: q}
}

// Read selects the stored document for key.
func (s *PostgresStore) Read(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM visitor_state
		WHERE key = $1
	`
	var value []byte
	if err := s.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: select %s: %w", key, err)
	}
	return value, nil
}

// Write upserts the document for key.
func (s *PostgresStore) Write(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO visitor_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("storage: upsert %s: %w", key, err)
	}
	return nil
}

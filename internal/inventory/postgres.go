package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/piwi3910/pipecut/internal/model"
)

// PostgresStore persists leftovers in PostgreSQL. This is the replicated
// backend for shops running more than one workstation against a shared
// inventory. The store performs no cross-call locking; callers are expected
// to serialize planning runs externally.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

var _ Store = (*PostgresStore)(nil)

// InitSchema creates the leftovers table if it does not exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS leftovers (
			id         TEXT PRIMARY KEY,
			length     DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create leftovers table: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) GetLeftoversSorted(ctx context.Context) ([]model.Leftover, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, length, created_at FROM leftovers ORDER BY length DESC`)
	if err != nil {
		return nil, fmt.Errorf("query leftovers: %w", err)
	}
	defer rows.Close()

	var leftovers []model.Leftover
	for rows.Next() {
		var lo model.Leftover
		if err := rows.Scan(&lo.ID, &lo.Length, &lo.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan leftover: %w", err)
		}
		leftovers = append(leftovers, lo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leftovers: %w", err)
	}
	return leftovers, nil
}

func (s *PostgresStore) InsertLeftover(ctx context.Context, length float64) (model.Leftover, error) {
	lo := model.NewLeftover(length)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO leftovers (id, length, created_at) VALUES ($1, $2, $3)`,
		lo.ID, lo.Length, lo.CreatedAt)
	if err != nil {
		return model.Leftover{}, fmt.Errorf("insert leftover: %w", err)
	}
	return lo, nil
}

func (s *PostgresStore) DeleteLeftover(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM leftovers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete leftover %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) InsertLeftoversBatch(ctx context.Context, lengths []float64) error {
	if len(lengths) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, length := range lengths {
			lo := model.NewLeftover(length)
			if _, err := tx.Exec(ctx,
				`INSERT INTO leftovers (id, length, created_at) VALUES ($1, $2, $3)`,
				lo.ID, lo.Length, lo.CreatedAt); err != nil {
				return fmt.Errorf("insert leftover batch: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) DeleteLeftoversBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM leftovers WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete leftover batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) ClearAllLeftovers(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM leftovers`); err != nil {
		return fmt.Errorf("clear leftovers: %w", err)
	}
	return nil
}

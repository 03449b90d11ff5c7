package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// PostgresStore is the durable Store, used when DATABASE_URL is set.
// Schema: migrations/001_create_analyses.sql. ID monotonicity comes
// from the analyses BIGSERIAL, uniqueness per code from its UNIQUE
// constraint.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to Postgres and verifies the connection
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("host", config.ConnConfig.Host).Msg("connected to database")

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// HealthCheck verifies database connectivity
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Find(ctx context.Context, code string) (*Record, error) {
	rec := &Record{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, language, lines_of_code, time_complexity, space_complexity, explanation, created_at
		FROM analyses
		WHERE code = $1
	`, code).Scan(&rec.ID, &rec.Code, &rec.Language, &rec.LinesOfCode,
		&rec.TimeComplexity, &rec.SpaceComplexity, &rec.Explanation, &rec.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}

	return rec, nil
}

func (s *PostgresStore) Create(ctx context.Context, rec *Record) error {
	rec.CreatedAt = time.Now().UTC()

	// ON CONFLICT keeps the first record for a code string; the insert
	// then reads back whichever row won.
	err := s.pool.QueryRow(ctx, `
		INSERT INTO analyses (code, language, lines_of_code, time_complexity, space_complexity, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code) DO NOTHING
		RETURNING id, created_at
	`, rec.Code, rec.Language, rec.LinesOfCode, rec.TimeComplexity,
		rec.SpaceComplexity, rec.Explanation, rec.CreatedAt).Scan(&rec.ID, &rec.CreatedAt)

	if err == pgx.ErrNoRows {
		existing, ferr := s.Find(ctx, rec.Code)
		if ferr != nil {
			return ferr
		}
		if existing != nil {
			*rec = *existing
			return nil
		}
		return fmt.Errorf("failed to create analysis: conflicting row not found")
	}
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, code, language, lines_of_code, time_complexity, space_complexity, explanation, created_at
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.Language, &rec.LinesOfCode,
			&rec.TimeComplexity, &rec.SpaceComplexity, &rec.Explanation, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}

	return out, nil
}

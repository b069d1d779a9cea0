package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/wellbreathe/backend/internal/domain"
)

// Pool is the subset of pgxpool.Pool the repository uses; pgxmock satisfies it in tests
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresRepository implements domain.Repository
type PostgresRepository struct {
	pool Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return NewPostgresRepository(pool), nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS simulation_logs (
		id            BIGSERIAL PRIMARY KEY,
		temperature   DOUBLE PRECISION NOT NULL,
		humidity      DOUBLE PRECISION NOT NULL,
		wind          DOUBLE PRECISION NOT NULL,
		precipitation DOUBLE PRECISION NOT NULL,
		visibility    DOUBLE PRECISION NOT NULL,
		result        TEXT NOT NULL,
		source        TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_simulation_logs_created_at ON simulation_logs (created_at DESC)`,
}

// Migrate creates the tables if they do not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return eris.Wrap(err, "postgres: migrate")
		}
	}
	return nil
}

// Get reads the value stored under key
func (r *PostgresRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "postgres: failed to get %s", key)
	}
	return value, true, nil
}

// Set upserts the value stored under key
func (r *PostgresRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return eris.Wrapf(err, "postgres: failed to set %s", key)
	}
	return nil
}

// SaveSimulationLog persists a simulator run to PostgreSQL
func (r *PostgresRepository) SaveSimulationLog(ctx context.Context, log domain.SimulationLog) error {
	query := `
		INSERT INTO simulation_logs (
			temperature, humidity, wind, precipitation, visibility,
			result, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	in := log.Input
	_, err := r.pool.Exec(ctx, query,
		in.Temperature, in.Humidity, in.Wind, in.Precipitation, in.Visibility,
		string(log.Result), log.Source, log.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: failed to save simulation log")
	}

	return nil
}

// RecentSimulationLogs returns the latest runs, newest first
func (r *PostgresRepository) RecentSimulationLogs(ctx context.Context, limit int) ([]domain.SimulationLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := `
		SELECT temperature, humidity, wind, precipitation, visibility,
			   result, source, created_at
		FROM simulation_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: failed to query simulation logs")
	}
	defer rows.Close()

	var results []domain.SimulationLog
	for rows.Next() {
		var (
			l      domain.SimulationLog
			result string
		)
		err := rows.Scan(
			&l.Input.Temperature, &l.Input.Humidity, &l.Input.Wind, &l.Input.Precipitation, &l.Input.Visibility,
			&result, &l.Source, &l.CreatedAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: failed to scan simulation log row")
		}
		l.Result = domain.RiskLevel(result)
		results = append(results, l)
	}

	return results, eris.Wrap(rows.Err(), "postgres: iterate simulation logs")
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return eris.Wrap(err, "postgres: health check failed")
	}
	return nil
}

// Close releases the pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

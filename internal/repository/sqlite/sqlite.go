// Package sqlite stores favorites and simulation logs in an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/wellbreathe/backend/internal/domain"
)

// SQLiteRepository implements domain.Repository using modernc.org/sqlite
type SQLiteRepository struct {
	db *sql.DB
}

// Open opens a SQLite database at the given path and configures WAL mode
func Open(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteRepository{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS simulation_logs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	temperature   REAL NOT NULL,
	humidity      REAL NOT NULL,
	wind          REAL NOT NULL,
	precipitation REAL NOT NULL,
	visibility    REAL NOT NULL,
	result        TEXT NOT NULL,
	source        TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_simulation_logs_created_at ON simulation_logs(created_at);
`

// Migrate creates the tables if they do not exist
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "sqlite: get %s", key)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: set %s", key)
}

func (r *SQLiteRepository) SaveSimulationLog(ctx context.Context, log domain.SimulationLog) error {
	in := log.Input
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO simulation_logs (temperature, humidity, wind, precipitation, visibility, result, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Temperature, in.Humidity, in.Wind, in.Precipitation, in.Visibility,
		string(log.Result), log.Source, log.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "sqlite: insert simulation log")
}

func (r *SQLiteRepository) RecentSimulationLogs(ctx context.Context, limit int) ([]domain.SimulationLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT temperature, humidity, wind, precipitation, visibility, result, source, created_at
		 FROM simulation_logs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list simulation logs")
	}
	defer rows.Close()

	var logs []domain.SimulationLog
	for rows.Next() {
		var (
			l      domain.SimulationLog
			result string
		)
		if err := rows.Scan(
			&l.Input.Temperature, &l.Input.Humidity, &l.Input.Wind, &l.Input.Precipitation, &l.Input.Visibility,
			&result, &l.Source, &l.CreatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan simulation log")
		}
		l.Result = domain.RiskLevel(result)
		logs = append(logs, l)
	}
	return logs, eris.Wrap(rows.Err(), "sqlite: list simulation logs iterate")
}

func (r *SQLiteRepository) Health(ctx context.Context) error {
	return eris.Wrap(r.db.PingContext(ctx), "sqlite: ping")
}

package domain

import (
	"context"
	"time"
)

// SimulationLog records one simulator run
type SimulationLog struct {
	Input     SimulationInput `json:"input"`
	Result    RiskLevel       `json:"result"`
	Source    string          `json:"source"`
	CreatedAt time.Time       `json:"created_at"`
}

// KeyValueStore is the persistence port for small documents stored under a fixed key.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key, value string) error

	// Health checks storage connectivity
	Health(ctx context.Context) error
}

// SimulationLogRepository persists simulator runs
type SimulationLogRepository interface {
	SaveSimulationLog(ctx context.Context, log SimulationLog) error
	RecentSimulationLogs(ctx context.Context, limit int) ([]SimulationLog, error)
}

// Repository is implemented by every storage backend
type Repository interface {
	KeyValueStore
	SimulationLogRepository
	Close() error
}

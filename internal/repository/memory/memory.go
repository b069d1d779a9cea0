package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/wellbreathe/backend/internal/domain"
)

// MemoryRepository implements domain.Repository for tests and demo mode; nothing survives a restart
type MemoryRepository struct {
	mu   sync.Mutex
	kv   map[string]string
	logs []domain.SimulationLog
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{kv: make(map[string]string)}
}

// Get returns the stored value, if any
func (r *MemoryRepository) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.kv[key]
	return v, ok, nil
}

// Set replaces the stored value
func (r *MemoryRepository) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kv[key] = value
	return nil
}

// SaveSimulationLog keeps the run in memory
func (r *MemoryRepository) SaveSimulationLog(ctx context.Context, log domain.SimulationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

// RecentSimulationLogs returns the latest runs, newest first
func (r *MemoryRepository) RecentSimulationLogs(ctx context.Context, limit int) ([]domain.SimulationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(r.logs)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

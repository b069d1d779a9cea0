package service

import (
	"github.com/wellbreathe/backend/internal/domain"
)

// KeyValueStore is re-exported from domain for convenience
type KeyValueStore = domain.KeyValueStore

// SimulationLogRepository is re-exported from domain for convenience
type SimulationLogRepository = domain.SimulationLogRepository

package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/internal/observability"
)

// RiskModel is an external classifier that can replace the built-in rules
type RiskModel interface {
	Predict(ctx context.Context, in domain.SimulationInput) (domain.SimulationOutcome, error)
	Health(ctx context.Context) error
}

// SimulatorService runs hypothetical-condition simulations
type SimulatorService struct {
	model   RiskModel
	logs    SimulationLogRepository
	metrics *observability.Metrics
	log     *zap.Logger
	now     func() time.Time

	wgBg sync.WaitGroup // tracks background log writes for graceful shutdown
}

// NewSimulatorService creates a simulator. model may be nil, in which case only the rule set is used.
func NewSimulatorService(
	model RiskModel,
	logs SimulationLogRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *SimulatorService {
	return &SimulatorService{
		model:   model,
		logs:    logs,
		metrics: metrics,
		log:     logger.With(zap.String("component", "simulator")),
		now:     time.Now,
	}
}

// WaitBackground blocks until all background log writes complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *SimulatorService) WaitBackground() {
	s.wgBg.Wait()
}

// SimulateRaw parses five raw form values and simulates them
func (s *SimulatorService) SimulateRaw(ctx context.Context, temp, hum, wind, precip, vis string) (domain.SimulationOutcome, error) {
	in, err := domain.ParseSimulationInput(temp, hum, wind, precip, vis)
	if err != nil {
		return domain.SimulationOutcome{}, err
	}
	return s.Simulate(ctx, in)
}

// Simulate classifies the input. Invalid input fails before any model is consulted.
func (s *SimulatorService) Simulate(ctx context.Context, in domain.SimulationInput) (domain.SimulationOutcome, error) {
	if err := in.Validate(); err != nil {
		return domain.SimulationOutcome{}, err
	}

	outcome, err := s.classify(ctx, in)
	if err != nil {
		return domain.SimulationOutcome{}, err
	}

	s.metrics.Simulations.WithLabelValues(string(outcome.Result), outcome.Source).Inc()
	s.record(in, outcome)
	return outcome, nil
}

// Recent returns the latest recorded simulations
func (s *SimulatorService) Recent(ctx context.Context, limit int) ([]domain.SimulationLog, error) {
	return s.logs.RecentSimulationLogs(ctx, limit)
}

// ModelHealth reports the remote model's health; nil when none is configured
func (s *SimulatorService) ModelHealth(ctx context.Context) error {
	if s.model == nil {
		return nil
	}
	return s.model.Health(ctx)
}

func (s *SimulatorService) classify(ctx context.Context, in domain.SimulationInput) (domain.SimulationOutcome, error) {
	if s.model != nil {
		outcome, err := s.model.Predict(ctx, in)
		if err == nil {
			return outcome, nil
		}
		s.log.Warn("risk model failed, using heuristic", zap.Error(err))
	}
	return heuristicOutcome(in)
}

// record persists the run asynchronously (tracked for graceful shutdown)
func (s *SimulatorService) record(in domain.SimulationInput, outcome domain.SimulationOutcome) {
	entry := domain.SimulationLog{
		Input:     in,
		Result:    outcome.Result,
		Source:    outcome.Source,
		CreatedAt: s.now().UTC(),
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.logs.SaveSimulationLog(bgCtx, entry); err != nil {
			s.log.Error("failed to save simulation log", zap.Error(err))
		}
	}()
}

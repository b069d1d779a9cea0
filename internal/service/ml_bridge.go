package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wellbreathe/backend/internal/domain"
)

// MLBridge handles communication with the Python risk model service
type MLBridge struct {
	serviceURL string
	httpClient *http.Client
	log        *zap.Logger
}

// NewMLBridge creates a new ML bridge
func NewMLBridge(serviceURL string, timeout time.Duration, logger *zap.Logger) *MLBridge {
	return &MLBridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger.With(zap.String("component", "ml_bridge")),
	}
}

// modelResponse is the body returned by POST /predict
type modelResponse struct {
	Risk       string  `json:"risk"`
	Confidence float64 `json:"confidence"`
}

// Predict asks the model service to classify the input.
// Transport failures and non-200 answers fall back to the local heuristic.
func (b *MLBridge) Predict(ctx context.Context, in domain.SimulationInput) (domain.SimulationOutcome, error) {
	// Prepare request body
	body, err := json.Marshal(in)
	if err != nil {
		return domain.SimulationOutcome{}, fmt.Errorf("ml_bridge: failed to marshal request: %w", err)
	}

	// Create HTTP request
	url := fmt.Sprintf("%s/predict", b.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.SimulationOutcome{}, fmt.Errorf("ml_bridge: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Execute request
	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		b.log.Warn("model service unreachable, using heuristic", zap.Error(err))
		return heuristicOutcome(in)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.log.Warn("model service returned non-200, using heuristic", zap.Int("status", resp.StatusCode))
		return heuristicOutcome(in)
	}

	// Parse response
	var prediction modelResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return domain.SimulationOutcome{}, fmt.Errorf("ml_bridge: failed to decode response: %w", err)
	}

	risk := domain.RiskLevel(prediction.Risk)
	if risk != domain.RiskLow && risk != domain.RiskElevated {
		return domain.SimulationOutcome{}, fmt.Errorf("ml_bridge: unknown risk %q", prediction.Risk)
	}

	return domain.SimulationOutcome{Result: risk, Source: domain.SourceModel}, nil
}

// Health checks ML service connectivity
func (b *MLBridge) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ml_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}

// heuristicOutcome is the fallback verdict when the model cannot answer
func heuristicOutcome(in domain.SimulationInput) (domain.SimulationOutcome, error) {
	risk, err := domain.Classify(in)
	if err != nil {
		return domain.SimulationOutcome{}, err
	}
	return domain.SimulationOutcome{Result: risk, Source: domain.SourceHeuristic}, nil
}

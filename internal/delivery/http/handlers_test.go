package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/wellbreathe/backend/internal/dataset"
	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/internal/observability"
	"github.com/wellbreathe/backend/internal/repository/memory"
	"github.com/wellbreathe/backend/internal/service"
)

// brokenStore fails every write and read
type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (brokenStore) Set(ctx context.Context, key, value string) error {
	return errors.New("connection refused")
}

func (brokenStore) Health(ctx context.Context) error {
	return errors.New("connection refused")
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
	Error   bool            `json:"error"`
	Message string          `json:"message"`
}

func newTestApp(t *testing.T, store service.KeyValueStore) *fiber.App {
	t.Helper()

	catalog, err := dataset.LoadEmbedded(language.BrazilianPortuguese)
	require.NoError(t, err)

	metrics := observability.NewMetricsForTesting()
	logger := zap.NewNop()
	favorites := service.NewFavoritesStore(store, catalog, metrics, logger)
	simulator := service.NewSimulatorService(nil, memory.NewMemoryRepository(), metrics, logger)
	t.Cleanup(simulator.WaitBackground)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, catalog, favorites, simulator, logger)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealthCheck(t *testing.T) {
	status, _ := doRequest(t, newTestApp(t, memory.NewMemoryRepository()), fiber.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doRequest(t, newTestApp(t, brokenStore{}), fiber.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestListCities(t *testing.T) {
	app := newTestApp(t, memory.NewMemoryRepository())

	status, env := doRequest(t, app, fiber.MethodGet, "/api/v1/cities", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, 6, env.Count)

	var cities []domain.CitySummary
	require.NoError(t, json.Unmarshal(env.Data, &cities))
	require.Len(t, cities, 6)
	assert.Equal(t, "Bogota", cities[0].LocationName)
	assert.Equal(t, "Moderate", cities[0].Band.Label)

	status, env = doRequest(t, app, fiber.MethodGet, "/api/v1/cities?search=DELHI", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &cities))
	require.Len(t, cities, 1)
	assert.Equal(t, "New Delhi", cities[0].LocationName)
	assert.Equal(t, 112.53, cities[0].MeanPM25)
	assert.Equal(t, "Unhealthy", cities[0].Band.Label)
	assert.False(t, cities[0].IsFavorite)

	status, env = doRequest(t, app, fiber.MethodGet, "/api/v1/cities?search=zzz", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, env.Count)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestGetCity(t *testing.T) {
	app := newTestApp(t, memory.NewMemoryRepository())

	status, env := doRequest(t, app, fiber.MethodGet, "/api/v1/cities/New%20Delhi", "")
	require.Equal(t, fiber.StatusOK, status)

	var report domain.CityReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "New Delhi", report.LocationName)
	assert.Equal(t, "Hazardous", report.WorstDay.Category.Label)
	assert.Equal(t, "Moderate", report.BestDay.Category.Label)
	assert.Equal(t, "Zona Industrial com Alta Retencao", report.Cluster.Name)

	status, env = doRequest(t, app, fiber.MethodGet, "/api/v1/cities/Atlantis", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.True(t, env.Error)
	assert.Contains(t, env.Message, "not found")
}

func TestGetCluster(t *testing.T) {
	app := newTestApp(t, memory.NewMemoryRepository())

	status, env := doRequest(t, app, fiber.MethodGet, "/api/v1/clusters/Unknown%20Cluster", "")
	require.Equal(t, fiber.StatusOK, status)

	var profile domain.ClusterProfile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Unknown Cluster", profile.Name)
	assert.Equal(t, domain.ClusterInfo(domain.UnclassifiedCluster).Description, profile.Description)
}

func TestFavoritesFlow(t *testing.T) {
	app := newTestApp(t, memory.NewMemoryRepository())

	status, env := doRequest(t, app, fiber.MethodPost, "/api/v1/favorites", `{"name":"Reykjavik"}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"name":"Reykjavik","threshold":25}`, string(env.Data))

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/v1/favorites", `{"name":"Bogota","threshold":15}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/v1/favorites", `{"name":"Atlantis"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = doRequest(t, app, fiber.MethodGet, "/api/v1/favorites", "")
	require.Equal(t, fiber.StatusOK, status)
	var favs []domain.CitySummary
	require.NoError(t, json.Unmarshal(env.Data, &favs))
	require.Len(t, favs, 2)
	assert.Equal(t, "Bogota", favs[0].LocationName)
	assert.Equal(t, "Reykjavik", favs[1].LocationName)
	assert.True(t, favs[0].IsFavorite)

	status, env = doRequest(t, app, fiber.MethodPost, "/api/v1/favorites/Bogota/toggle", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"name":"Bogota","is_favorite":false}`, string(env.Data))

	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/v1/favorites/Reykjavik", "")
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/v1/favorites/Reykjavik", "")
	require.Equal(t, fiber.StatusOK, status)

	_, env = doRequest(t, app, fiber.MethodGet, "/api/v1/favorites", "")
	assert.Equal(t, 0, env.Count)

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/v1/favorites/Lisbon/toggle", "")
	require.Equal(t, fiber.StatusOK, status)
	_, env = doRequest(t, app, fiber.MethodGet, "/api/v1/cities?search=lisbon", "")
	var cities []domain.CitySummary
	require.NoError(t, json.Unmarshal(env.Data, &cities))
	require.Len(t, cities, 1)
	assert.True(t, cities[0].IsFavorite)

	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/v1/favorites", "")
	require.Equal(t, fiber.StatusOK, status)
	_, env = doRequest(t, app, fiber.MethodGet, "/api/v1/favorites", "")
	assert.Equal(t, 0, env.Count)
}

func TestFavorites_BadRequests(t *testing.T) {
	app := newTestApp(t, memory.NewMemoryRepository())

	status, env := doRequest(t, app, fiber.MethodPost, "/api/v1/favorites", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.True(t, env.Error)

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/v1/favorites/Atlantis/toggle", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestFavorites_PersistenceFailure(t *testing.T) {
	app := newTestApp(t, brokenStore{})

	status, env := doRequest(t, app, fiber.MethodGet, "/api/v1/favorites", "")
	require.Equal(t, fiber.StatusOK, status, "reads degrade to empty")
	assert.Equal(t, 0, env.Count)

	status, env = doRequest(t, app, fiber.MethodPost, "/api/v1/favorites", `{"name":"Lisbon"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to save favorites", env.Message)
}

func TestSimulate(t *testing.T) {
	app := newTestApp(t, memory.NewMemoryRepository())

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult domain.RiskLevel
	}{
		{"numbers", `{"temperature":30.5,"humidity":20,"wind":5,"precipitation":0,"visibility":10}`, fiber.StatusOK, domain.RiskElevated},
		{"strings", `{"temperature":"20","humidity":"50","wind":"5","precipitation":"5","visibility":"10"}`, fiber.StatusOK, domain.RiskLow},
		{"decimal comma", `{"temperature":"28","humidity":"80","wind":"20","precipitation":"0","visibility":"3,5"}`, fiber.StatusOK, domain.RiskElevated},
		{"non-numeric field", `{"temperature":"abc","humidity":"50","wind":"5","precipitation":"5","visibility":"10"}`, fiber.StatusBadRequest, ""},
		{"missing field", `{"temperature":20,"humidity":50,"wind":5,"precipitation":5}`, fiber.StatusBadRequest, ""},
		{"malformed body", `{"temperature":`, fiber.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doRequest(t, app, fiber.MethodPost, "/api/v1/simulate", tt.body)
			require.Equal(t, tt.wantStatus, status)
			if tt.wantStatus != fiber.StatusOK {
				assert.True(t, env.Error)
				return
			}

			var out domain.SimulationOutcome
			require.NoError(t, json.Unmarshal(env.Data, &out))
			assert.Equal(t, tt.wantResult, out.Result)
			assert.Equal(t, domain.SourceHeuristic, out.Source)
		})
	}
}

func TestSimulate_ValidationMessage(t *testing.T) {
	app := newTestApp(t, memory.NewMemoryRepository())

	_, env := doRequest(t, app, fiber.MethodPost, "/api/v1/simulate",
		`{"temperature":"20","humidity":"wet","wind":"5","precipitation":"5","visibility":"10"}`)
	assert.Equal(t, `invalid humidity "wet": every field must be a number`, env.Message)
}

package http

import (
	"encoding/json"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wellbreathe/backend/internal/dataset"
	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	catalog   *dataset.Catalog
	favorites *service.FavoritesStore
	simulator *service.SimulatorService
	log       *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(catalog *dataset.Catalog, favorites *service.FavoritesStore, simulator *service.SimulatorService, logger *zap.Logger) *Handler {
	return &Handler{
		catalog:   catalog,
		favorites: favorites,
		simulator: simulator,
		log:       logger.With(zap.String("component", "http")),
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx := c.Context()

	status := fiber.StatusOK
	body := fiber.Map{
		"status":  "ok",
		"service": "wellbreathe-backend",
		"version": "1.0.0",
		"cities":  h.catalog.Len(),
		"store":   "ok",
		"model":   "ok",
	}

	if err := h.favorites.Health(ctx); err != nil {
		h.log.Warn("store health check failed", zap.Error(err))
		status = fiber.StatusServiceUnavailable
		body["status"] = "degraded"
		body["store"] = "unavailable"
	}
	// the heuristic covers a missing model, so this never fails the check
	if err := h.simulator.ModelHealth(ctx); err != nil {
		body["model"] = "unavailable"
	}

	return c.Status(status).JSON(body)
}

// ListCities returns city summaries, optionally filtered by ?search=
func (h *Handler) ListCities(c *fiber.Ctx) error {
	ctx := c.Context()

	records := h.catalog.Search(c.Query("search"))
	saved := h.favorites.Names(ctx)

	data := make([]domain.CitySummary, 0, len(records))
	for _, r := range records {
		data = append(data, toSummary(r, saved[r.LocationName]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// GetCity returns the full report for one city
func (h *Handler) GetCity(c *fiber.Ctx) error {
	ctx := c.Context()

	name, err := nameParam(c)
	if err != nil {
		return err
	}

	city, err := h.catalog.Get(name)
	if err != nil {
		return mapError(err, "Failed to fetch city")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toReport(city, h.favorites.IsFavorite(ctx, name)),
	})
}

// GetCluster returns a cluster profile; unknown names get the unclassified profile
func (h *Handler) GetCluster(c *fiber.Ctx) error {
	name, err := nameParam(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    domain.ClusterInfo(name),
	})
}

// ListFavorites returns the saved cities that still exist, sorted by name
func (h *Handler) ListFavorites(c *fiber.Ctx) error {
	ctx := c.Context()

	records := h.favorites.Details(ctx)
	data := make([]domain.CitySummary, 0, len(records))
	for _, r := range records {
		data = append(data, toSummary(r, true))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

type addFavoriteRequest struct {
	Name      string   `json:"name"`
	Threshold *float64 `json:"threshold"`
}

// AddFavorite saves a city; adding a saved city again is a no-op
func (h *Handler) AddFavorite(c *fiber.Ctx) error {
	ctx := c.Context()

	var req addFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if _, err := h.catalog.Get(req.Name); err != nil {
		return mapError(err, "Failed to save favorites")
	}

	threshold := domain.DefaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if err := h.favorites.Add(ctx, req.Name, threshold); err != nil {
		return mapError(err, "Failed to save favorites")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    domain.FavoriteEntry{Name: req.Name, Threshold: threshold},
	})
}

// RemoveFavorite deletes a saved city; removing an absent one still succeeds
func (h *Handler) RemoveFavorite(c *fiber.Ctx) error {
	ctx := c.Context()

	name, err := nameParam(c)
	if err != nil {
		return err
	}
	if err := h.favorites.Remove(ctx, name); err != nil {
		return mapError(err, "Failed to save favorites")
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// ToggleFavorite flips the saved state of a city
func (h *Handler) ToggleFavorite(c *fiber.Ctx) error {
	ctx := c.Context()

	name, err := nameParam(c)
	if err != nil {
		return err
	}
	if _, err := h.catalog.Get(name); err != nil {
		return mapError(err, "Failed to save favorites")
	}

	saved, err := h.favorites.Toggle(ctx, name)
	if err != nil {
		return mapError(err, "Failed to save favorites")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"name": name, "is_favorite": saved},
	})
}

// ClearFavorites empties the saved list
func (h *Handler) ClearFavorites(c *fiber.Ctx) error {
	if err := h.favorites.Clear(c.Context()); err != nil {
		return mapError(err, "Failed to save favorites")
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// numberField accepts a JSON string or number and keeps its text form
type numberField string

func (f *numberField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = numberField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = numberField(n.String())
	return nil
}

type simulateRequest struct {
	Temperature   numberField `json:"temperature"`
	Humidity      numberField `json:"humidity"`
	Wind          numberField `json:"wind"`
	Precipitation numberField `json:"precipitation"`
	Visibility    numberField `json:"visibility"`
}

// Simulate classifies hypothetical conditions as low or elevated risk
func (h *Handler) Simulate(c *fiber.Ctx) error {
	ctx := c.Context()

	var req simulateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	outcome, err := h.simulator.SimulateRaw(ctx,
		string(req.Temperature), string(req.Humidity), string(req.Wind),
		string(req.Precipitation), string(req.Visibility),
	)
	if err != nil {
		return mapError(err, "Failed to run simulation")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    outcome,
	})
}

// RecentSimulations returns the latest simulation runs
func (h *Handler) RecentSimulations(c *fiber.Ctx) error {
	ctx := c.Context()

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	data, err := h.simulator.Recent(ctx, limit)
	if err != nil {
		h.log.Error("failed to fetch simulation logs", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch simulation history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// mapError turns domain errors into HTTP errors; anything unrecognised is a 500 with fallback
func mapError(err error, fallback string) error {
	var (
		verr *domain.ValidationError
		nerr *domain.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	case errors.As(err, &nerr):
		return fiber.NewError(fiber.StatusNotFound, nerr.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}

func nameParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid name")
	}
	return name, nil
}

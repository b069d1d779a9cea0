package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wellbreathe/backend/internal/dataset"
	"github.com/wellbreathe/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(
	app *fiber.App,
	catalog *dataset.Catalog,
	favorites *service.FavoritesStore,
	simulator *service.SimulatorService,
	logger *zap.Logger,
) {
	handler := NewHandler(catalog, favorites, simulator, logger)

	// Health check and Prometheus scrape endpoint
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Reference dataset
		api.Get("/cities", handler.ListCities)
		api.Get("/cities/:name", handler.GetCity)
		api.Get("/clusters/:name", handler.GetCluster)

		// Favorites
		api.Get("/favorites", handler.ListFavorites)
		api.Post("/favorites", handler.AddFavorite)
		api.Delete("/favorites", handler.ClearFavorites)
		api.Delete("/favorites/:name", handler.RemoveFavorite)
		api.Post("/favorites/:name/toggle", handler.ToggleFavorite)

		// Simulator
		api.Post("/simulate", handler.Simulate)
		api.Get("/simulations", handler.RecentSimulations)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/wellbreathe/backend/internal/config"
	"github.com/wellbreathe/backend/internal/dataset"
	"github.com/wellbreathe/backend/internal/delivery/http"
	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/internal/observability"
	"github.com/wellbreathe/backend/internal/repository/memory"
	"github.com/wellbreathe/backend/internal/repository/postgres"
	"github.com/wellbreathe/backend/internal/repository/sqlite"
	"github.com/wellbreathe/backend/internal/service"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("invalid configuration", zap.Error(err))
	}

	log, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	// Dataset
	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatal("failed to load dataset", zap.Error(err))
	}
	log.Info("dataset loaded", zap.Int("cities", catalog.Len()), zap.String("locale", catalog.Locale().String()))

	// Dependency Injection: Repositories
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer repo.Close()
	log.Info("store ready", zap.String("driver", cfg.StoreDriver))

	// Dependency Injection: Services
	var model service.RiskModel
	if cfg.MLServiceURL != "" {
		model = service.NewMLBridge(cfg.MLServiceURL, cfg.MLTimeout, log)
		log.Info("remote risk model enabled", zap.String("url", cfg.MLServiceURL))
	}
	favorites := service.NewFavoritesStore(repo, catalog, metrics, log)
	simulator := service.NewSimulatorService(model, repo, metrics, log)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "WellBreathe API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, catalog, favorites, simulator, log)

	// Graceful shutdown
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	simulator.WaitBackground()
	log.Info("server exited gracefully")
}

func loadCatalog(cfg *config.Config) (*dataset.Catalog, error) {
	if cfg.DatasetPath == "" {
		return dataset.LoadEmbedded(cfg.Locale())
	}
	return dataset.LoadFile(cfg.DatasetPath, cfg.Locale())
}

func openRepository(ctx context.Context, cfg *config.Config) (domain.Repository, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		repo, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	default:
		return memory.NewMemoryRepository(), nil
	}
}

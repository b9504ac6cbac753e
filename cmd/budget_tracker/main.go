package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/core/services"
	"github.com/SscSPs/budget_tracker/internal/handlers"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
	"github.com/SscSPs/budget_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/budget_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/budget_tracker/internal/web"
	"github.com/SscSPs/budget_tracker/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, err := openRepositories(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.DBDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := repos.Closer.Close(); cerr != nil {
			logger.Error("Error closing storage", slog.String("error", cerr.Error()))
		}
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tmpl, err := web.Templates()
	if err != nil {
		logger.Error("Failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.SetHTMLTemplate(tmpl)

	serviceContainer := services.NewServiceContainer(cfg, repos)
	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openRepositories migrates and connects the configured store.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		logger.Info("Running database migrations...")
		applied, err := database.RunPostgresMigrations(cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logMigrationResult(logger, applied)

		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), nil

	case config.DriverSQLite:
		logger.Info("Running database migrations...", slog.String("path", cfg.SQLitePath))
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		applied, err := database.RunSQLiteMigrations(cfg.SQLitePath)
		if err != nil {
			db.Close()
			return portsrepo.RepositoryProvider{}, err
		}
		logMigrationResult(logger, applied)
		return sqlite.NewRepositoryProvider(db), nil

	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func logMigrationResult(logger *slog.Logger, applied bool) {
	if applied {
		logger.Info("Database migrations applied successfully.")
		return
	}
	logger.Info("No new migrations to apply.")
}

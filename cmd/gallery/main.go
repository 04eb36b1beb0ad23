package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/latoulicious/artgallery/internal/config"
	"github.com/latoulicious/artgallery/internal/httpapi"
	"github.com/latoulicious/artgallery/internal/jobs"
	"github.com/latoulicious/artgallery/internal/version"
	"github.com/latoulicious/artgallery/pkg/catalog"
	"github.com/latoulicious/artgallery/pkg/database"
	"github.com/latoulicious/artgallery/pkg/database/repository"
	"github.com/latoulicious/artgallery/pkg/logging"
)

func main() {
	if err := initializeApplication(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

// initializeApplication wires the catalog, the HTTP server and the jobs,
// then blocks until a termination signal arrives
func initializeApplication() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var db *gorm.DB
	if cfg.HasDatabase() {
		db, err = database.NewGormDBWithOptions(cfg.Database.URL, databaseOptions(cfg))
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close(db)
	}

	loggerFactory := initializeLogging(cfg, db)
	systemLogger := loggerFactory.CreateLogger("system")
	systemLogger.Info("Starting gallery service", map[string]interface{}{
		"version": version.Get().String(),
		"mode":    string(catalog.SelectMode(cfg.Database.URL)),
	})

	cat, err := catalog.New(catalog.ConfigFrom(cfg), catalog.Deps{DB: db, Loggers: loggerFactory})
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	catalog.SetDefault(cat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var limiter *httpapi.RateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = httpapi.NewRateLimiter(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Catalog:     cat,
		Loggers:     loggerFactory,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimiter: limiter,
		StartTime:   time.Now(),
	})

	server := httpapi.NewServer(cfg.Server.Addr, router, loggerFactory.CreateLogger("server"))
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	scheduler, err := startJobs(cfg, cat, db, loggerFactory)
	if err != nil {
		_ = server.Shutdown(cfg.Server.ShutdownTimeout)
		return err
	}

	systemLogger.Info("Gallery service is running", map[string]interface{}{
		"addr": cfg.Server.Addr,
	})

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-server.Err():
	}

	systemLogger.Info("Shutting down gracefully...", nil)
	if err := server.Shutdown(cfg.Server.ShutdownTimeout); err != nil {
		systemLogger.Error("HTTP server did not shut down cleanly", err, nil)
	}
	if scheduler != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := scheduler.Stop(stopCtx); err != nil {
			systemLogger.Warn("Jobs still running at shutdown", map[string]interface{}{"error": err.Error()})
		}
	}

	systemLogger.Info("Application shutdown complete", nil)
	if flusher, ok := loggerFactory.(interface{ Flush() }); ok {
		flusher.Flush()
	}
	if serveErr != nil {
		return fmt.Errorf("HTTP server stopped: %w", serveErr)
	}
	return nil
}

func databaseOptions(cfg *config.Config) database.Options {
	opts := database.DefaultOptions()
	opts.MaxOpenConns = cfg.Database.MaxOpenConns
	opts.MaxIdleConns = cfg.Database.MaxIdleConns
	opts.ConnMaxLifetime = cfg.Database.ConnMaxLifetime
	return opts
}

// initializeLogging installs the global logger factory. Entries are also
// persisted when a database is configured and save_to_db is set.
func initializeLogging(cfg *config.Config, db *gorm.DB) logging.LoggerFactory {
	opts := logging.Options{Level: cfg.Logger.Level, Format: cfg.Logger.Format}

	var factory logging.LoggerFactory
	if db != nil && cfg.Logger.SaveToDB {
		factory = logging.NewDatabaseLoggerFactory(opts, repository.NewLogRepository(db), strings.ToUpper(cfg.Logger.PersistLevel))
	} else {
		factory = logging.NewLoggerFactory(opts)
	}
	logging.SetGlobalLoggerFactory(factory)
	return factory
}

func startJobs(cfg *config.Config, cat catalog.Catalog, db *gorm.DB, loggers logging.LoggerFactory) (*jobs.Scheduler, error) {
	if !cfg.Jobs.Enabled {
		return nil, nil
	}

	logger := loggers.CreateLogger("jobs")
	scheduler := jobs.NewScheduler(logger, cfg.Database.QueryTimeout*2)
	if err := scheduler.Add(cfg.Jobs.StatsSchedule, jobs.NewStatsReporter(cat, logger)); err != nil {
		return nil, err
	}
	if db != nil && cfg.Logger.SaveToDB {
		pruner := jobs.NewLogPruner(repository.NewLogRepository(db), cfg.Jobs.LogRetention, logger)
		if err := scheduler.Add(cfg.Jobs.LogPruneSchedule, pruner); err != nil {
			return nil, err
		}
	}

	scheduler.Start()
	return scheduler, nil
}

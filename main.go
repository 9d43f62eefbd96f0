// main.go
package main

import (
	"context"
	"log"
	"time"

	"karigar/cmd"
	"karigar/internal/data/repository"
	"karigar/internal/wire"
	"karigar/pkg/cache"
	"karigar/pkg/database"
	"karigar/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), time.Minute)
	db, err := database.InitDB(connectCtx, config.Database, logger)
	cancelConnect()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Schema applied")
	}

	// Availability read cache, redis when configured
	availabilityCache, err := cache.New(config.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer availabilityCache.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, availabilityCache, registry, logger)

	// Start server
	shutdownTimeout := time.Duration(config.App.ShutdownTimeoutSeconds) * time.Second
	if err := cmd.APIServer(app.Router, config.App.Port, shutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

// main.go
package main

import (
	"context"
	"log"

	"lodge-booking/cmd"
	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/usecase"
	"lodge-booking/internal/wire"
	"lodge-booking/pkg/database"
	"lodge-booking/pkg/metrics"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Register Prometheus collectors
	metrics.Register()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Start the stale-booking sweeper in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := usecase.NewSweeper(repos, config, logger)
	go sweeper.Run(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

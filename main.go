package main

import (
	"context"
	"flag"
	"log"

	"appointment-booking/cmd"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/wire"
	"appointment-booking/pkg/database"
	"appointment-booking/pkg/metrics"
	"appointment-booking/pkg/storage"
	"appointment-booking/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", ".env", "path to an optional env file")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig(*configPath)
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
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("strict_capacity", config.Booking.StrictCapacity),
	)

	// Connect to database
	db, err := database.InitDB(context.Background(), config.Database, logger, config.App.Debug)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis is optional; without it logout cannot revoke tokens
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis connected successfully")
	}

	videos, err := storage.NewLocalVideoStore(config.Upload.Dir, config.Upload.MaxBytes(), logger)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize all repositories
	repos := repository.NewRepository(db, rdb, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, videos, m)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
	logger.Info("Server stopped")
}

package main

import (
	"context"
	"flag"
	"log"

	"quiz-arena/internal/config"
	"quiz-arena/internal/database"
	"quiz-arena/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", string(database.Up), "migration direction: up or down")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer func() { _ = l.Sync() }()

	dir := database.Direction(*direction)
	if dir != database.Up && dir != database.Down {
		l.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}

	db, err := database.Connect(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db.DB, cfg.DB.Driver, dir); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations finished", zap.String("driver", cfg.DB.Driver), zap.String("direction", *direction))
}

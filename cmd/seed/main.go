package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"quiz-arena/cmd/seed/internal/seedmodels"
	"quiz-arena/internal/config"
	"quiz-arena/internal/database"
	"quiz-arena/internal/domain"
	"quiz-arena/internal/logger"
	"quiz-arena/internal/repository"
	"quiz-arena/internal/service"

	"go.uber.org/zap"
)

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func main() {
	seedFile := flag.String("file", "config/seed/catalog.yaml", "YAML catalog to load")
	adminID := flag.String("admin-token", "", "print an admin access token for this user id and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed token")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if *adminID != "" {
		authService, err := service.NewAuthService(cfg.JWT)
		if err != nil {
			log.Fatal("Failed to create AuthService", zap.Error(err))
		}
		token, err := authService.CreateJWT(ctx, *adminID, domain.RoleAdmin, *tokenTTL, service.TokenTypeAccess)
		if err != nil {
			log.Fatal("Failed to create admin token", zap.Error(err))
		}
		fmt.Println(token)
		return
	}

	log.Info("Loading seed catalog", zap.String("path", *seedFile))
	raw, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	catalog, err := seedmodels.Parse(raw)
	if err != nil {
		log.Fatal("Failed to parse seed file", zap.Error(err))
	}
	questions, buildTests, err := catalog.Build()
	if err != nil {
		log.Fatal("Invalid seed catalog", zap.Error(err))
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	catalogRepo := repository.NewCatalogDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	err = txManager.WithTransaction(ctx, func(ctx context.Context) error {
		for _, q := range questions {
			if err := catalogRepo.SaveQuestion(ctx, q); err != nil {
				return fmt.Errorf("failed to save question %q: %w", firstN(q.Prompt, 40), err)
			}
			log.Info("Created question", zap.String("id", q.ID), zap.String("prompt", firstN(q.Prompt, 20)))
		}

		tests, err := buildTests()
		if err != nil {
			return err
		}
		for _, t := range tests {
			if err := catalogRepo.SaveTest(ctx, t); err != nil {
				return fmt.Errorf("failed to save test %q: %w", t.Title, err)
			}
			log.Info("Created test",
				zap.String("id", t.ID),
				zap.String("title", t.Title),
				zap.Int("total_points", t.TotalPoints),
				zap.Int("questions", len(t.Questions)),
			)
		}
		return nil
	})
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Seeding completed", zap.Int("questions", len(questions)), zap.Int("tests", len(catalog.Tests)))
}

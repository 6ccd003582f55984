package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/weathertrack/internal/config"
	"github.com/alexivanou/weathertrack/internal/database"
	"github.com/alexivanou/weathertrack/internal/repository"
	"github.com/alexivanou/weathertrack/internal/seeder"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	var (
		seedFile = flag.String("file", "data/seed.json", "Path to the seed fixture")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Auto-migrate if using the embedded DB to ensure schema exists
	if cfg.DB.IsMemory() {
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			logger.Fatal("Failed to init migration driver", zap.Error(err))
		}
		m, err := migrate.NewWithDatabaseInstance("file://migrations/sqlite", "sqlite3", driver)
		if err != nil {
			logger.Fatal("Failed to init migration", zap.Error(err))
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Failed to run migration", zap.Error(err))
		}
	}

	logger.Info("Loading seed fixture", zap.String("file", *seedFile))
	records, err := seeder.LoadFile(*seedFile)
	if err != nil {
		logger.Fatal("Failed to load seed fixture", zap.Error(err))
	}

	repo := repository.NewRepository(db, cfg.DB.Type)

	ctx := context.Background()
	if err := seeder.Import(ctx, repo, records); err != nil {
		logger.Fatal("Failed to import seed records", zap.Error(err))
	}

	logger.Info("Seed import completed successfully!", zap.Int("records", len(records)))
}

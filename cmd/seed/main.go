package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"dataroom/internal/config"
	"dataroom/internal/database"
	"dataroom/internal/database/migration"
	"dataroom/internal/repository/postgres"
	"dataroom/internal/service"
	"dataroom/internal/storage"
)

// Populates the default dataroom with the demo tree. Safe to run repeatedly;
// every step is lookup-then-create.
func main() {
	cfg := config.Load()

	ctx := context.Background()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := newStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize blob storage: %v", err)
	}

	seeder := service.NewSeeder(
		postgres.NewFolderPostgres(db),
		postgres.NewFilePostgres(db),
		store,
	)
	if err := seeder.Seed(ctx); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("demo dataroom seeded")
}

func newStorage(cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Backend == config.StorageBackendMinIO {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewLocal(cfg.Dir)
}

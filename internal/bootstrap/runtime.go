package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gosh00/FitnessApp/internal/cache"
	"github.com/gosh00/FitnessApp/internal/config"
	"github.com/gosh00/FitnessApp/internal/database"
	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedCatalog imports the exercise catalog when the table is empty.
	SeedCatalog bool
}

// InitRuntime connects to the database and Redis. Redis is optional: an
// unreachable server yields a nil client and caching is skipped.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()

	if opts.SeedCatalog {
		if err := seedCatalogIfEmpty(ctx, db, cfg.ExerciseCatalogURL); err != nil {
			// The API works without a catalog; admins can import it later.
			middleware.Logger.WarnContext(ctx, "exercise catalog import skipped", slog.String("error", err.Error()))
		}
	}

	return db, rdb, nil
}

func seedCatalogIfEmpty(ctx context.Context, db *gorm.DB, url string) error {
	repo := repository.NewExerciseRepository(db)
	names, err := repo.ExistingNames(ctx)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}

	list, err := seed.FetchExerciseCatalog(ctx, url)
	if err != nil {
		return err
	}
	inserted, err := seed.ImportExercises(ctx, repo, list)
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "exercise catalog imported", slog.Int("inserted", inserted))
	return nil
}

// Close releases the database pool and the Redis client.
func Close(db *gorm.DB, rdb *redis.Client) error {
	var errs []error
	if db != nil {
		if err := database.Close(db); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	switch {
	case rdb != nil && rdb == cache.GetClient():
		if err := cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	case rdb != nil:
		if err := rdb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

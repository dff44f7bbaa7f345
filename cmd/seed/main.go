// Command main loads reference data and demo content into the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosh00/FitnessApp/internal/config"
	"github.com/gosh00/FitnessApp/internal/database"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/seed"
)

func main() {
	catalog := flag.String("catalog", "", "Exercise catalog URL or local .json/.yaml file (default: EXERCISE_CATALOG_URL)")
	skipCatalog := flag.Bool("skip-catalog", false, "Do not import the exercise catalog")
	foodsCSV := flag.String("foods-csv", "", "Path to the generic-foods CSV")
	demo := flag.Bool("demo", false, "Generate demo users, workouts, likes and comments")
	users := flag.Int("users", 10, "Demo users to create")
	workouts := flag.Int("workouts", 3, "Demo workouts per user")
	days := flag.Int("days", 30, "Spread demo workouts over the last N days")
	flag.Parse()

	if err := run(*catalog, *skipCatalog, *foodsCSV, *demo, seed.DemoOptions{
		Users:           *users,
		WorkoutsPerUser: *workouts,
		Days:            *days,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Println("✨ All done!")
}

func run(catalog string, skipCatalog bool, foodsCSV string, demo bool, demoOpts seed.DemoOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if !skipCatalog {
		if catalog == "" {
			catalog = cfg.ExerciseCatalogURL
		}
		list, err := loadCatalog(ctx, catalog)
		if err != nil {
			return err
		}
		inserted, err := seed.ImportExercises(ctx, repository.NewExerciseRepository(db), list)
		if err != nil {
			return fmt.Errorf("import exercises: %w", err)
		}
		log.Printf("✓ exercises: %d in catalog, %d new", len(list), inserted)
	}

	if foodsCSV != "" {
		f, err := os.Open(foodsCSV)
		if err != nil {
			return fmt.Errorf("open foods csv: %w", err)
		}
		defer func() { _ = f.Close() }()

		foods, err := seed.LoadFoodsCSV(f)
		if err != nil {
			return err
		}
		inserted, err := seed.ImportFoods(ctx, repository.NewFoodRepository(db), foods)
		if err != nil {
			return fmt.Errorf("import foods: %w", err)
		}
		log.Printf("✓ foods: %d inserted", inserted)
	}

	if demo {
		result, err := seed.Demo(ctx, db, demoOpts)
		if err != nil {
			return err
		}
		log.Printf("✓ demo: %d users, %d workouts, %d likes, %d comments",
			result.Users, result.Workouts, result.Likes, result.Comments)
	}
	return nil
}

func loadCatalog(ctx context.Context, source string) ([]models.Exercise, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return seed.FetchExerciseCatalog(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
	return seed.LoadExerciseCatalog(f, format)
}

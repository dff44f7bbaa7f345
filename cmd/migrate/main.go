// Command migrate applies, inspects and rolls back the database schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/gosh00/FitnessApp/internal/config"
	"github.com/gosh00/FitnessApp/internal/database"

	"gorm.io/gorm"
)

type command func(ctx context.Context, db *gorm.DB, cfg *config.Config) error

var commands = map[string]command{
	"up":       up,
	"auto":     auto,
	"status":   status,
	"rollback": rollback,
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	flag.Parse()
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(flag.Arg(0)))]
	if !ok {
		return fmt.Errorf("usage: migrate <up|auto|status|rollback>")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	return cmd(context.Background(), db, cfg)
}

func up(ctx context.Context, db *gorm.DB, _ *config.Config) error {
	if err := database.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("sql migrations failed: %w", err)
	}
	log.Println("sql migrations applied")
	return nil
}

func auto(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	cfg.DBSchemaMode = config.SchemaModeAuto
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		return fmt.Errorf("auto schema apply failed: %w", err)
	}
	log.Println("automigrations applied")
	return nil
}

func status(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := database.InspectSchema(ctx, db, cfg)
	if err != nil {
		return fmt.Errorf("schema status failed: %w", err)
	}
	log.Printf("mode=%s env=%s sql=%t auto=%t applied=%d pending=%d",
		plan.Mode, cfg.Env, plan.SQL, plan.Auto, len(plan.Applied), len(plan.Pending))
	for _, m := range plan.Pending {
		log.Printf("pending: %s", m.String())
	}
	return nil
}

func rollback(ctx context.Context, db *gorm.DB, _ *config.Config) error {
	m, err := database.RollbackLatest(ctx, db)
	if err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	if m == nil {
		log.Println("nothing to roll back")
		return nil
	}
	log.Printf("rolled back %s", m)
	return nil
}

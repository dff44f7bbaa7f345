package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gosh00/FitnessApp/internal/config"
	"github.com/gosh00/FitnessApp/internal/middleware"

	"gorm.io/gorm"
)

// SchemaPlan is what ApplySchema does for a config, plus the migration
// state when SQL migrations are in play.
type SchemaPlan struct {
	Mode    string
	SQL     bool
	Auto    bool
	Applied []int
	Pending []Migration
}

// planSchema picks the schema mechanisms for cfg. SQL migrations are the
// source of truth; AutoMigrate never runs against production or staging.
func planSchema(cfg *config.Config) (SchemaPlan, error) {
	plan := SchemaPlan{Mode: cfg.DBSchemaMode}
	if plan.Mode == "" {
		plan.Mode = config.SchemaModeHybrid
	}
	guarded := cfg.IsProduction() || cfg.Env == "staging" || cfg.Env == "stage"

	switch plan.Mode {
	case config.SchemaModeSQL:
		plan.SQL = true
	case config.SchemaModeAuto:
		if guarded {
			return plan, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q", cfg.Env)
		}
		plan.Auto = true
	case config.SchemaModeHybrid:
		plan.SQL = true
		plan.Auto = !guarded
	default:
		return plan, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", plan.Mode)
	}
	return plan, nil
}

// AutoMigrate creates or updates tables for every persistent model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}

// ApplySchema runs SQL migrations and/or AutoMigrate according to cfg.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.SQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if plan.Auto {
		middleware.Logger.InfoContext(ctx, "Running GORM AutoMigrate",
			slog.String("mode", plan.Mode),
			slog.String("env", cfg.Env),
		)
		if err := AutoMigrate(db.WithContext(ctx)); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// InspectSchema returns the plan for cfg with applied and pending versions
// filled in.
func InspectSchema(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaPlan, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}
	if !plan.SQL {
		return &plan, nil
	}

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	plan.Applied = applied
	plan.Pending = pendingMigrations(applied, GetMigrations())
	return &plan, nil
}

func pendingMigrations(applied []int, registered []Migration) []Migration {
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}
	var pending []Migration
	for _, m := range registered {
		if !done[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

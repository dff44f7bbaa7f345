package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosh00/FitnessApp/internal/observability"

	"gorm.io/gorm"
)

const queryStartKey = "fitness:query_start"

// RegisterQueryMetrics installs GORM callbacks that record statement latency
// and failures per operation and table.
func RegisterQueryMetrics(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "raw"
			}
			observability.DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
			if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
				observability.DatabaseErrors.WithLabelValues(operation).Inc()
			}
		}
	}

	cb := db.Callback()
	regs := []struct {
		name   string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, r := range regs {
		if err := r.before("metrics:before_"+r.name, before); err != nil {
			return fmt.Errorf("register %s metrics callback: %w", r.name, err)
		}
		if err := r.after("metrics:after_"+r.name, after(r.name)); err != nil {
			return fmt.Errorf("register %s metrics callback: %w", r.name, err)
		}
	}
	return nil
}

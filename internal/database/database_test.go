package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/gosh00/FitnessApp/internal/config"
	"github.com/gosh00/FitnessApp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: NewGormLogger(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openSQLite(t)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "fitness"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=fitness sslmode=disable", DSN(cfg))

	cfg.DBSSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}

func TestSchemaPlan(t *testing.T) {
	tests := []struct {
		mode, env       string
		runSQL, runAuto bool
		wantErr         bool
	}{
		{"", "development", true, true, false},
		{"hybrid", "production", true, false, false},
		{"sql", "development", true, false, false},
		{"auto", "test", false, true, false},
		{"auto", "staging", false, false, true},
		{"bogus", "development", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode+"/"+tt.env, func(t *testing.T) {
			plan, err := planSchema(&config.Config{DBSchemaMode: tt.mode, Env: tt.env})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, plan.SQL)
			assert.Equal(t, tt.runAuto, plan.Auto)
		})
	}
}

func TestAutoMigrate_CreatesEveryTable(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"users", "exercises", "workouts", "workout_likes", "workout_comments", "exercise_logs", "foods", "food_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.WorkoutLike{}, "idx_workout_likes_workout_user"))
}

func TestRegisterQueryMetrics(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, RegisterQueryMetrics(db))
	require.NoError(t, AutoMigrate(db))

	ex := models.Exercise{Name: "Squat", MuscleGroup: "quadriceps"}
	require.NoError(t, db.Create(&ex).Error)

	var got models.Exercise
	require.NoError(t, db.First(&got, ex.ID).Error)
	assert.Equal(t, "Squat", got.Name)
}

func TestLoadMigrations_Embedded(t *testing.T) {
	ms := GetMigrations()
	require.Len(t, ms, 2)
	assert.Equal(t, 1, ms[0].Version)
	assert.Equal(t, "init_schema", ms[0].Name)
	assert.Contains(t, ms[0].UpScript, "CREATE TABLE IF NOT EXISTS workout_likes")
	assert.Contains(t, ms[0].DownScript, "DROP TABLE IF EXISTS workouts")
	assert.Equal(t, "000002_food_diary", ms[1].String())
	assert.NotNil(t, GetMigrationByVersion(2))
	assert.Nil(t, GetMigrationByVersion(99))
}

func TestLoadMigrations_Errors(t *testing.T) {
	_, err := LoadMigrations(fstest.MapFS{
		"migrations/000001_a.up.sql": {Data: []byte("SELECT 1;")},
	})
	assert.ErrorContains(t, err, "down migration")

	_, err = LoadMigrations(fstest.MapFS{
		"migrations/abc_a.up.sql":   {Data: []byte("SELECT 1;")},
		"migrations/abc_a.down.sql": {Data: []byte("SELECT 1;")},
	})
	assert.ErrorContains(t, err, "invalid version")
}

func testMigrations(t *testing.T) []Migration {
	t.Helper()
	ms, err := LoadMigrations(fstest.MapFS{
		"migrations/000001_widgets.up.sql":   {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);")},
		"migrations/000001_widgets.down.sql": {Data: []byte("DROP TABLE widgets;")},
		"migrations/000002_gadgets.up.sql":   {Data: []byte("CREATE TABLE gadgets (id INTEGER PRIMARY KEY);")},
		"migrations/000002_gadgets.down.sql": {Data: []byte("DROP TABLE gadgets;")},
		"migrations/README.md":               {Data: []byte("ignored")},
	})
	require.NoError(t, err)
	return ms
}

func TestRunMigrations_AppliesOnce(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	ms := testMigrations(t)

	require.NoError(t, runMigrations(ctx, db, ms))
	require.NoError(t, runMigrations(ctx, db, ms))

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)
	assert.True(t, db.Migrator().HasTable("gadgets"))

	require.NoError(t, NewMigrationStore(db).RevertMigration(ctx, ms[1]))
	assert.False(t, db.Migrator().HasTable("gadgets"))

	applied, err = NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)
}

func TestRunMigrations_UnknownAppliedVersion(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	ms := testMigrations(t)

	require.NoError(t, runMigrations(ctx, db, ms))
	err := runMigrations(ctx, db, ms[:1])
	assert.ErrorContains(t, err, "000002")
}

func TestInspectSchema_Pending(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	cfg := &config.Config{DBSchemaMode: config.SchemaModeSQL, Env: "development"}

	plan, err := InspectSchema(ctx, db, cfg)
	require.NoError(t, err)
	assert.Equal(t, config.SchemaModeSQL, plan.Mode)
	assert.Empty(t, plan.Applied)
	assert.Len(t, plan.Pending, len(GetMigrations()))

	ms := testMigrations(t)
	assert.Equal(t, ms[1:], pendingMigrations([]int{1}, ms))
	assert.Empty(t, pendingMigrations([]int{1, 2}, ms))
}

func TestRollbackLatest(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	m, err := RollbackLatest(ctx, db)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestGetAppliedMigrations_MissingTable(t *testing.T) {
	db := openSQLite(t)
	applied, err := NewMigrationStore(db).GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

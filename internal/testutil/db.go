// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/gosh00/FitnessApp/internal/database"
	"github.com/gosh00/FitnessApp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB returns an in-memory SQLite database with every model migrated.
// The pool is pinned to one connection so the in-memory database is shared.
func OpenTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: database.NewGormLogger(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a user with a random email and auth ID.
func CreateUser(t testing.TB, db *gorm.DB) *models.User {
	t.Helper()
	authID := uuid.New()
	email := gofakeit.Email()
	user := &models.User{
		AuthID:      &authID,
		Email:       email,
		DisplayName: models.DisplayNameFromEmail(email),
		Goal:        models.GoalMaintain,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreateExercise inserts a catalog entry.
func CreateExercise(t testing.TB, db *gorm.DB, name, muscle string) *models.Exercise {
	t.Helper()
	exercise := &models.Exercise{Name: name, MuscleGroup: muscle}
	require.NoError(t, db.Create(exercise).Error)
	return exercise
}

// CreateWorkout inserts a workout owned by userID with the given creation time.
func CreateWorkout(t testing.TB, db *gorm.DB, userID uuid.UUID, name string, public bool, createdAt time.Time) *models.Workout {
	t.Helper()
	workout := &models.Workout{
		UserID:    userID,
		Name:      name,
		IsPublic:  public,
		CreatedAt: createdAt,
		Data: datatypes.NewJSONType(models.WorkoutData{Exercises: []models.ExerciseBlock{
			{ExerciseID: 1, Sets: []models.SetEntry{{Reps: 5, Weight: 100}}},
		}}),
	}
	require.NoError(t, db.Create(workout).Error)
	return workout
}

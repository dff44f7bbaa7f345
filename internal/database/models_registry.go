package database

import "github.com/gosh00/FitnessApp/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters for AutoMigrate: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Exercise{},
		&models.Workout{},
		&models.WorkoutLike{},
		&models.WorkoutComment{},
		&models.ExerciseLog{},
		&models.Food{},
		&models.FoodLog{},
	}
}

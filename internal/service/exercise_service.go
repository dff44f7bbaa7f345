package service

import (
	"context"
	"strings"

	"github.com/gosh00/FitnessApp/internal/cache"
	"github.com/gosh00/FitnessApp/internal/featureflags"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"

	"github.com/redis/go-redis/v9"
)

type ExerciseService struct {
	exercises repository.ExerciseRepository
	rdb       *redis.Client
	flags     *featureflags.Manager
}

func NewExerciseService(exercises repository.ExerciseRepository, rdb *redis.Client, flags *featureflags.Manager) *ExerciseService {
	return &ExerciseService{exercises: exercises, rdb: rdb, flags: flags}
}

// List returns the catalog ordered by name, optionally filtered by muscle group.
func (s *ExerciseService) List(ctx context.Context, muscle string) ([]models.Exercise, error) {
	muscle = strings.TrimSpace(muscle)
	var out []models.Exercise
	fetch := func() error {
		list, err := s.exercises.List(ctx, muscle)
		if err != nil {
			return err
		}
		out = list
		return nil
	}
	if err := cache.Aside(ctx, s.rdb, "exercises", cache.ExerciseListKey(muscle), &out, cache.ExerciseListTTL, fetch); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Exercise{}
	}
	return out, nil
}

// Create adds a catalog entry. Callers are expected to be admins.
func (s *ExerciseService) Create(ctx context.Context, exercise *models.Exercise) (*models.Exercise, error) {
	exercise.ID = 0
	exercise.Name = strings.TrimSpace(exercise.Name)
	exercise.MuscleGroup = strings.TrimSpace(exercise.MuscleGroup)
	if exercise.Name == "" {
		return nil, models.NewValidationError("name is required")
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, err
	}
	cache.InvalidateExercises(ctx, s.rdb)
	return exercise, nil
}

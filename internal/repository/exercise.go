package repository

import (
	"context"
	"errors"

	"github.com/gosh00/FitnessApp/internal/models"

	"gorm.io/gorm"
)

// ExerciseRepository defines persistence operations for the exercise catalog.
type ExerciseRepository interface {
	List(ctx context.Context, muscleGroup string) ([]models.Exercise, error)
	GetByID(ctx context.Context, id uint) (*models.Exercise, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Exercise, error)
	Create(ctx context.Context, exercise *models.Exercise) error
	ExistingNames(ctx context.Context) (map[string]struct{}, error)
	CreateInBatches(ctx context.Context, exercises []models.Exercise, batchSize int) error
}

type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a new ExerciseRepository
func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

// List returns the catalog ordered by name, optionally filtered by muscle group.
func (r *exerciseRepository) List(ctx context.Context, muscleGroup string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	q := r.db.WithContext(ctx).Order("name asc")
	if muscleGroup != "" {
		q = q.Where("LOWER(muscle_group) = LOWER(?)", muscleGroup)
	}
	if err := q.Find(&exercises).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return exercises, nil
}

func (r *exerciseRepository) GetByID(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Exercise", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &exercise, nil
}

// FindByIDs returns the exercises that exist among ids, keyed by id.
func (r *exerciseRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Exercise, error) {
	found := make(map[uint]models.Exercise, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var exercises []models.Exercise
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&exercises).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, e := range exercises {
		found[e.ID] = e
	}
	return found, nil
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		if IsUniqueViolation(err) {
			return models.NewValidationError("Exercise already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// ExistingNames returns every catalog name, used by the importer to skip duplicates.
func (r *exerciseRepository) ExistingNames(ctx context.Context) (map[string]struct{}, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&models.Exercise{}).Pluck("name", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}

func (r *exerciseRepository) CreateInBatches(ctx context.Context, exercises []models.Exercise, batchSize int) error {
	if len(exercises) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(exercises, batchSize).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

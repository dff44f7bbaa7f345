package repository

import (
	"context"

	"github.com/gosh00/FitnessApp/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.WorkoutComment) error
	ListByWorkout(ctx context.Context, workoutID uint) ([]models.WorkoutComment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment. Callers resolve the workout first, so a
// foreign-key failure points at the author.
func (r *commentRepository) Create(ctx context.Context, comment *models.WorkoutComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		if IsForeignKeyViolation(err) {
			return models.NewValidationError("unknown user_id")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// ListByWorkout returns comments oldest first.
func (r *commentRepository) ListByWorkout(ctx context.Context, workoutID uint) ([]models.WorkoutComment, error) {
	comments := []models.WorkoutComment{}
	err := r.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("created_at asc").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

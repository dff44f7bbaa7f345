package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosh00/FitnessApp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const logBatchSize = 100

// WorkoutRepository defines persistence operations for workouts and likes.
type WorkoutRepository interface {
	CreateWithLogs(ctx context.Context, workout *models.Workout, logs []models.ExerciseLog) error
	GetByID(ctx context.Context, id uint) (*models.Workout, error)
	ToggleLike(ctx context.Context, workoutID uint, userID uuid.UUID) (*models.LikeResult, error)
	ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]models.Workout, error)
	LikedWorkoutIDs(ctx context.Context, userID uuid.UUID, workoutIDs []uint) (map[uint]bool, error)
}

type workoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new WorkoutRepository
func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

// CreateWithLogs inserts the workout and its per-set log rows in one
// transaction. On any failure nothing is written.
func (r *workoutRepository) CreateWithLogs(ctx context.Context, workout *models.Workout, logs []models.ExerciseLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workout).Error; err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}
		if len(logs) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(logs, logBatchSize).Error; err != nil {
			return fmt.Errorf("insert exercise logs: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id uint) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.WithContext(ctx).First(&workout, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Workout", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &workout, nil
}

// ToggleLike flips the (workout, user) like under a row lock on the workout
// and rewrites likes_count from the like rows, so the counter never drifts
// from membership and never drops below zero.
func (r *workoutRepository) ToggleLike(ctx context.Context, workoutID uint, userID uuid.UUID) (*models.LikeResult, error) {
	result := &models.LikeResult{ID: workoutID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Workout
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&locked, workoutID).Error; err != nil {
			return notFoundOr(err, "Workout", workoutID)
		}

		del := tx.Where("workout_id = ? AND user_id = ?", workoutID, userID).Delete(&models.WorkoutLike{})
		if del.Error != nil {
			return fmt.Errorf("delete like: %w", del.Error)
		}

		if del.RowsAffected == 0 {
			like := models.WorkoutLike{WorkoutID: workoutID, UserID: userID}
			// A conflicting row means the like already exists; keep it.
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "workout_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(&like).Error; err != nil {
				// The workout row is locked above, so the failing key is user_id.
				if IsForeignKeyViolation(err) {
					return models.NewValidationError("unknown user_id")
				}
				return fmt.Errorf("insert like: %w", err)
			}
			result.Liked = true
		}

		count := tx.Model(&models.WorkoutLike{}).Select("COUNT(*)").Where("workout_id = ?", workoutID)
		if err := tx.Model(&models.Workout{}).
			Where("id = ?", workoutID).
			Update("likes_count", count).Error; err != nil {
			return fmt.Errorf("update likes_count: %w", err)
		}

		var likes []int
		if err := tx.Model(&models.Workout{}).Where("id = ?", workoutID).Pluck("likes_count", &likes).Error; err != nil {
			return fmt.Errorf("read likes_count: %w", err)
		}
		if len(likes) == 1 {
			result.LikesCount = likes[0]
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

// ListVisible returns the workouts a viewer may see: every public workout
// plus the viewer's own. A nil viewer sees public workouts only.
func (r *workoutRepository) ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]models.Workout, error) {
	var workouts []models.Workout
	q := r.db.WithContext(ctx).Model(&models.Workout{})
	if viewerID != nil {
		q = q.Where("is_public = ? OR user_id = ?", true, *viewerID)
	} else {
		q = q.Where("is_public = ?", true)
	}
	if err := q.Order("created_at desc").Order("id desc").Find(&workouts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return workouts, nil
}

// LikedWorkoutIDs reports which of workoutIDs userID currently likes.
func (r *workoutRepository) LikedWorkoutIDs(ctx context.Context, userID uuid.UUID, workoutIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if len(workoutIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.WorkoutLike{}).
		Where("user_id = ? AND workout_id IN ?", userID, workoutIDs).
		Pluck("workout_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

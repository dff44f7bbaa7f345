package repository

import (
	"context"
	"errors"

	"github.com/gosh00/FitnessApp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExerciseLogRepository defines persistence operations for performed sets.
type ExerciseLogRepository interface {
	Create(ctx context.Context, log *models.ExerciseLog) error
	Last(ctx context.Context, userID uuid.UUID, exerciseID uint) (*models.ExerciseLog, error)
	History(ctx context.Context, userID uuid.UUID, exerciseID uint, limit int) ([]models.ExerciseLog, error)
	TotalSets(ctx context.Context, userID uuid.UUID) (int, error)
	TrainingDays(ctx context.Context, userID uuid.UUID) ([]models.Day, error)
}

type exerciseLogRepository struct {
	db *gorm.DB
}

// NewExerciseLogRepository creates a new ExerciseLogRepository
func NewExerciseLogRepository(db *gorm.DB) ExerciseLogRepository {
	return &exerciseLogRepository{db: db}
}

func (r *exerciseLogRepository) Create(ctx context.Context, log *models.ExerciseLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		if IsForeignKeyViolation(err) {
			return models.NewValidationError("user_id or exercise_id does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Last returns the most recent log for the pair, or nil when there is none.
func (r *exerciseLogRepository) Last(ctx context.Context, userID uuid.UUID, exerciseID uint) (*models.ExerciseLog, error) {
	var log models.ExerciseLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Order("date desc").
		Order("id desc").
		Take(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

func (r *exerciseLogRepository) History(ctx context.Context, userID uuid.UUID, exerciseID uint, limit int) ([]models.ExerciseLog, error) {
	logs := []models.ExerciseLog{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Order("date desc").
		Order("id desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

// TotalSets sums the sets column, so legacy pre-aggregated rows count fully.
func (r *exerciseLogRepository) TotalSets(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.ExerciseLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(sets), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(total), nil
}

// TrainingDays returns the distinct days with at least one log, newest first.
func (r *exerciseLogRepository) TrainingDays(ctx context.Context, userID uuid.UUID) ([]models.Day, error) {
	var days []models.Day
	err := r.db.WithContext(ctx).
		Model(&models.ExerciseLog{}).
		Where("user_id = ?", userID).
		Distinct("date").
		Order("date desc").
		Pluck("date", &days).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return days, nil
}

package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gosh00/FitnessApp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodRepository defines persistence operations for the food catalog and diary.
type FoodRepository interface {
	Search(ctx context.Context, query string, limit int) ([]models.Food, error)
	GetByID(ctx context.Context, id uint) (*models.Food, error)
	CreateInBatches(ctx context.Context, foods []models.Food, batchSize int) error
	CreateLog(ctx context.Context, log *models.FoodLog) error
	GetLog(ctx context.Context, id uint) (*models.FoodLog, error)
	ListLogsByDay(ctx context.Context, userID uuid.UUID, day models.Day) ([]models.FoodLog, error)
	DeleteLog(ctx context.Context, id uint) error
}

type foodRepository struct {
	db *gorm.DB
}

// NewFoodRepository creates a new FoodRepository
func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

// Search matches name or brand case-insensitively, ordered by name.
func (r *foodRepository) Search(ctx context.Context, query string, limit int) ([]models.Food, error) {
	foods := []models.Food{}
	q := r.db.WithContext(ctx).Order("name asc").Limit(limit)
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(brand, '')) LIKE ?", pattern, pattern)
	}
	if err := q.Find(&foods).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return foods, nil
}

func (r *foodRepository) GetByID(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	if err := r.db.WithContext(ctx).First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Food", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &food, nil
}

func (r *foodRepository) CreateInBatches(ctx context.Context, foods []models.Food, batchSize int) error {
	if len(foods) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(foods, batchSize).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *foodRepository) CreateLog(ctx context.Context, log *models.FoodLog) error {
	if err := r.db.WithContext(ctx).Omit("Food").Create(log).Error; err != nil {
		if IsForeignKeyViolation(err) {
			return models.NewValidationError("user_id or food_id does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *foodRepository) GetLog(ctx context.Context, id uint) (*models.FoodLog, error) {
	var log models.FoodLog
	if err := r.db.WithContext(ctx).Preload("Food").First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Food log", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

// ListLogsByDay returns one user's entries for a day, newest first, with the food loaded.
func (r *foodRepository) ListLogsByDay(ctx context.Context, userID uuid.UUID, day models.Day) ([]models.FoodLog, error) {
	logs := []models.FoodLog{}
	err := r.db.WithContext(ctx).
		Preload("Food").
		Where("user_id = ? AND date = ?", userID, day).
		Order("created_at desc").
		Order("id desc").
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *foodRepository) DeleteLog(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.FoodLog{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Food log", id)
	}
	return nil
}

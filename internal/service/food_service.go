package service

import (
	"context"
	"strings"
	"time"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/validation"

	"github.com/google/uuid"
)

const (
	DefaultFoodSearchLimit = 20
	MaxFoodSearchLimit     = 50
	maxGramsPerLog         = 5000
)

type FoodService struct {
	foods repository.FoodRepository
	loc   *time.Location
	now   Clock
}

type AddFoodLogInput struct {
	UserID uuid.UUID
	FoodID uint
	Grams  float64
	Date   *models.Day
	Meal   *string
	Note   *string
}

func NewFoodService(foods repository.FoodRepository, loc *time.Location) *FoodService {
	return &FoodService{foods: foods, loc: loc}
}

// Search matches name or brand case-insensitively.
func (s *FoodService) Search(ctx context.Context, query string, limit int) ([]models.Food, error) {
	if limit <= 0 {
		limit = DefaultFoodSearchLimit
	}
	if limit > MaxFoodSearchLimit {
		limit = MaxFoodSearchLimit
	}
	return s.foods.Search(ctx, query, limit)
}

func (s *FoodService) AddFoodLog(ctx context.Context, in AddFoodLogInput) (*models.FoodLog, error) {
	if in.UserID == uuid.Nil || in.FoodID == 0 {
		return nil, models.NewValidationError("user_id and food_id are required")
	}
	if in.Grams <= 0 || in.Grams > maxGramsPerLog {
		return nil, models.NewValidationError("grams must be greater than 0 and at most 5000")
	}
	if in.Note != nil {
		note := strings.TrimSpace(*in.Note)
		if err := validation.ValidateLength("note", note, validation.MaxFoodNoteLen); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		in.Note = &note
	}
	if in.Meal != nil {
		meal := strings.ToLower(strings.TrimSpace(*in.Meal))
		in.Meal = nil
		if meal != "" {
			in.Meal = &meal
		}
	}

	food, err := s.foods.GetByID(ctx, in.FoodID)
	if err != nil {
		return nil, err
	}

	day := models.NewDay(today(s.now, s.loc))
	if in.Date != nil && !in.Date.IsZero() {
		day = *in.Date
	}
	log := &models.FoodLog{
		UserID: in.UserID,
		FoodID: food.ID,
		Date:   day,
		Grams:  in.Grams,
		Meal:   in.Meal,
		Note:   in.Note,
	}
	if err := s.foods.CreateLog(ctx, log); err != nil {
		return nil, err
	}
	log.Food = food
	return log, nil
}

// DailyFoodLog returns the day's entries newest first with nutrient totals.
func (s *FoodService) DailyFoodLog(ctx context.Context, userID uuid.UUID, day *models.Day) (*models.FoodDay, error) {
	if userID == uuid.Nil {
		return nil, models.NewValidationError("user_id is required")
	}
	d := models.NewDay(today(s.now, s.loc))
	if day != nil && !day.IsZero() {
		d = *day
	}
	logs, err := s.foods.ListLogsByDay(ctx, userID, d)
	if err != nil {
		return nil, err
	}
	out := &models.FoodDay{Date: d, Logs: logs}
	for _, l := range logs {
		if l.Food != nil {
			out.Totals.Add(l.Food.For(l.Grams))
		}
	}
	return out, nil
}

// DeleteFoodLog removes an entry owned by userID.
func (s *FoodService) DeleteFoodLog(ctx context.Context, id uint, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return models.NewValidationError("user_id is required")
	}
	log, err := s.foods.GetLog(ctx, id)
	if err != nil {
		return err
	}
	if log.UserID != userID {
		return models.NewForbiddenError("not your food log")
	}
	return s.foods.DeleteLog(ctx, id)
}

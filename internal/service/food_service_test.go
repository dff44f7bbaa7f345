package service

import (
	"context"
	"testing"
	"time"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodService(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db)
	brand := "Alpine"
	foods := []models.Food{
		{Name: "Apple", Kcal100: 52, Carbs100: 14, Sugars100: 10, Fiber100: 2.4},
		{Name: "Oats", Brand: &brand, Kcal100: 380, Protein100: 13, Carbs100: 60, Fat100: 7, Fiber100: 10},
		{Name: "Apple juice", Kcal100: 46, Carbs100: 11, Sugars100: 10},
	}
	require.NoError(t, db.Create(&foods).Error)

	svc := NewFoodService(repository.NewFoodRepository(db), time.UTC)
	svc.now = fixedClock(time.Date(2025, 6, 14, 7, 0, 0, 0, time.UTC))

	t.Run("search", func(t *testing.T) {
		got, err := svc.Search(ctx, "APPLE", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Apple", got[0].Name)

		byBrand, err := svc.Search(ctx, "alpine", 100)
		require.NoError(t, err)
		require.Len(t, byBrand, 1)
		assert.Equal(t, "Oats", byBrand[0].Name)
	})

	t.Run("daily log with totals", func(t *testing.T) {
		meal := " Breakfast "
		first, err := svc.AddFoodLog(ctx, AddFoodLogInput{UserID: user.ID, FoodID: foods[1].ID, Grams: 50, Meal: &meal})
		require.NoError(t, err)
		assert.Equal(t, "2025-06-14", first.Date.String())
		require.NotNil(t, first.Meal)
		assert.Equal(t, "breakfast", *first.Meal)

		_, err = svc.AddFoodLog(ctx, AddFoodLogInput{UserID: user.ID, FoodID: foods[0].ID, Grams: 200})
		require.NoError(t, err)

		day, err := svc.DailyFoodLog(ctx, user.ID, nil)
		require.NoError(t, err)
		require.Len(t, day.Logs, 2)
		assert.InDelta(t, 190+104, day.Totals.Kcal, 0.001)
		assert.InDelta(t, 6.5, day.Totals.Protein, 0.001)
		assert.InDelta(t, 5+4.8, day.Totals.Fiber, 0.001)

		other := mustDay(t, "2025-06-13")
		empty, err := svc.DailyFoodLog(ctx, user.ID, &other)
		require.NoError(t, err)
		assert.Empty(t, empty.Logs)
	})

	t.Run("add validation", func(t *testing.T) {
		_, err := svc.AddFoodLog(ctx, AddFoodLogInput{UserID: user.ID, FoodID: foods[0].ID, Grams: 0})
		assertValidationError(t, err)
		_, err = svc.AddFoodLog(ctx, AddFoodLogInput{FoodID: foods[0].ID, Grams: 10})
		assertValidationError(t, err)
		_, err = svc.AddFoodLog(ctx, AddFoodLogInput{UserID: user.ID, FoodID: 999, Grams: 10})
		assertAppError(t, err, models.CodeNotFound)
	})

	t.Run("only the owner deletes", func(t *testing.T) {
		log, err := svc.AddFoodLog(ctx, AddFoodLogInput{UserID: user.ID, FoodID: foods[2].ID, Grams: 250})
		require.NoError(t, err)

		err = svc.DeleteFoodLog(ctx, log.ID, uuid.New())
		assertAppError(t, err, models.CodeForbidden)

		require.NoError(t, svc.DeleteFoodLog(ctx, log.ID, user.ID))
		err = svc.DeleteFoodLog(ctx, log.ID, user.ID)
		assertAppError(t, err, models.CodeNotFound)
	})
}

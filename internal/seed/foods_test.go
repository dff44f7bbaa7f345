package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genericFoods = "\ufeffID,name E,energy kcal,protein,\"carbohydrates, available\",sugars,dietary fibres,\"fat, total\"\n" +
	"1,Oat flakes,\"372\",\"13,5\",\"58,7\",\"0,7\",\"10\",\"7\"\n" +
	"2,Water,0,0,0,0,0,0\n" +
	"3,,100,1,1,1,1,1\n" +
	"4,Apple,52,0.3,11.4,10.3,2.3,n/a\n"

func TestLoadFoodsCSV(t *testing.T) {
	foods, err := LoadFoodsCSV(strings.NewReader(genericFoods))
	require.NoError(t, err)
	require.Len(t, foods, 2)

	oats := foods[0]
	assert.Equal(t, "Oat flakes", oats.Name)
	assert.InDelta(t, 372, oats.Kcal100, 0.001)
	assert.InDelta(t, 13.5, oats.Protein100, 0.001)
	assert.InDelta(t, 58.7, oats.Carbs100, 0.001)
	assert.InDelta(t, 0.7, oats.Sugars100, 0.001)
	assert.InDelta(t, 10, oats.Fiber100, 0.001)
	assert.InDelta(t, 7, oats.Fat100, 0.001)
	assert.Nil(t, oats.Brand)

	apple := foods[1]
	assert.Equal(t, "Apple", apple.Name)
	assert.Zero(t, apple.Fat100)
}

func TestLoadFoodsCSV_MissingNameColumn(t *testing.T) {
	_, err := LoadFoodsCSV(strings.NewReader("title,kcal\nOats,372\n"))
	assert.ErrorContains(t, err, "name E")

	_, err = LoadFoodsCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestImportFoods(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := repository.NewFoodRepository(db)

	foods := make([]models.Food, 0, foodBatchSize+5)
	for i := 0; i < foodBatchSize+5; i++ {
		foods = append(foods, models.Food{Name: "Food", Kcal100: float64(i + 1)})
	}
	inserted, err := ImportFoods(context.Background(), repo, foods)
	require.NoError(t, err)
	assert.Equal(t, len(foods), inserted)

	var count int64
	require.NoError(t, db.Model(&models.Food{}).Count(&count).Error)
	assert.Equal(t, int64(len(foods)), count)
}

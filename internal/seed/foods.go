package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"

	"github.com/spf13/cast"
)

const foodBatchSize = 500

// Column headers of the Swiss generic-foods export.
const (
	colName   = "name E"
	colKcal   = "energy kcal"
	colProt   = "protein"
	colCarbs  = "carbohydrates, available"
	colSugars = "sugars"
	colFiber  = "dietary fibres"
	colFat    = "fat, total"
)

// LoadFoodsCSV parses the generic-foods CSV. Rows without a name or with no
// nutrient values at all are skipped.
func LoadFoodsCSV(r io.Reader) ([]models.Food, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := index[colName]; !ok {
		return nil, fmt.Errorf("csv is missing the %q column", colName)
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var foods []models.Food
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		name := strings.TrimSpace(field(row, colName))
		if name == "" {
			continue
		}
		food := models.Food{
			Name:       name,
			Kcal100:    parseNutrient(field(row, colKcal)),
			Protein100: parseNutrient(field(row, colProt)),
			Carbs100:   parseNutrient(field(row, colCarbs)),
			Sugars100:  parseNutrient(field(row, colSugars)),
			Fat100:     parseNutrient(field(row, colFat)),
			Fiber100:   parseNutrient(field(row, colFiber)),
		}
		if food.Kcal100 == 0 && food.Protein100 == 0 && food.Carbs100 == 0 &&
			food.Sugars100 == 0 && food.Fat100 == 0 && food.Fiber100 == 0 {
			continue
		}
		foods = append(foods, food)
	}
	return foods, nil
}

// parseNutrient accepts decimal commas; anything unparsable counts as zero.
func parseNutrient(raw string) float64 {
	s := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	if s == "" {
		return 0
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0
	}
	return v
}

// ImportFoods inserts foods in batches and returns the number inserted.
func ImportFoods(ctx context.Context, repo repository.FoodRepository, foods []models.Food) (int, error) {
	if err := repo.CreateInBatches(ctx, foods, foodBatchSize); err != nil {
		return 0, err
	}
	return len(foods), nil
}

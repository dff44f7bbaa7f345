package service

import (
	"math"
	"strings"

	"github.com/gosh00/FitnessApp/internal/models"
)

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"

	cmPerInch = 2.54
	kgPerLb   = 0.45359237
)

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

var calorieGoals = []struct {
	label    string
	percent  int
	subtitle string
}{
	{"Maintain weight", 100, ""},
	{"Mild weight loss", 93, "≈0.25 kg/week"},
	{"Weight loss", 85, "≈0.5 kg/week"},
	{"Extreme weight loss", 70, "≈1 kg/week (short term only)"},
	{"Mild weight gain", 107, "≈0.25 kg/week"},
	{"Weight gain", 115, "≈0.5 kg/week"},
	{"Fast weight gain", 130, "up to ≈1 kg/week (bulking)"},
}

// CalorieInput holds body measurements in either unit system.
type CalorieInput struct {
	Units     string  `json:"units"`
	Sex       string  `json:"sex"`
	Age       int     `json:"age"`
	HeightCm  float64 `json:"height_cm"`
	WeightKg  float64 `json:"weight_kg"`
	HeightFt  float64 `json:"height_ft"`
	HeightIn  float64 `json:"height_in"`
	WeightLbs float64 `json:"weight_lbs"`
	Activity  string  `json:"activity"`
}

type CalorieGoal struct {
	Label    string `json:"label"`
	Kcal     int    `json:"kcal"`
	Percent  int    `json:"percent"`
	Subtitle string `json:"subtitle,omitempty"`
}

type CalorieEstimate struct {
	BMR   int           `json:"bmr"`
	TDEE  int           `json:"tdee"`
	Goals []CalorieGoal `json:"goals"`
}

// EstimateCalories applies Mifflin-St Jeor and the activity multiplier.
// Goal rows are percentages of the rounded TDEE.
func EstimateCalories(in CalorieInput) (*CalorieEstimate, error) {
	if in.Age <= 0 {
		return nil, models.NewValidationError("age is required")
	}

	units := strings.ToLower(strings.TrimSpace(in.Units))
	var heightCm, weightKg float64
	switch units {
	case "", UnitsMetric:
		if in.HeightCm <= 0 || in.WeightKg <= 0 {
			return nil, models.NewValidationError("height_cm and weight_kg are required")
		}
		heightCm, weightKg = in.HeightCm, in.WeightKg
	case UnitsImperial:
		if in.HeightFt <= 0 || in.HeightIn < 0 || in.WeightLbs <= 0 {
			return nil, models.NewValidationError("height_ft, height_in and weight_lbs are required")
		}
		heightCm = (in.HeightFt*12 + in.HeightIn) * cmPerInch
		weightKg = in.WeightLbs * kgPerLb
	default:
		return nil, models.NewValidationError("units must be metric or imperial")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(in.Age)
	switch strings.ToLower(strings.TrimSpace(in.Sex)) {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return nil, models.NewValidationError("sex must be male or female")
	}

	activity := strings.ToLower(strings.TrimSpace(in.Activity))
	if activity == "" {
		activity = "moderate"
	}
	multiplier, ok := activityMultipliers[activity]
	if !ok {
		return nil, models.NewValidationError("activity must be one of sedentary, light, moderate, active, very_active")
	}

	tdee := roundHalfUp(bmr * multiplier)
	out := &CalorieEstimate{
		BMR:   roundHalfUp(bmr),
		TDEE:  tdee,
		Goals: make([]CalorieGoal, 0, len(calorieGoals)),
	}
	for _, g := range calorieGoals {
		out.Goals = append(out.Goals, CalorieGoal{
			Label:    g.label,
			Kcal:     roundHalfUp(float64(tdee) * float64(g.percent) / 100),
			Percent:  g.percent,
			Subtitle: g.subtitle,
		})
	}
	return out, nil
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Food is a catalog entry with nutrients per 100 g.
type Food struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"not null;index" json:"name"`
	Brand      *string `json:"brand"`
	Kcal100    float64 `gorm:"column:kcal_100" json:"kcal_100"`
	Protein100 float64 `gorm:"column:protein_100" json:"protein_100"`
	Carbs100   float64 `gorm:"column:carbs_100" json:"carbs_100"`
	Sugars100  float64 `gorm:"column:sugars_100" json:"sugars_100"`
	Fat100     float64 `gorm:"column:fat_100" json:"fat_100"`
	Fiber100   float64 `gorm:"column:fiber_100" json:"fiber_100"`
}

// Nutrients is a set of macro totals.
type Nutrients struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Sugars  float64 `json:"sugars"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

// For scales the per-100 g values to the given weight.
func (f Food) For(grams float64) Nutrients {
	k := grams / 100
	return Nutrients{
		Kcal:    f.Kcal100 * k,
		Protein: f.Protein100 * k,
		Carbs:   f.Carbs100 * k,
		Sugars:  f.Sugars100 * k,
		Fat:     f.Fat100 * k,
		Fiber:   f.Fiber100 * k,
	}
}

// Add accumulates o into n.
func (n *Nutrients) Add(o Nutrients) {
	n.Kcal += o.Kcal
	n.Protein += o.Protein
	n.Carbs += o.Carbs
	n.Sugars += o.Sugars
	n.Fat += o.Fat
	n.Fiber += o.Fiber
}

// FoodLog records grams of a food eaten on a day.
type FoodLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_food_logs_user_date,priority:1" json:"user_id"`
	FoodID    uint      `gorm:"not null" json:"food_id"`
	Food      *Food     `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Date      Day       `gorm:"not null;index:idx_food_logs_user_date,priority:2" json:"date"`
	Grams     float64   `gorm:"not null" json:"grams"`
	Meal      *string   `json:"meal"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// FoodDay is one user's diary for a calendar day.
type FoodDay struct {
	Date   Day       `json:"date"`
	Logs   []FoodLog `json:"logs"`
	Totals Nutrients `json:"totals"`
}

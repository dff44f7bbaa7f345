package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog entry.
type Exercise struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	MuscleGroup string    `gorm:"index" json:"muscle_group"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `json:"image_url"`
	VideoURL    string    `json:"video_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExerciseLog is one performed set (or a pre-aggregated legacy row when Sets > 1).
type ExerciseLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_exercise_logs_user_exercise_date,priority:1" json:"user_id"`
	ExerciseID uint      `gorm:"not null;index:idx_exercise_logs_user_exercise_date,priority:2" json:"exercise_id"`
	Date       Day       `gorm:"not null;index:idx_exercise_logs_user_exercise_date,priority:3" json:"date"`
	Sets       int       `gorm:"not null;default:1" json:"sets"`
	Reps       int       `gorm:"not null" json:"reps"`
	Weight     float64   `gorm:"not null" json:"weight"`
	CreatedAt  time.Time `json:"created_at"`
}

// LogStats summarises a user's training history.
type LogStats struct {
	TotalSets  int  `json:"total_sets"`
	Workouts   int  `json:"workouts"` // distinct training days
	StreakDays int  `json:"streak_days"`
	Level      int  `json:"level"`
	LastDate   *Day `json:"last_date"`
}

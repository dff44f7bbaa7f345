package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SetEntry is one performed set inside a workout document. Unit is kept as
// submitted; weights in different units are never converted.
type SetEntry struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit,omitempty"`
}

// ExerciseBlock groups the sets performed for one exercise.
type ExerciseBlock struct {
	ExerciseID   uint       `json:"exercise_id"`
	ExerciseName string     `json:"exercise_name,omitempty"`
	MuscleGroup  string     `json:"muscle_group,omitempty"`
	Sets         []SetEntry `json:"sets"`
}

// WorkoutData is the JSON document stored on a workout row.
type WorkoutData struct {
	Exercises []ExerciseBlock `json:"exercises"`
}

// SetCount returns the number of sets across all blocks.
func (d WorkoutData) SetCount() int {
	n := 0
	for _, b := range d.Exercises {
		n += len(b.Sets)
	}
	return n
}

// Workout is a named, owned collection of exercise blocks.
// LikesCount always equals the number of WorkoutLike rows for the workout.
type Workout struct {
	ID         uint                             `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID                        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string                           `gorm:"not null" json:"name"`
	Data       datatypes.JSONType[WorkoutData]  `json:"data"`
	IsPublic   bool                             `gorm:"not null;default:false;index" json:"is_public"`
	LikesCount int                              `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt  time.Time                        `gorm:"index" json:"created_at"`
	// Liked is computed per viewer and never stored.
	Liked bool `gorm:"-" json:"liked"`
}

// WorkoutLike marks that a user currently likes a workout.
type WorkoutLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WorkoutID uint      `gorm:"not null;uniqueIndex:idx_workout_likes_workout_user,priority:1" json:"workout_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workout_likes_workout_user,priority:2" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeResult is returned by the like toggle.
type LikeResult struct {
	ID         uint `json:"id"`
	LikesCount int  `json:"likes_count"`
	Liked      bool `json:"liked"`
}

// WorkoutComment is an append-only comment on a workout.
type WorkoutComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WorkoutID uint      `gorm:"not null;index" json:"workout_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

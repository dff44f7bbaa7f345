package service

import (
	"context"
	"time"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/observability"
	"github.com/gosh00/FitnessApp/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
	setsPerLevel        = 50
)

type LogService struct {
	logs repository.ExerciseLogRepository
	loc  *time.Location
	now  Clock
}

type CreateLogInput struct {
	UserID     uuid.UUID
	ExerciseID uint
	Sets       int
	Reps       int
	Weight     float64
	Date       *models.Day
}

func NewLogService(logs repository.ExerciseLogRepository, loc *time.Location) *LogService {
	return &LogService{logs: logs, loc: loc}
}

// Create records a manual history row. The date defaults to today.
func (s *LogService) Create(ctx context.Context, in CreateLogInput) (*models.ExerciseLog, error) {
	if in.UserID == uuid.Nil || in.ExerciseID == 0 {
		return nil, models.NewValidationError("user_id and exercise_id are required")
	}
	if in.Sets < 1 || in.Reps < 1 {
		return nil, models.NewValidationError("sets and reps must be positive")
	}
	// Same rule as composition, which drops sets without a positive weight.
	if in.Weight <= 0 {
		return nil, models.NewValidationError("weight must be positive")
	}

	day := models.NewDay(today(s.now, s.loc))
	if in.Date != nil && !in.Date.IsZero() {
		day = *in.Date
	}
	log := &models.ExerciseLog{
		UserID:     in.UserID,
		ExerciseID: in.ExerciseID,
		Date:       day,
		Sets:       in.Sets,
		Reps:       in.Reps,
		Weight:     in.Weight,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	observability.ExerciseLogRows.WithLabelValues("manual").Inc()
	return log, nil
}

// Last returns the most recent row for the pair, or nil.
func (s *LogService) Last(ctx context.Context, userID uuid.UUID, exerciseID uint) (*models.ExerciseLog, error) {
	if userID == uuid.Nil || exerciseID == 0 {
		return nil, models.NewValidationError("user_id and exercise_id are required")
	}
	return s.logs.Last(ctx, userID, exerciseID)
}

// History returns up to limit rows, newest first. Non-positive limits use the default.
func (s *LogService) History(ctx context.Context, userID uuid.UUID, exerciseID uint, limit int) ([]models.ExerciseLog, error) {
	if userID == uuid.Nil || exerciseID == 0 {
		return nil, models.NewValidationError("user_id and exercise_id are required")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.logs.History(ctx, userID, exerciseID, limit)
}

// Stats aggregates the user's history for the dashboard.
func (s *LogService) Stats(ctx context.Context, userID uuid.UUID) (*models.LogStats, error) {
	if userID == uuid.Nil {
		return nil, models.NewValidationError("user_id is required")
	}
	total, err := s.logs.TotalSets(ctx, userID)
	if err != nil {
		return nil, err
	}
	days, err := s.logs.TrainingDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.LogStats{
		TotalSets:  total,
		Workouts:   len(days),
		StreakDays: streak(days, models.NewDay(today(s.now, s.loc))),
		Level:      1 + total/setsPerLevel,
	}
	if len(days) > 0 {
		last := days[0]
		stats.LastDate = &last
	}
	return stats, nil
}

// streak counts consecutive training days ending today, or yesterday when
// today has no entry yet. days must be distinct and sorted newest first.
func streak(days []models.Day, today models.Day) int {
	for len(days) > 0 && days[0].String() > today.String() {
		days = days[1:]
	}
	if len(days) == 0 {
		return 0
	}
	expect := today
	if days[0].String() != today.String() {
		expect = today.AddDays(-1)
	}
	n := 0
	for _, d := range days {
		if d.String() != expect.String() {
			break
		}
		n++
		expect = expect.AddDays(-1)
	}
	return n
}

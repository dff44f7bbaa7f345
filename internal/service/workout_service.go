package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gosh00/FitnessApp/internal/cache"
	"github.com/gosh00/FitnessApp/internal/featureflags"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/notifications"
	"github.com/gosh00/FitnessApp/internal/observability"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
)

// RawSet is a set as submitted by the client. Reps and weight may arrive as
// numbers, numeric strings, empty strings or be missing entirely.
type RawSet struct {
	Reps   interface{} `json:"reps"`
	Weight interface{} `json:"weight"`
	Unit   string      `json:"unit"`
}

// RawExerciseBlock is one submitted exercise with its sets.
type RawExerciseBlock struct {
	ExerciseID interface{} `json:"exercise_id"`
	Sets       []RawSet    `json:"sets"`
}

type CreateWorkoutInput struct {
	UserID    uuid.UUID
	Name      string
	Exercises []RawExerciseBlock
	IsPublic  bool
	Date      *models.Day
}

type WorkoutService struct {
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	users     repository.UserRepository
	rdb       *redis.Client
	flags     *featureflags.Manager
	events    EventPublisher
	loc       *time.Location
	now       Clock
}

func NewWorkoutService(
	workouts repository.WorkoutRepository,
	exercises repository.ExerciseRepository,
	users repository.UserRepository,
	rdb *redis.Client,
	flags *featureflags.Manager,
	events EventPublisher,
	loc *time.Location,
) *WorkoutService {
	return &WorkoutService{
		workouts:  workouts,
		exercises: exercises,
		users:     users,
		rdb:       rdb,
		flags:     flags,
		events:    events,
		loc:       loc,
	}
}

// NormalizeBlocks drops sets without positive numeric reps and weight, then
// drops blocks without an exercise id or without remaining sets. Block and
// set order is preserved.
func NormalizeBlocks(raw []RawExerciseBlock) []models.ExerciseBlock {
	out := make([]models.ExerciseBlock, 0, len(raw))
	for _, rb := range raw {
		exerciseID, ok := toPositiveID(rb.ExerciseID)
		if !ok {
			continue
		}
		sets := make([]models.SetEntry, 0, len(rb.Sets))
		for _, rs := range rb.Sets {
			reps, ok := toPositiveNumber(rs.Reps)
			if !ok || reps != math.Trunc(reps) || reps > math.MaxInt32 {
				continue
			}
			weight, ok := toPositiveNumber(rs.Weight)
			if !ok {
				continue
			}
			sets = append(sets, models.SetEntry{
				Reps:   int(reps),
				Weight: weight,
				Unit:   rs.Unit,
			})
		}
		if len(sets) == 0 {
			continue
		}
		out = append(out, models.ExerciseBlock{ExerciseID: exerciseID, Sets: sets})
	}
	return out
}

func toPositiveNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, false
		}
		v = t
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

func toPositiveID(v interface{}) (uint, bool) {
	f, ok := toPositiveNumber(v)
	if !ok || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false
	}
	return uint(f), true
}

// CreateWorkout validates the submission and stores the workout document
// together with one history row per set.
func (s *WorkoutService) CreateWorkout(ctx context.Context, in CreateWorkoutInput) (*models.Workout, error) {
	span, ctx := observability.NewSpan(ctx, "service.CreateWorkout")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if in.UserID == uuid.Nil || name == "" || len(in.Exercises) == 0 {
		return nil, models.NewValidationError("user_id, name and exercises are required")
	}
	if err := validation.ValidateLength("name", name, validation.MaxWorkoutNameLen); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	blocks := NormalizeBlocks(in.Exercises)
	if len(blocks) == 0 {
		return nil, models.NewValidationError("add at least one exercise with one set")
	}

	ids := make([]uint, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ExerciseID)
	}
	catalog, err := s.exercises.FindByIDs(ctx, ids)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	for i := range blocks {
		ex, ok := catalog[blocks[i].ExerciseID]
		if !ok {
			return nil, models.NewValidationError(fmt.Sprintf("unknown exercise_id %d", blocks[i].ExerciseID))
		}
		blocks[i].ExerciseName = ex.Name
		blocks[i].MuscleGroup = ex.MuscleGroup
	}

	exists, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if !exists {
		return nil, models.NewValidationError("unknown user_id")
	}

	day := models.NewDay(today(s.now, s.loc))
	if in.Date != nil && !in.Date.IsZero() {
		day = *in.Date
	}

	workout := &models.Workout{
		UserID:   in.UserID,
		Name:     name,
		IsPublic: in.IsPublic,
		Data:     datatypes.NewJSONType(models.WorkoutData{Exercises: blocks}),
	}
	logs := make([]models.ExerciseLog, 0, workout.Data.Data().SetCount())
	for _, b := range blocks {
		for _, set := range b.Sets {
			logs = append(logs, models.ExerciseLog{
				UserID:     in.UserID,
				ExerciseID: b.ExerciseID,
				Date:       day,
				Sets:       1,
				Reps:       set.Reps,
				Weight:     set.Weight,
			})
		}
	}

	if err := s.workouts.CreateWithLogs(ctx, workout, logs); err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(
		attribute.Int("workout.id", int(workout.ID)),
		attribute.Int("workout.sets", len(logs)),
	)

	visibility := "private"
	if workout.IsPublic {
		visibility = "public"
	}
	observability.WorkoutsCreated.WithLabelValues(visibility).Inc()
	observability.ExerciseLogRows.WithLabelValues("workout").Add(float64(len(logs)))

	if workout.IsPublic {
		cache.InvalidatePublicFeed(ctx, s.rdb)
		publish(ctx, s.events, notifications.EventWorkoutCreated, workout)
	}
	return workout, nil
}

// ListVisibleWorkouts returns public workouts plus the viewer's own, newest
// first, each marked with whether the viewer likes it.
func (s *WorkoutService) ListVisibleWorkouts(ctx context.Context, viewerID *uuid.UUID) ([]models.Workout, error) {
	if viewerID != nil && *viewerID == uuid.Nil {
		viewerID = nil
	}

	var workouts []models.Workout
	fetch := func() error {
		list, err := s.workouts.ListVisible(ctx, viewerID)
		if err != nil {
			return err
		}
		workouts = list
		return nil
	}

	if viewerID == nil && s.rdb != nil && s.flags.On(featureflags.FeedCache) {
		if err := cache.Aside(ctx, s.rdb, "feed", cache.PublicFeedKey, &workouts, cache.PublicFeedTTL, fetch); err != nil {
			return nil, err
		}
	} else if err := fetch(); err != nil {
		return nil, err
	}

	if workouts == nil {
		workouts = []models.Workout{}
	}
	if viewerID == nil || len(workouts) == 0 {
		return workouts, nil
	}

	ids := make([]uint, len(workouts))
	for i := range workouts {
		ids[i] = workouts[i].ID
	}
	liked, err := s.workouts.LikedWorkoutIDs(ctx, *viewerID, ids)
	if err != nil {
		return nil, err
	}
	for i := range workouts {
		workouts[i].Liked = liked[workouts[i].ID]
	}
	return workouts, nil
}

// ToggleLike flips the user's like on a workout.
func (s *WorkoutService) ToggleLike(ctx context.Context, workoutID uint, userID uuid.UUID) (*models.LikeResult, error) {
	if userID == uuid.Nil {
		return nil, models.NewValidationError("user_id is required")
	}

	span, ctx := observability.NewSpan(ctx, "service.ToggleLike",
		attribute.Int("workout.id", int(workoutID)),
	)
	defer span.End()

	workout, err := s.workouts.GetByID(ctx, workoutID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	known, err := s.users.Exists(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if !known {
		return nil, models.NewValidationError("unknown user_id")
	}

	res, err := s.workouts.ToggleLike(ctx, workoutID, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	outcome := "unliked"
	if res.Liked {
		outcome = "liked"
	}
	observability.LikeToggles.WithLabelValues(outcome).Inc()

	cache.InvalidatePublicFeed(ctx, s.rdb)
	if workout.IsPublic {
		publish(ctx, s.events, notifications.EventWorkoutLiked, notifications.WorkoutLikedPayload{
			WorkoutID:  res.ID,
			LikesCount: res.LikesCount,
			Liked:      res.Liked,
		})
	}
	return res, nil
}

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func likeRows(t *testing.T, db *gorm.DB, workoutID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.WorkoutLike{}).Where("workout_id = ?", workoutID).Count(&n).Error)
	return n
}

func storedLikes(t *testing.T, db *gorm.DB, workoutID uint) int {
	t.Helper()
	var w models.Workout
	require.NoError(t, db.First(&w, workoutID).Error)
	return w.LikesCount
}

func TestWorkoutRepository_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("pair of toggles restores the count", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		repo := NewWorkoutRepository(db)
		owner := testutil.CreateUser(t, db)
		w := testutil.CreateWorkout(t, db, owner.ID, "Push", true, time.Now().UTC())
		liker := uuid.New()

		first, err := repo.ToggleLike(ctx, w.ID, liker)
		require.NoError(t, err)
		assert.True(t, first.Liked)
		assert.Equal(t, 1, first.LikesCount)
		assert.Equal(t, w.ID, first.ID)

		second, err := repo.ToggleLike(ctx, w.ID, liker)
		require.NoError(t, err)
		assert.False(t, second.Liked)
		assert.Equal(t, 0, second.LikesCount)
		assert.Equal(t, int64(0), likeRows(t, db, w.ID))
	})

	t.Run("missing workout", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		repo := NewWorkoutRepository(db)

		_, err := repo.ToggleLike(ctx, 404, uuid.New())
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("drifted counter is repaired from membership", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		repo := NewWorkoutRepository(db)
		owner := testutil.CreateUser(t, db)
		w := testutil.CreateWorkout(t, db, owner.ID, "Legs", true, time.Now().UTC())
		require.NoError(t, db.Model(w).Update("likes_count", 5).Error)

		res, err := repo.ToggleLike(ctx, w.ID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 1, res.LikesCount)
	})

	t.Run("counter never goes below zero", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		repo := NewWorkoutRepository(db)
		owner := testutil.CreateUser(t, db)
		w := testutil.CreateWorkout(t, db, owner.ID, "Pull", true, time.Now().UTC())
		liker := uuid.New()

		for i := 0; i < 5; i++ {
			res, err := repo.ToggleLike(ctx, w.ID, liker)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.LikesCount, 0)
		}
		assert.Equal(t, int(likeRows(t, db, w.ID)), storedLikes(t, db, w.ID))
	})

	t.Run("concurrent toggles keep the invariant", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		repo := NewWorkoutRepository(db)
		owner := testutil.CreateUser(t, db)
		w := testutil.CreateWorkout(t, db, owner.ID, "Full body", true, time.Now().UTC())

		const users = 16
		likers := make([]uuid.UUID, users)
		for i := range likers {
			likers[i] = uuid.New()
		}

		// Each liker toggles three times: they end up liking the workout.
		var wg sync.WaitGroup
		errs := make(chan error, users*3)
		for _, u := range likers {
			for j := 0; j < 3; j++ {
				wg.Add(1)
				go func(u uuid.UUID) {
					defer wg.Done()
					if _, err := repo.ToggleLike(ctx, w.ID, u); err != nil {
						errs <- err
					}
				}(u)
			}
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		assert.Equal(t, int64(users), likeRows(t, db, w.ID))
		assert.Equal(t, users, storedLikes(t, db, w.ID))
	})
}

func TestWorkoutRepository_CreateWithLogs(t *testing.T) {
	ctx := context.Background()
	day := models.NewDay(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))

	newWorkout := func(userID uuid.UUID) (*models.Workout, []models.ExerciseLog) {
		data := models.WorkoutData{Exercises: []models.ExerciseBlock{
			{ExerciseID: 1, Sets: []models.SetEntry{{Reps: 5, Weight: 100}, {Reps: 5, Weight: 100}, {Reps: 5, Weight: 105}}},
			{ExerciseID: 2, Sets: []models.SetEntry{{Reps: 8, Weight: 40}, {Reps: 8, Weight: 40}, {Reps: 6, Weight: 45}}},
		}}
		w := &models.Workout{UserID: userID, Name: "Upper", Data: datatypes.NewJSONType(data)}
		var logs []models.ExerciseLog
		for _, b := range data.Exercises {
			for _, s := range b.Sets {
				logs = append(logs, models.ExerciseLog{
					UserID: userID, ExerciseID: b.ExerciseID, Date: day, Sets: 1, Reps: s.Reps, Weight: s.Weight,
				})
			}
		}
		return w, logs
	}

	t.Run("writes workout and one log per set", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		repo := NewWorkoutRepository(db)
		user := testutil.CreateUser(t, db)

		w, logs := newWorkout(user.ID)
		require.NoError(t, repo.CreateWithLogs(ctx, w, logs))
		assert.NotZero(t, w.ID)

		var count int64
		require.NoError(t, db.Model(&models.ExerciseLog{}).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Equal(t, int64(6), count)

		stored, err := repo.GetByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, stored.Data.Data().SetCount())
		assert.Equal(t, 0, stored.LikesCount)
	})

	t.Run("failed log batch rolls back the workout", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		user := testutil.CreateUser(t, db)
		require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_logs", func(tx *gorm.DB) {
			if tx.Statement.Table == "exercise_logs" {
				_ = tx.AddError(errors.New("disk full"))
			}
		}))
		repo := NewWorkoutRepository(db)

		w, logs := newWorkout(user.ID)
		err := repo.CreateWithLogs(ctx, w, logs)
		require.Error(t, err)

		var workouts, rows int64
		require.NoError(t, db.Model(&models.Workout{}).Count(&workouts).Error)
		require.NoError(t, db.Model(&models.ExerciseLog{}).Count(&rows).Error)
		assert.Zero(t, workouts)
		assert.Zero(t, rows)
	})
}

func TestWorkoutRepository_ListVisible(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewWorkoutRepository(db)

	a := testutil.CreateUser(t, db)
	b := testutil.CreateUser(t, db)
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	w1 := testutil.CreateWorkout(t, db, a.ID, "W1", true, base)
	w2 := testutil.CreateWorkout(t, db, a.ID, "W2", false, base.Add(time.Hour))
	w3 := testutil.CreateWorkout(t, db, b.ID, "W3", true, base.Add(2*time.Hour))
	testutil.CreateWorkout(t, db, b.ID, "W4", false, base.Add(3*time.Hour))

	ids := func(ws []models.Workout) []uint {
		out := make([]uint, 0, len(ws))
		for _, w := range ws {
			out = append(out, w.ID)
		}
		return out
	}

	forA, err := repo.ListVisible(ctx, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{w3.ID, w2.ID, w1.ID}, ids(forA))

	anonymous, err := repo.ListVisible(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{w3.ID, w1.ID}, ids(anonymous))

	_, err = repo.ToggleLike(ctx, w3.ID, a.ID)
	require.NoError(t, err)
	liked, err := repo.LikedWorkoutIDs(ctx, a.ID, ids(forA))
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{w3.ID: true}, liked)

	assert.Equal(t, int64(1), likeRows(t, db, w3.ID))
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByWorkout(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewCommentRepository(db)
	owner := testutil.CreateUser(t, db)
	w := testutil.CreateWorkout(t, db, owner.ID, "Push", true, time.Now().UTC())

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	second := &models.WorkoutComment{WorkoutID: w.ID, UserID: owner.ID, Content: "second", CreatedAt: at.Add(time.Minute)}
	first := &models.WorkoutComment{WorkoutID: w.ID, UserID: owner.ID, Content: "first", CreatedAt: at}
	tie := &models.WorkoutComment{WorkoutID: w.ID, UserID: owner.ID, Content: "third", CreatedAt: at.Add(time.Minute)}
	for _, c := range []*models.WorkoutComment{second, first, tie} {
		require.NoError(t, repo.Create(ctx, c))
	}

	comments, err := repo.ListByWorkout(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "third", comments[2].Content)

	empty, err := repo.ListByWorkout(ctx, w.ID+1)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserRepository(db)
	authID := uuid.New()

	user := &models.User{AuthID: &authID, Email: "Ana@Example.com", DisplayName: "Ana", Goal: models.GoalMaintain}
	created, err := repo.CreateIfAbsent(ctx, user)
	require.NoError(t, err)
	assert.True(t, created)

	dup := &models.User{AuthID: &authID, Email: "other@example.com", Goal: models.GoalMaintain}
	created, err = repo.CreateIfAbsent(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	byAuth, err := repo.GetByAuthID(ctx, authID)
	require.NoError(t, err)
	require.NotNil(t, byAuth)
	assert.Equal(t, user.ID, byAuth.ID)

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.GetByAuthID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	t.Run("attach only when unset", func(t *testing.T) {
		legacy := &models.User{Email: "legacy@example.com", Goal: models.GoalMaintain}
		require.NoError(t, db.Create(legacy).Error)

		newAuth := uuid.New()
		attached, err := repo.AttachAuthID(ctx, legacy.ID, newAuth)
		require.NoError(t, err)
		assert.True(t, attached)

		attached, err = repo.AttachAuthID(ctx, legacy.ID, uuid.New())
		require.NoError(t, err)
		assert.False(t, attached)

		got, err := repo.GetByID(ctx, legacy.ID)
		require.NoError(t, err)
		assert.Equal(t, newAuth, *got.AuthID)
	})

	t.Run("partial update", func(t *testing.T) {
		bio := "Lifting since 2019"
		age := 31
		updated, err := repo.Update(ctx, user.ID, models.ProfilePatch{Bio: &bio, Age: &age}.Updates())
		require.NoError(t, err)
		assert.Equal(t, bio, updated.Bio)
		assert.Equal(t, 31, *updated.Age)
		assert.Equal(t, "Ana", updated.DisplayName)

		_, err = repo.Update(ctx, uuid.New(), map[string]interface{}{"bio": "x"})
		assert.Equal(t, 404, models.StatusForError(err))
	})

	t.Run("avatar url", func(t *testing.T) {
		require.NoError(t, repo.SetAvatarURL(ctx, user.ID, "https://cdn.example.com/a.webp"))
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.webp", got.AvatarURL)

		ok, err := repo.Exists(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestExerciseRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewExerciseRepository(db)

	require.NoError(t, repo.CreateInBatches(ctx, []models.Exercise{
		{Name: "Squat", MuscleGroup: "quadriceps"},
		{Name: "Bench Press", MuscleGroup: "chest"},
		{Name: "Push Up", MuscleGroup: "chest"},
	}, 2))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Bench Press", all[0].Name)

	chest, err := repo.List(ctx, "Chest")
	require.NoError(t, err)
	assert.Len(t, chest, 2)

	err = repo.Create(ctx, &models.Exercise{Name: "Squat"})
	assert.Equal(t, 400, models.StatusForError(err))

	names, err := repo.ExistingNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "Push Up")

	_, err = repo.GetByID(ctx, 999)
	assert.Equal(t, 404, models.StatusForError(err))
}

func TestExerciseLogRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewExerciseLogRepository(db)
	user := uuid.New()

	last, err := repo.Last(ctx, user, 1)
	require.NoError(t, err)
	assert.Nil(t, last)

	d1 := models.NewDay(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	d2 := d1.AddDays(1)
	for _, l := range []models.ExerciseLog{
		{UserID: user, ExerciseID: 1, Date: d1, Sets: 3, Reps: 5, Weight: 100},
		{UserID: user, ExerciseID: 1, Date: d2, Sets: 1, Reps: 5, Weight: 105},
		{UserID: user, ExerciseID: 1, Date: d2, Sets: 1, Reps: 4, Weight: 107.5},
		{UserID: user, ExerciseID: 2, Date: d2, Sets: 1, Reps: 10, Weight: 20},
	} {
		l := l
		require.NoError(t, repo.Create(ctx, &l))
	}

	last, err = repo.Last(ctx, user, 1)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, d2.String(), last.Date.String())
	assert.Equal(t, 107.5, last.Weight)

	history, err := repo.History(ctx, user, 1, 2)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	total, err := repo.TotalSets(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	days, err := repo.TrainingDays(ctx, user)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, d2.String(), days[0].String())
	assert.Equal(t, d1.String(), days[1].String())

	var n int64
	require.NoError(t, db.Model(&models.ExerciseLog{}).Where("user_id = ?", user).Count(&n).Error)
	assert.Equal(t, int64(4), n)
}

func TestFoodRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewFoodRepository(db)
	brand := "Alpina"

	require.NoError(t, repo.CreateInBatches(ctx, []models.Food{
		{Name: "Apple", Kcal100: 52, Carbs100: 14},
		{Name: "Greek Yogurt", Brand: &brand, Kcal100: 97, Protein100: 9},
		{Name: "Oats", Kcal100: 389, Protein100: 17},
	}, 500))

	found, err := repo.Search(ctx, "alp", 50)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Greek Yogurt", found[0].Name)

	found, err = repo.Search(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	user := uuid.New()
	day := models.NewDay(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
	log := &models.FoodLog{UserID: user, FoodID: found[0].ID, Date: day, Grams: 150}
	require.NoError(t, repo.CreateLog(ctx, log))
	require.NoError(t, repo.CreateLog(ctx, &models.FoodLog{UserID: user, FoodID: found[0].ID, Date: day.AddDays(1), Grams: 80}))

	logs, err := repo.ListLogsByDay(ctx, user, day)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].Food)
	assert.Equal(t, "Apple", logs[0].Food.Name)

	got, err := repo.GetLog(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Grams)

	require.NoError(t, repo.DeleteLog(ctx, log.ID))
	assert.Equal(t, 404, models.StatusForError(repo.DeleteLog(ctx, log.ID)))
}

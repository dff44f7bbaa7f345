package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
  {"id": "Barbell_Squat", "name": "Barbell Squat", "category": "strength", "equipment": "barbell",
   "primaryMuscles": ["quadriceps"], "secondaryMuscles": ["glutes", "hamstrings"],
   "instructions": ["Unrack the bar.", "Squat down."], "images": ["Barbell_Squat/0.jpg"]},
  {"id": "Plank", "name": "Plank", "category": "strength", "primaryMuscles": [], "instructions": []},
  {"id": "Nameless", "name": "  "}
]`

func TestLoadExerciseCatalog_JSON(t *testing.T) {
	list, err := LoadExerciseCatalog(strings.NewReader(catalogJSON), "json")
	require.NoError(t, err)
	require.Len(t, list, 2)

	squat := list[0]
	assert.Equal(t, "Barbell Squat", squat.Name)
	assert.Equal(t, "quadriceps", squat.MuscleGroup)
	assert.Equal(t, "Unrack the bar.\nSquat down.\n\nEquipment: barbell\n\nSecondary: glutes, hamstrings", squat.Description)
	assert.Equal(t, catalogImageBase+"Barbell_Squat/0.jpg", squat.ImageURL)

	plank := list[1]
	assert.Equal(t, "strength", plank.MuscleGroup)
	assert.Empty(t, plank.Description)
	assert.Equal(t, catalogImageBase+"Plank/0.jpg", plank.ImageURL)
}

func TestLoadExerciseCatalog_YAML(t *testing.T) {
	doc := `
- name: Farmer Carry
  category: strongman
  equipment: dumbbell
- name: Hollow Hold
  primaryMuscles: [abdominals]
`
	list, err := LoadExerciseCatalog(strings.NewReader(doc), "yaml")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "strongman", list[0].MuscleGroup)
	assert.Equal(t, "Equipment: dumbbell", list[0].Description)
	assert.Empty(t, list[0].ImageURL)
	assert.Equal(t, "abdominals", list[1].MuscleGroup)
}

func TestLoadExerciseCatalog_Errors(t *testing.T) {
	_, err := LoadExerciseCatalog(strings.NewReader("{"), "json")
	assert.Error(t, err)

	_, err = LoadExerciseCatalog(strings.NewReader("[]"), "toml")
	assert.Error(t, err)
}

func TestFetchExerciseCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/exercises.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	list, err := FetchExerciseCatalog(context.Background(), srv.URL+"/exercises.json")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = FetchExerciseCatalog(context.Background(), srv.URL+"/missing.json")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestImportExercises_SkipsExistingAndDuplicates(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := repository.NewExerciseRepository(db)
	ctx := context.Background()
	testutil.CreateExercise(t, db, "Barbell Squat", "Legs")

	inserted, err := ImportExercises(ctx, repo, []models.Exercise{
		{Name: "Barbell Squat", MuscleGroup: "quadriceps"},
		{Name: "Deadlift", MuscleGroup: "hamstrings"},
		{Name: "Deadlift", MuscleGroup: "lower back"},
		{Name: "Pull Up", MuscleGroup: "lats"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, ex := range all {
		if ex.Name == "Deadlift" {
			assert.Equal(t, "hamstrings", ex.MuscleGroup)
		}
		if ex.Name == "Barbell Squat" {
			assert.Equal(t, "Legs", ex.MuscleGroup)
		}
	}

	again, err := ImportExercises(ctx, repo, all)
	require.NoError(t, err)
	assert.Zero(t, again)
}

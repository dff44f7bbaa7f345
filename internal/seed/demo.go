package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gosh00/FitnessApp/internal/featureflags"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DemoOptions sizes the generated demo data.
type DemoOptions struct {
	Users           int
	WorkoutsPerUser int
	// Days spreads workout dates over the last N days.
	Days int
	// Seed makes the output reproducible; zero picks a random seed.
	Seed int64
}

// DemoResult counts what Demo created.
type DemoResult struct {
	Users    int
	Workouts int
	Likes    int
	Comments int
}

var workoutNames = []string{
	"Push day", "Pull day", "Leg day", "Upper body", "Lower body",
	"Full body", "Morning lift", "Strength block", "Deload", "Heavy singles",
}

var commentLines = []string{
	"Strong session!", "Great volume", "That squat is moving", "Nice PR",
	"Consistency pays off", "Form looked solid", "Rest day tomorrow?",
}

// Demo creates profiles, workouts, likes and comments through the service
// layer so every write follows the same rules as the API. The exercise
// catalog must already be imported.
func Demo(ctx context.Context, db *gorm.DB, opts DemoOptions) (*DemoResult, error) {
	if opts.Users <= 0 {
		opts.Users = 10
	}
	if opts.WorkoutsPerUser <= 0 {
		opts.WorkoutsPerUser = 3
	}
	if opts.Days <= 0 {
		opts.Days = 30
	}
	faker := gofakeit.New(opts.Seed)

	exerciseRepo := repository.NewExerciseRepository(db)
	catalog, err := exerciseRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, errors.New("exercise catalog is empty; import it before generating demo data")
	}

	users := repository.NewUserRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	flags := featureflags.NewManager("")
	profiles := service.NewProfileService(users, nil, flags, 0)
	workouts := service.NewWorkoutService(workoutRepo, exerciseRepo, users, nil, flags, nil, time.UTC)
	comments := service.NewCommentService(repository.NewCommentRepository(db), workoutRepo, users, nil)

	result := &DemoResult{}
	members := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := profiles.Ensure(ctx, uuid.New(), fmt.Sprintf("demo%d.%s", i, faker.Email()))
		if err != nil {
			return result, fmt.Errorf("create demo user: %w", err)
		}
		bio := faker.Sentence(8)
		goal := faker.RandomString(models.Goals)
		age := faker.Number(18, 65)
		weight := math.Round(faker.Float64Range(50, 110)*10) / 10
		if user, err = profiles.Update(ctx, user.ID, models.ProfilePatch{Bio: &bio, Goal: &goal, Age: &age, Weight: &weight}); err != nil {
			return result, fmt.Errorf("update demo user: %w", err)
		}
		members = append(members, user)
		result.Users++
	}

	now := time.Now().UTC()
	for _, member := range members {
		for w := 0; w < opts.WorkoutsPerUser; w++ {
			day := models.NewDay(now.AddDate(0, 0, -faker.Number(0, opts.Days-1)))
			workout, err := workouts.CreateWorkout(ctx, service.CreateWorkoutInput{
				UserID:    member.ID,
				Name:      faker.RandomString(workoutNames),
				Exercises: demoBlocks(faker, catalog),
				IsPublic:  faker.Number(1, 4) > 1,
				Date:      &day,
			})
			if err != nil {
				return result, fmt.Errorf("create demo workout: %w", err)
			}
			result.Workouts++
			if !workout.IsPublic {
				continue
			}

			for _, fan := range members {
				if fan.ID == member.ID || !faker.Bool() {
					continue
				}
				if _, err := workouts.ToggleLike(ctx, workout.ID, fan.ID); err != nil {
					return result, fmt.Errorf("like demo workout: %w", err)
				}
				result.Likes++
				if faker.Number(1, 3) == 1 {
					if _, err := comments.AddComment(ctx, service.AddCommentInput{
						WorkoutID: workout.ID,
						UserID:    fan.ID,
						Content:   faker.RandomString(commentLines),
					}); err != nil {
						return result, fmt.Errorf("comment demo workout: %w", err)
					}
					result.Comments++
				}
			}
		}
	}
	return result, nil
}

func demoBlocks(faker *gofakeit.Faker, catalog []models.Exercise) []service.RawExerciseBlock {
	count := faker.Number(2, 4)
	if count > len(catalog) {
		count = len(catalog)
	}
	picked := make(map[uint]struct{}, count)
	blocks := make([]service.RawExerciseBlock, 0, count)
	for len(blocks) < count {
		ex := catalog[faker.Number(0, len(catalog)-1)]
		if _, dup := picked[ex.ID]; dup {
			continue
		}
		picked[ex.ID] = struct{}{}

		base := faker.Float64Range(20, 120)
		sets := make([]service.RawSet, faker.Number(2, 5))
		for i := range sets {
			sets[i] = service.RawSet{
				Reps:   faker.Number(3, 12),
				Weight: math.Round((base+float64(i)*2.5)/2.5) * 2.5,
				Unit:   "kg",
			}
		}
		blocks = append(blocks, service.RawExerciseBlock{ExerciseID: ex.ID, Sets: sets})
	}
	return blocks
}

package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gosh00/FitnessApp/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestWorkoutRepository_ToggleLike_SQL(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		mockBehavior func(mock sqlmock.Sqlmock)
		expected     *models.LikeResult
		expectedCode string
	}{
		{
			name: "Like inserts membership and recounts",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT "id" FROM "workouts" WHERE "workouts"."id" = \$1 .*FOR UPDATE`).
					WithArgs(7, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
				mock.ExpectExec(`DELETE FROM "workout_likes" WHERE workout_id = \$1 AND user_id = \$2`).
					WithArgs(7, userID).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`INSERT INTO "workout_likes" .*ON CONFLICT \("workout_id","user_id"\) DO NOTHING`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectExec(`UPDATE "workouts" SET "likes_count"=\(SELECT COUNT\(\*\) FROM "workout_likes" WHERE workout_id = \$1\) WHERE id = \$2`).
					WithArgs(7, 7).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT "likes_count" FROM "workouts" WHERE id = \$1`).
					WithArgs(7).
					WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(3))
				mock.ExpectCommit()
			},
			expected: &models.LikeResult{ID: 7, LikesCount: 3, Liked: true},
		},
		{
			name: "Unlike deletes membership and skips insert",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT "id" FROM "workouts" WHERE "workouts"."id" = \$1 .*FOR UPDATE`).
					WithArgs(7, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
				mock.ExpectExec(`DELETE FROM "workout_likes"`).
					WithArgs(7, userID).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE "workouts" SET "likes_count"=`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT "likes_count" FROM "workouts"`).
					WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(2))
				mock.ExpectCommit()
			},
			expected: &models.LikeResult{ID: 7, LikesCount: 2, Liked: false},
		},
		{
			name: "Unknown user rolls back as validation error",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT "id" FROM "workouts"`).
					WithArgs(7, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
				mock.ExpectExec(`DELETE FROM "workout_likes"`).
					WithArgs(7, userID).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`INSERT INTO "workout_likes"`).
					WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_workout_likes_user"})
				mock.ExpectRollback()
			},
			expectedCode: models.CodeValidation,
		},
		{
			name: "Missing workout rolls back",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT "id" FROM "workouts"`).
					WithArgs(7, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectRollback()
			},
			expectedCode: models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewWorkoutRepository(db)
			tt.mockBehavior(mock)

			res, err := repo.ToggleLike(context.Background(), 7, userID)
			if tt.expectedCode != "" {
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.expectedCode, appErr.Code)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, res)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentRepository_Create_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "workout_comments"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_workout_comments_user"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.WorkoutComment{
		WorkoutID: 7,
		UserID:    uuid.New(),
		Content:   "nice",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, "unknown user_id", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExerciseRepository_FindByIDs_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewExerciseRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "exercises" WHERE id IN \(\$1,\$2\)`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "muscle_group"}).
			AddRow(1, "Bench Press", "chest"))

	found, err := repo.FindByIDs(context.Background(), []uint{1, 2})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "Bench Press", found[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

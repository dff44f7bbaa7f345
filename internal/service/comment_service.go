package service

import (
	"context"
	"strings"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/notifications"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/validation"

	"github.com/google/uuid"
)

type CommentService struct {
	comments repository.CommentRepository
	workouts repository.WorkoutRepository
	users    repository.UserRepository
	events   EventPublisher
}

type AddCommentInput struct {
	WorkoutID uint
	UserID    uuid.UUID
	Content   string
}

func NewCommentService(
	comments repository.CommentRepository,
	workouts repository.WorkoutRepository,
	users repository.UserRepository,
	events EventPublisher,
) *CommentService {
	return &CommentService{
		comments: comments,
		workouts: workouts,
		users:    users,
		events:   events,
	}
}

// AddComment stores the trimmed content. Comments are append-only. Only
// comments on public workouts reach the live feed.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.WorkoutComment, error) {
	content := strings.TrimSpace(in.Content)
	if in.UserID == uuid.Nil || content == "" {
		return nil, models.NewValidationError("user_id and content are required")
	}
	if err := validation.ValidateLength("content", content, validation.MaxCommentLen); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	workout, err := s.workouts.GetByID(ctx, in.WorkoutID)
	if err != nil {
		return nil, err
	}
	known, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, models.NewValidationError("unknown user_id")
	}

	comment := &models.WorkoutComment{
		WorkoutID: in.WorkoutID,
		UserID:    in.UserID,
		Content:   content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if workout.IsPublic {
		publish(ctx, s.events, notifications.EventCommentCreated, comment)
	}
	return comment, nil
}

// ListComments returns a workout's comments oldest first. An unknown workout
// has no comments.
func (s *CommentService) ListComments(ctx context.Context, workoutID uint) ([]models.WorkoutComment, error) {
	return s.comments.ListByWorkout(ctx, workoutID)
}

package server

import (
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type createWorkoutRequest struct {
	UserID    uuid.UUID                  `json:"user_id"`
	Name      string                     `json:"name"`
	Exercises []service.RawExerciseBlock `json:"exercises"`
	IsPublic  bool                       `json:"is_public"`
	Date      *models.Day                `json:"date"`
}

type userRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// CreateWorkout handles POST /api/workouts
// @Summary Create a workout
// @Description Stores the workout document and one history row per valid set
// @Tags workouts
// @Accept json
// @Produce json
// @Param request body createWorkoutRequest true "Workout"
// @Success 201 {object} models.Workout
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /workouts [post]
func (s *Server) CreateWorkout(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req createWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := s.checkCallerOwns(ctx, c, req.UserID); err != nil {
		return respondError(c, err)
	}

	workout, err := s.workoutService.CreateWorkout(ctx, service.CreateWorkoutInput{
		UserID:    req.UserID,
		Name:      req.Name,
		Exercises: req.Exercises,
		IsPublic:  req.IsPublic,
		Date:      req.Date,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(workout)
}

// ListWorkouts handles GET /api/workouts
// @Summary Workout feed
// @Description Public workouts plus the viewer's own, newest first
// @Tags workouts
// @Produce json
// @Param viewer_id query string false "Viewer profile ID"
// @Success 200 {array} models.Workout
// @Failure 400 {object} models.ErrorResponse
// @Router /workouts [get]
func (s *Server) ListWorkouts(c *fiber.Ctx) error {
	viewerID, err := queryUUID(c, "viewer_id")
	if err != nil {
		return nil
	}

	var viewer *uuid.UUID
	if viewerID != uuid.Nil {
		viewer = &viewerID
	}
	workouts, err := s.workoutService.ListVisibleWorkouts(c.UserContext(), viewer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(workouts)
}

// ToggleLike handles POST /api/workouts/:id/like
// @Summary Like or unlike a workout
// @Description Flips the caller's like and returns the new count
// @Tags workouts
// @Accept json
// @Produce json
// @Param id path int true "Workout ID"
// @Param request body userRequest true "Liking user"
// @Success 200 {object} models.LikeResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /workouts/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()

	workoutID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := s.checkCallerOwns(ctx, c, req.UserID); err != nil {
		return respondError(c, err)
	}

	result, err := s.workoutService.ToggleLike(ctx, workoutID, req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

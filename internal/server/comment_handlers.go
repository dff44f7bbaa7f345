package server

import (
	"github.com/gosh00/FitnessApp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListComments handles GET /api/workouts/:id/comments
// @Summary List workout comments
// @Tags comments
// @Produce json
// @Param id path int true "Workout ID"
// @Success 200 {array} models.WorkoutComment
// @Failure 400 {object} models.ErrorResponse
// @Router /workouts/{id}/comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	workoutID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), workoutID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// AddComment handles POST /api/workouts/:id/comments
// @Summary Comment on a workout
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Workout ID"
// @Param request body object{user_id=string,content=string} true "Comment"
// @Success 201 {object} models.WorkoutComment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /workouts/{id}/comments [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	workoutID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		UserID  uuid.UUID `json:"user_id"`
		Content string    `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := s.checkCallerOwns(ctx, c, req.UserID); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.AddComment(ctx, service.AddCommentInput{
		WorkoutID: workoutID,
		UserID:    req.UserID,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

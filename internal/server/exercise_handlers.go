package server

import (
	"github.com/gosh00/FitnessApp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListExercises handles GET /api/exercises
// @Summary Exercise catalog
// @Tags exercises
// @Produce json
// @Param muscle query string false "Muscle group filter"
// @Success 200 {array} models.Exercise
// @Router /exercises [get]
func (s *Server) ListExercises(c *fiber.Ctx) error {
	exercises, err := s.exerciseService.List(c.UserContext(), c.Query("muscle"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exercises)
}

// CreateExercise handles POST /api/exercises
// @Summary Add a catalog exercise
// @Tags exercises
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.Exercise true "Exercise"
// @Success 201 {object} models.Exercise
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /exercises [post]
func (s *Server) CreateExercise(c *fiber.Ctx) error {
	var req models.Exercise
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ID = 0

	exercise, err := s.exerciseService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exercise)
}

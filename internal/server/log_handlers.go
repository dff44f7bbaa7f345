package server

import (
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateLog handles POST /api/logs
// @Summary Record a history row
// @Tags logs
// @Accept json
// @Produce json
// @Param request body object{user_id=string,exercise_id=int,sets=int,reps=int,weight=number,date=string} true "Log"
// @Success 201 {object} models.ExerciseLog
// @Failure 400 {object} models.ErrorResponse
// @Router /logs [post]
func (s *Server) CreateLog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		UserID     uuid.UUID   `json:"user_id"`
		ExerciseID uint        `json:"exercise_id"`
		Sets       int         `json:"sets"`
		Reps       int         `json:"reps"`
		Weight     float64     `json:"weight"`
		Date       *models.Day `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := s.checkCallerOwns(ctx, c, req.UserID); err != nil {
		return respondError(c, err)
	}

	log, err := s.logService.Create(ctx, service.CreateLogInput{
		UserID:     req.UserID,
		ExerciseID: req.ExerciseID,
		Sets:       req.Sets,
		Reps:       req.Reps,
		Weight:     req.Weight,
		Date:       req.Date,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

// logQuery reads the user_id and exercise_id query pair.
func logQuery(c *fiber.Ctx) (uuid.UUID, uint, error) {
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		return uuid.Nil, 0, err
	}
	exerciseID, err := queryUint(c, "exercise_id")
	if err != nil {
		return uuid.Nil, 0, err
	}
	return userID, exerciseID, nil
}

// GetLastLog handles GET /api/logs/last
// @Summary Latest history row for an exercise
// @Tags logs
// @Produce json
// @Param user_id query string true "Profile ID"
// @Param exercise_id query int true "Exercise ID"
// @Success 200 {object} models.ExerciseLog "null when there is no history"
// @Failure 400 {object} models.ErrorResponse
// @Router /logs/last [get]
func (s *Server) GetLastLog(c *fiber.Ctx) error {
	userID, exerciseID, err := logQuery(c)
	if err != nil {
		return nil
	}

	log, err := s.logService.Last(c.UserContext(), userID, exerciseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(log)
}

// GetLogHistory handles GET /api/logs/history
// @Summary History for an exercise
// @Tags logs
// @Produce json
// @Param user_id query string true "Profile ID"
// @Param exercise_id query int true "Exercise ID"
// @Param limit query int false "Max rows (default 20, max 200)"
// @Success 200 {array} models.ExerciseLog
// @Failure 400 {object} models.ErrorResponse
// @Router /logs/history [get]
func (s *Server) GetLogHistory(c *fiber.Ctx) error {
	userID, exerciseID, err := logQuery(c)
	if err != nil {
		return nil
	}

	logs, err := s.logService.History(c.UserContext(), userID, exerciseID, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(logs)
}

// GetLogStats handles GET /api/logs/stats
// @Summary Training totals, streak and level
// @Tags logs
// @Produce json
// @Param user_id query string true "Profile ID"
// @Success 200 {object} models.LogStats
// @Failure 400 {object} models.ErrorResponse
// @Router /logs/stats [get]
func (s *Server) GetLogStats(c *fiber.Ctx) error {
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		return nil
	}

	stats, err := s.logService.Stats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

package server

import (
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SearchFoods handles GET /api/foods
// @Summary Search the food catalog
// @Tags food
// @Produce json
// @Param q query string false "Name or brand"
// @Param limit query int false "Max rows (default 20, max 50)"
// @Success 200 {array} models.Food
// @Router /foods [get]
func (s *Server) SearchFoods(c *fiber.Ctx) error {
	foods, err := s.foodService.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(foods)
}

// CreateFoodLog handles POST /api/foodlogs
// @Summary Add a food diary entry
// @Tags food
// @Accept json
// @Produce json
// @Param request body object{user_id=string,food_id=int,grams=number,date=string,meal=string,note=string} true "Entry"
// @Success 201 {object} models.FoodLog
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /foodlogs [post]
func (s *Server) CreateFoodLog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		UserID uuid.UUID   `json:"user_id"`
		FoodID uint        `json:"food_id"`
		Grams  float64     `json:"grams"`
		Date   *models.Day `json:"date"`
		Meal   *string     `json:"meal"`
		Note   *string     `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := s.checkCallerOwns(ctx, c, req.UserID); err != nil {
		return respondError(c, err)
	}

	log, err := s.foodService.AddFoodLog(ctx, service.AddFoodLogInput{
		UserID: req.UserID,
		FoodID: req.FoodID,
		Grams:  req.Grams,
		Date:   req.Date,
		Meal:   req.Meal,
		Note:   req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

// GetFoodLogs handles GET /api/foodlogs
// @Summary A day of the food diary with totals
// @Tags food
// @Produce json
// @Param user_id query string true "Profile ID"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} models.FoodDay
// @Failure 400 {object} models.ErrorResponse
// @Router /foodlogs [get]
func (s *Server) GetFoodLogs(c *fiber.Ctx) error {
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		return nil
	}
	day, err := queryDay(c, "date")
	if err != nil {
		return nil
	}

	out, err := s.foodService.DailyFoodLog(c.UserContext(), userID, day)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteFoodLog handles DELETE /api/foodlogs/:id
// @Summary Remove a food diary entry
// @Tags food
// @Param id path int true "Entry ID"
// @Param user_id query string true "Owner profile ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /foodlogs/{id} [delete]
func (s *Server) DeleteFoodLog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		return nil
	}
	if err := s.checkCallerOwns(ctx, c, userID); err != nil {
		return respondError(c, err)
	}

	if err := s.foodService.DeleteFoodLog(ctx, id, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFoodInfo handles GET /api/foodinfo
// @Summary Nutrition lookup
// @Description Free-text query passed to the nutrition API; its JSON array is returned unchanged
// @Tags food
// @Produce json
// @Param query query string true "e.g. 100g apple"
// @Success 200 {array} object
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /foodinfo [get]
func (s *Server) GetFoodInfo(c *fiber.Ctx) error {
	body, err := s.nutritionService.Lookup(c.UserContext(), c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// EstimateCalories handles POST /api/calories/estimate
// @Summary Daily calorie needs
// @Description Mifflin-St Jeor BMR, activity-adjusted TDEE and goal targets
// @Tags food
// @Accept json
// @Produce json
// @Param request body service.CalorieInput true "Measurements"
// @Success 200 {object} service.CalorieEstimate
// @Failure 400 {object} models.ErrorResponse
// @Router /calories/estimate [post]
func (s *Server) EstimateCalories(c *fiber.Ctx) error {
	var req service.CalorieInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	estimate, err := service.EstimateCalories(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estimate)
}

package server

import (
	"github.com/gofiber/fiber/v2"
)

// SyncAuth handles POST /api/auth/sync
// @Summary Resolve the caller's role
// @Description Echoes the identity with its display name and role; nothing is stored
// @Tags auth
// @Accept json
// @Produce json
// @Param request body identityRequest true "Identity"
// @Success 200 {object} service.SyncResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /auth/sync [post]
func (s *Server) SyncAuth(c *fiber.Ctx) error {
	var req identityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := checkCallerAuthID(c, req.AuthID); err != nil {
		return respondError(c, err)
	}

	result, err := s.authService.Sync(c.UserContext(), req.AuthID, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

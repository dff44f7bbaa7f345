package server

import (
	"context"
	"errors"
	"strings"

	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// respondError writes err with the status its AppError code maps to.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

func badRequest(c *fiber.Ctx, message string) error {
	return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(message))
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = badRequest(c, "Invalid "+strings.ToUpper(param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// queryUUID reads an optional UUID query parameter. A missing value yields
// uuid.Nil; a malformed one writes a 400 and returns errResponseWritten.
func queryUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = badRequest(c, "Invalid "+name)
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// queryUint reads an optional positive integer query parameter. A missing
// value yields 0.
func queryUint(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n := c.QueryInt(name, -1)
	if n <= 0 {
		_ = badRequest(c, "Invalid "+name)
		return 0, errResponseWritten
	}
	return uint(n), nil
}

// queryDay reads an optional YYYY-MM-DD query parameter.
func queryDay(c *fiber.Ctx, name string) (*models.Day, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	day, err := models.ParseDay(raw)
	if err != nil {
		_ = badRequest(c, "Invalid "+name+", expected YYYY-MM-DD")
		return nil, errResponseWritten
	}
	return &day, nil
}

// checkCallerAuthID rejects a request whose body names an auth_id other than
// the verified token subject. Requests without a verified token are allowed.
func checkCallerAuthID(c *fiber.Ctx, authID uuid.UUID) error {
	caller, ok := middleware.AuthIDFromLocals(c)
	if !ok || authID == uuid.Nil || caller == authID {
		return nil
	}
	return models.NewForbiddenError("auth_id does not match the signed-in user")
}

// checkCallerOwns rejects a request acting for a profile that is not bound to
// the verified token subject. Requests without a verified token are allowed.
func (s *Server) checkCallerOwns(ctx context.Context, c *fiber.Ctx, userID uuid.UUID) error {
	caller, ok := middleware.AuthIDFromLocals(c)
	if !ok || userID == uuid.Nil {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		// Unknown profiles are reported by the service that uses them.
		if models.StatusForError(err) == fiber.StatusNotFound {
			return nil
		}
		return err
	}
	if !s.profileService.Owns(user, caller) {
		return models.NewForbiddenError("not your profile")
	}
	return nil
}

package server

import (
	"io"
	"strings"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type identityRequest struct {
	AuthID uuid.UUID `json:"auth_id"`
	Email  string    `json:"email"`
}

// EnsureProfile handles POST /api/profile/ensure
// @Summary Get or create the caller's profile
// @Description Returns the profile bound to auth_id, claiming a legacy row with the same email or creating a new one
// @Tags profile
// @Accept json
// @Produce json
// @Param request body identityRequest true "Identity"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /profile/ensure [post]
func (s *Server) EnsureProfile(c *fiber.Ctx) error {
	var req identityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := checkCallerAuthID(c, req.AuthID); err != nil {
		return respondError(c, err)
	}

	user, err := s.profileService.Ensure(c.UserContext(), req.AuthID, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile handles POST /api/profile/update
// @Summary Update profile fields
// @Description Only the fields present in the body change
// @Tags profile
// @Accept json
// @Produce json
// @Param request body object{user_id=string,display_name=string,bio=string,age=int,weight=number,height=number,goal=string} true "Profile patch"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/update [post]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		UserID uuid.UUID `json:"user_id"`
		models.ProfilePatch
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := s.checkCallerOwns(ctx, c, req.UserID); err != nil {
		return respondError(c, err)
	}

	user, err := s.profileService.Update(ctx, req.UserID, req.ProfilePatch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UploadAvatar handles POST /api/profile/avatar
// @Summary Upload a profile picture
// @Description Multipart upload; the image is squared, resized and stored in the avatars bucket
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Image"
// @Param auth_id formData string true "Caller auth ID"
// @Param user_id formData string true "Profile ID"
// @Success 200 {object} object{avatar_url=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /profile/avatar [post]
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	authID, _ := uuid.Parse(strings.TrimSpace(c.FormValue("auth_id")))
	userID, _ := uuid.Parse(strings.TrimSpace(c.FormValue("user_id")))
	if err := checkCallerAuthID(c, authID); err != nil {
		return respondError(c, err)
	}

	var content []byte
	if header, err := c.FormFile("avatar"); err == nil {
		f, err := header.Open()
		if err != nil {
			return badRequest(c, "Invalid file upload")
		}
		defer f.Close()
		if content, err = io.ReadAll(f); err != nil {
			return badRequest(c, "Invalid file upload")
		}
	}

	url, err := s.profileService.UploadAvatar(c.UserContext(), service.UploadAvatarInput{
		UserID:  userID,
		AuthID:  authID,
		Content: content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}

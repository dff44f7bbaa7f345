package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gosh00/FitnessApp/internal/featureflags"
	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/observability"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/storage"
	"github.com/gosh00/FitnessApp/internal/validation"

	"github.com/google/uuid"
)

const (
	DefaultAvatarMaxUploadMB = 5
	defaultAvatarURLFormat   = "https://api.dicebear.com/9.x/identicon/svg?seed=%s"
)

type ProfileService struct {
	users          repository.UserRepository
	store          storage.ObjectStorage
	flags          *featureflags.Manager
	maxUploadBytes int64
}

type UploadAvatarInput struct {
	UserID  uuid.UUID
	AuthID  uuid.UUID
	Content []byte
}

// NewProfileService wires the profile service. store may be nil when no
// bucket is configured; avatar uploads then fail with an upstream error.
func NewProfileService(users repository.UserRepository, store storage.ObjectStorage, flags *featureflags.Manager, maxUploadMB int) *ProfileService {
	if maxUploadMB <= 0 {
		maxUploadMB = DefaultAvatarMaxUploadMB
	}
	return &ProfileService{
		users:          users,
		store:          store,
		flags:          flags,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// DefaultAvatarURL is the generated avatar assigned to new profiles.
func DefaultAvatarURL(authID uuid.UUID) string {
	return fmt.Sprintf(defaultAvatarURLFormat, authID.String())
}

// Ensure returns the profile for authID, creating it on first use. A row
// that already carries the email but no auth_id is claimed instead.
func (s *ProfileService) Ensure(ctx context.Context, authID uuid.UUID, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if authID == uuid.Nil || email == "" {
		return nil, models.NewValidationError("auth_id and email are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// A lost insert race is resolved by a second pass that reads the winner.
	for attempt := 0; attempt < 2; attempt++ {
		user, err := s.users.GetByAuthID(ctx, authID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}

		byEmail, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if byEmail != nil {
			if byEmail.AuthID != nil && *byEmail.AuthID != authID {
				return nil, models.NewForbiddenError("email is linked to another account")
			}
			attached, err := s.users.AttachAuthID(ctx, byEmail.ID, authID)
			if err != nil {
				return nil, err
			}
			if attached {
				middleware.Logger.InfoContext(ctx, "attached auth id to existing profile",
					slog.String("user_id", byEmail.ID.String()),
				)
				return s.users.GetByID(ctx, byEmail.ID)
			}
			continue
		}

		fresh := &models.User{
			AuthID:      &authID,
			Email:       email,
			DisplayName: models.DisplayNameFromEmail(email),
			Goal:        models.GoalMaintain,
			AvatarURL:   DefaultAvatarURL(authID),
		}
		inserted, err := s.users.CreateIfAbsent(ctx, fresh)
		if err != nil {
			return nil, err
		}
		if inserted {
			return fresh, nil
		}
	}
	return nil, models.NewInternalError(errors.New("profile ensure did not converge"))
}

// Update applies the non-nil fields of patch.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, patch models.ProfilePatch) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, models.NewValidationError("user_id is required")
	}
	if err := validation.ValidateProfilePatch(patch); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.users.Update(ctx, userID, patch.Updates())
}

// UploadAvatar re-encodes the image, stores it and points the profile at it.
// Only the identity that owns the profile may replace its avatar.
func (s *ProfileService) UploadAvatar(ctx context.Context, in UploadAvatarInput) (string, error) {
	if in.UserID == uuid.Nil || in.AuthID == uuid.Nil {
		return "", models.NewValidationError("user_id and auth_id are required")
	}
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}
	if !isAllowedAvatarMIME(in.Content) {
		return "", models.NewValidationError("avatar must be a JPEG, PNG, GIF or WebP image")
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return "", err
	}
	if !s.Owns(user, in.AuthID) {
		return "", models.NewForbiddenError("not your profile")
	}
	if s.store == nil {
		return "", models.NewUpstreamError("error uploading avatar", storage.ErrNotConfigured)
	}

	span, ctx := observability.NewSpan(ctx, "service.UploadAvatar")
	defer span.End()

	encoded, err := processAvatar(in.Content, s.flags.Enabled(featureflags.AvatarWebP, in.AuthID.String()))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	key := avatarKey(in.AuthID.String(), encoded.Body, encoded.Ext)
	if err := s.store.Put(ctx, key, encoded.ContentType, encoded.Body); err != nil {
		span.SetError(err)
		middleware.Logger.ErrorContext(ctx, "avatar upload failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return "", models.NewUpstreamError("error uploading avatar", err)
	}

	url := s.store.PublicURL(key)
	if err := s.users.SetAvatarURL(ctx, user.ID, url); err != nil {
		return "", err
	}
	observability.AvatarUploads.WithLabelValues(encoded.Ext).Inc()
	return url, nil
}

// Owns reports whether the profile is bound to authID.
func (s *ProfileService) Owns(user *models.User, authID uuid.UUID) bool {
	return user != nil && user.AuthID != nil && *user.AuthID == authID
}

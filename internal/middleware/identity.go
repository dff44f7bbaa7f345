package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	localAuthID    = "authID"
	localAuthEmail = "authEmail"
)

// IdentityClaims are the claims read from identity-provider access tokens.
type IdentityClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseIdentityToken validates an HS256 access token and returns its claims.
// The subject must be a UUID.
func ParseIdentityToken(tokenString, secret string) (*IdentityClaims, uuid.UUID, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, uuid.Nil, errors.New("invalid or expired token")
	}

	authID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, errors.New("invalid token subject")
	}
	return claims, authID, nil
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// Identity verifies a Bearer access token when one is sent and stores the
// caller's auth ID and email in locals. With an empty secret verification is
// disabled and requests pass through untouched. Requests without a token
// pass through unless required is set.
func Identity(secret string, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		token, present := bearerToken(c)
		if !present {
			if required {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Authorization header required",
					"code":  "UNAUTHORIZED",
				})
			}
			return c.Next()
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
				"code":  "UNAUTHORIZED",
			})
		}

		claims, authID, err := ParseIdentityToken(token, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
				"code":  "UNAUTHORIZED",
			})
		}

		c.Locals(localAuthID, authID)
		c.Locals(localAuthEmail, strings.ToLower(claims.Email))
		return c.Next()
	}
}

// AdminOnly allows the request only when the verified token email matches adminEmail.
func AdminOnly(adminEmail string) fiber.Handler {
	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals(localAuthEmail).(string)
		if adminEmail == "" || email == "" || email != adminEmail {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
				"code":  "FORBIDDEN",
			})
		}
		return c.Next()
	}
}

// AuthIDFromLocals returns the verified caller auth ID, if any.
func AuthIDFromLocals(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(localAuthID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// SetAuthIDLocal stores a verified caller identity. Used by tests and internal callers.
func SetAuthIDLocal(c *fiber.Ctx, authID uuid.UUID, email string) {
	c.Locals(localAuthID, authID)
	c.Locals(localAuthEmail, strings.ToLower(email))
}

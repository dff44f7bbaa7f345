package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "identity-test-secret"

func signToken(t *testing.T, secret, sub, email string, exp time.Time) string {
	t.Helper()
	claims := IdentityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func identityApp(secret string, required bool) *fiber.App {
	app := fiber.New()
	app.Get("/me", Identity(secret, required), func(c *fiber.Ctx) error {
		id, ok := AuthIDFromLocals(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(id.String())
	})
	app.Post("/admin", Identity(secret, true), AdminOnly("Coach@Example.com"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestIdentity(t *testing.T) {
	authID := uuid.New()
	valid := signToken(t, testSecret, authID.String(), "ana@example.com", time.Now().Add(time.Hour))

	t.Run("valid token sets identity", func(t *testing.T) {
		status, body := doRequest(t, identityApp(testSecret, false), http.MethodGet, "/me", valid)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, authID.String(), body)
	})

	t.Run("missing token passes when optional", func(t *testing.T) {
		status, body := doRequest(t, identityApp(testSecret, false), http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "anonymous", body)
	})

	t.Run("missing token rejected when required", func(t *testing.T) {
		status, body := doRequest(t, identityApp(testSecret, true), http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.JSONEq(t, `{"error":"Authorization header required","code":"UNAUTHORIZED"}`, body)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, testSecret, authID.String(), "ana@example.com", time.Now().Add(-time.Minute))
		status, body := doRequest(t, identityApp(testSecret, false), http.MethodGet, "/me", expired)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Contains(t, body, `"code":"UNAUTHORIZED"`)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged := signToken(t, "other-secret", authID.String(), "ana@example.com", time.Now().Add(time.Hour))
		status, _ := doRequest(t, identityApp(testSecret, false), http.MethodGet, "/me", forged)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		bad := signToken(t, testSecret, "42", "ana@example.com", time.Now().Add(time.Hour))
		status, _ := doRequest(t, identityApp(testSecret, false), http.MethodGet, "/me", bad)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("verification disabled without secret", func(t *testing.T) {
		status, body := doRequest(t, identityApp("", true), http.MethodGet, "/me", "garbage")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "anonymous", body)
	})
}

func TestAdminOnly(t *testing.T) {
	app := identityApp(testSecret, true)

	admin := signToken(t, testSecret, uuid.NewString(), "coach@example.com", time.Now().Add(time.Hour))
	status, _ := doRequest(t, app, http.MethodPost, "/admin", admin)
	assert.Equal(t, http.StatusNoContent, status)

	member := signToken(t, testSecret, uuid.NewString(), "ana@example.com", time.Now().Add(time.Hour))
	status, _ = doRequest(t, app, http.MethodPost, "/admin", member)
	assert.Equal(t, http.StatusForbidden, status)
}

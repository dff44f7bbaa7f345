package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gosh00/FitnessApp/internal/config"
	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret     = "test-identity-secret"
	testAdminEmail = "coach@example.com"
)

type testEnv struct {
	srv   *Server
	app   *fiber.App
	db    *gorm.DB
	store *testutil.MemoryStorage
}

// newTestEnv builds a server on an in-memory database without Redis.
func newTestEnv(t *testing.T, mutate ...func(*config.Config, *Deps)) *testEnv {
	t.Helper()
	db := testutil.OpenTestDB(t)
	store := testutil.NewMemoryStorage()
	cfg := &config.Config{
		Env:          "test",
		Timezone:     "UTC",
		FeatureFlags: "feed_cache=on,avatar_webp=off,live_feed=on",
		AdminEmail:   testAdminEmail,
	}
	deps := Deps{Storage: store}
	for _, m := range mutate {
		m(cfg, &deps)
	}

	srv, err := NewServerWithDeps(cfg, db, nil, deps)
	require.NoError(t, err)
	return &testEnv{srv: srv, app: srv.NewApp(), db: db, store: store}
}

func withIdentity(cfg *config.Config, _ *Deps) {
	cfg.AuthJWTSecret = testSecret
}

func signToken(t *testing.T, sub, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.IdentityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func assertErrorBody(t *testing.T, raw []byte, code string) models.ErrorResponse {
	t.Helper()
	body := decode[models.ErrorResponse](t, raw)
	assert.Equal(t, code, body.Code, string(raw))
	assert.NotEmpty(t, body.Error)
	return body
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/health", "/api/health"} {
		status, raw := env.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, fiber.StatusOK, status)
		body := decode[map[string]string](t, raw)
		assert.Equal(t, "ok", body["status"])
		assert.NotEmpty(t, body["message"])
	}

	status, raw := env.do(t, http.MethodGet, "/health/ready", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	ready := decode[map[string]interface{}](t, raw)
	assert.Equal(t, "healthy", ready["status"])
	assert.Equal(t, "unavailable", ready["checks"].(map[string]interface{})["redis"])
}

func TestUnknownRouteAndMalformedInput(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, raw := env.do(t, http.MethodPost, "/api/workouts/abc/like", map[string]string{}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assertErrorBody(t, raw, models.CodeValidation)

	status, raw = env.do(t, http.MethodGet, "/api/workouts?viewer_id=not-a-uuid", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assertErrorBody(t, raw, models.CodeValidation)

	req := httptest.NewRequest(http.MethodPost, "/api/workouts", bytes.NewBufferString("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, raw = env.send(t, req)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assertErrorBody(t, raw, models.CodeValidation)
}

func TestIdentityToken(t *testing.T) {
	env := newTestEnv(t, withIdentity)

	status, raw := env.do(t, http.MethodGet, "/api/exercises", nil, "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status, string(raw))

	// Anonymous reads still work when verification is on.
	status, _ = env.do(t, http.MethodGet, "/api/exercises", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestFeedWebSocket(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db)
	bench := testutil.CreateExercise(t, env.db, "Bench Press", "Chest")

	status, _ := env.do(t, http.MethodGet, "/api/ws/feed", nil, "")
	assert.Equal(t, fiber.StatusUpgradeRequired, status)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.Shutdown() })

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/ws/feed", nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool { return env.srv.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	status, raw := env.do(t, http.MethodPost, "/api/workouts", map[string]interface{}{
		"user_id":   user.ID,
		"name":      "Push day",
		"is_public": true,
		"exercises": []map[string]interface{}{
			{"exercise_id": bench.ID, "sets": []map[string]interface{}{{"reps": 5, "weight": 80}}},
		},
	}, "")
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	event := decode[map[string]interface{}](t, msg)
	assert.Equal(t, "workout_created", event["type"])
}

func TestFeedWebSocket_DisabledByFlag(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config, _ *Deps) {
		cfg.FeatureFlags = "live_feed=off"
	})
	assert.Nil(t, env.srv.hub)

	status, _ := env.do(t, http.MethodGet, "/api/ws/feed", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasknotes-be/internal/pkg/logger"
	"tasknotes-be/internal/pkg/serverutils"
	"tasknotes-be/internal/pkg/tokenstore"
	"tasknotes-be/internal/repository/memory"
	"tasknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJwtSecret = "controller_test_secret"

// noopPublisher discards queued notifications; the pipeline has its own tests.
type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	factory := memory.NewFactory()
	store := tokenstore.NewMemoryStore()
	log := logger.NewNop()

	authService := service.NewAuthService(factory, store, testJwtSecret, log)
	userService := service.NewUserService(factory)
	noteService := service.NewNoteService(factory, noopPublisher{}, nil, false, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	authMiddleware := serverutils.NewAuthMiddleware(testJwtSecret, store)

	NewAuthController(authService).RegisterRoutes(app, authMiddleware)
	NewUserController(userService).RegisterRoutes(app, authMiddleware)
	NewNoteController(noteService).RegisterRoutes(app, authMiddleware)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	return resp.StatusCode, parsed
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/create-account", "", map[string]interface{}{
		"fullName": "Test User",
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	require.Equal(t, false, body["error"])
	require.Equal(t, "Registration Successful", body["message"])

	token, ok := body["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "alice@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["error"])
	assert.Equal(t, "Login Successful", body["message"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["accessToken"])

	status, body = doJSON(t, app, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Invalid Credentials", body["message"])
}

func TestNoteEndpointsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/get-all-notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, true, body["error"])
}

func TestNoteCrudFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice@example.com")

	// Create
	status, body := doJSON(t, app, http.MethodPost, "/add-note", token, map[string]interface{}{
		"title": "Buy milk",
		"tags":  []string{"errand"},
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	assert.Equal(t, false, body["error"])
	assert.Equal(t, "Task added successfully", body["message"])

	note := body["note"].(map[string]interface{})
	noteId := note["id"].(string)
	assert.Equal(t, "Buy milk", note["title"])
	assert.Equal(t, "To-Do", note["status"])
	assert.Equal(t, "Medium", note["priority"])

	// Missing title is rejected with the client-facing message.
	status, body = doJSON(t, app, http.MethodPost, "/add-note", token, map[string]interface{}{
		"title": "  ",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please add a task", body["message"])

	// Edit
	status, body = doJSON(t, app, http.MethodPut, "/edit-note/"+noteId, token, map[string]interface{}{
		"isComplete": true,
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	note = body["note"].(map[string]interface{})
	assert.Equal(t, true, note["isComplete"])
	assert.Equal(t, "Complete", note["status"])
	assert.NotNil(t, note["completedTime"])

	// Pin
	status, body = doJSON(t, app, http.MethodPut, "/update-note-pinned/"+noteId, token, map[string]interface{}{
		"isPinned": true,
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	note = body["note"].(map[string]interface{})
	assert.Equal(t, true, note["isPinned"])

	// Pin without the flag fails validation.
	status, _ = doJSON(t, app, http.MethodPut, "/update-note-pinned/"+noteId, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)

	// List
	status, body = doJSON(t, app, http.MethodGet, "/get-all-notes", token, nil)
	require.Equal(t, http.StatusOK, status)
	notes := body["notes"].([]interface{})
	require.Len(t, notes, 1)

	// Search
	status, body = doJSON(t, app, http.MethodGet, "/search-notes?query=milk", token, nil)
	require.Equal(t, http.StatusOK, status)
	notes = body["notes"].([]interface{})
	require.Len(t, notes, 1)

	status, body = doJSON(t, app, http.MethodGet, "/search-notes?query=nothing-matches", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["notes"])

	// Delete
	status, body = doJSON(t, app, http.MethodDelete, "/delete-note/"+noteId, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task deleted successfully", body["message"])

	status, body = doJSON(t, app, http.MethodDelete, "/delete-note/"+noteId, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found or unauthorized", body["message"])
}

func TestNoteOwnershipOverHTTP(t *testing.T) {
	app := newTestApp(t)
	aliceToken := registerAndLogin(t, app, "alice@example.com")
	bobToken := registerAndLogin(t, app, "bob@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/add-note", aliceToken, map[string]interface{}{
		"title": "Alice only",
	})
	require.Equal(t, http.StatusOK, status)
	noteId := body["note"].(map[string]interface{})["id"].(string)

	status, body = doJSON(t, app, http.MethodPut, "/edit-note/"+noteId, bobToken, map[string]interface{}{
		"title": "hijacked",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found or unauthorized", body["message"])

	// A malformed id gets the same response as a foreign one.
	status, body = doJSON(t, app, http.MethodDelete, "/delete-note/not-a-uuid", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found or unauthorized", body["message"])

	status, body = doJSON(t, app, http.MethodGet, "/get-all-notes", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["notes"])
}

func TestUserEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice@example.com")
	registerAndLogin(t, app, "bob@example.com")

	status, body := doJSON(t, app, http.MethodGet, "/get-user", token, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])

	status, body = doJSON(t, app, http.MethodGet, "/users", token, nil)
	require.Equal(t, http.StatusOK, status)
	users := body["users"].([]interface{})
	assert.Len(t, users, 2)
}

func TestLogoutRevokesAccess(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice@example.com")

	status, _ := doJSON(t, app, http.MethodGet, "/get-all-notes", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logout Successful", body["message"])

	status, _ = doJSON(t, app, http.MethodGet, "/get-all-notes", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/db"
	"github.com/terraincognita07/ovumcalc/internal/i18n"
	"golang.org/x/crypto/bcrypt"
)

const testSecretKey = "test-secret-key-with-at-least-32-chars"

var testNow = time.Date(2024, time.January, 20, 10, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "ovumcalc-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, testSecretKey, time.UTC, i18nManager)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }
	handler.profileService.WithHashCost(bcrypt.MinCost)

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, path string, payload any, token string) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload == nil {
		body = bytes.NewReader(nil)
	} else {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSONResponse[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	defer response.Body.Close()

	var payload T
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func createTestProfile(t *testing.T, app *fiber.App, payload map[string]any) tokenResponse {
	t.Helper()

	response := doJSONRequest(t, app, http.MethodPost, "/api/profiles", payload, "")
	if response.StatusCode != http.StatusCreated {
		defer response.Body.Close()
		t.Fatalf("expected status 201 creating profile, got %d (%s)", response.StatusCode, readAPIError(t, response.Body))
	}
	return decodeJSONResponse[tokenResponse](t, response)
}

func referenceInputs() map[string]any {
	return map[string]any{
		"last_period_start": "2024-01-01",
		"cycle_length":      28,
		"period_length":     5,
	}
}

func withFields(base map[string]any, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}

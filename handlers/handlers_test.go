package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"fleamarket_backend/config"
	"fleamarket_backend/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_txlock=immediate"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	app := fiber.New()
	handlers.RegisterRoutes(app, db)
	return app, db
}

// request performs a JSON request against the app and returns the status code
// and decoded body.
func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
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

	decoded := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates a user through the API and returns the access
// token, refresh token and user id.
func registerAndLogin(t *testing.T, app *fiber.App, username string) (string, string, uint) {
	t.Helper()

	code, _ := request(t, app, http.MethodPost, "/api/users", "", map[string]string{
		"username":   username,
		"email":      fmt.Sprintf("%s@example.com", username),
		"password":   "password123",
		"password2":  "password123",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := request(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, code)

	access, _ := body["access"].(string)
	refresh, _ := body["refresh"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	user := body["user"].(map[string]interface{})
	return access, refresh, uint(user["id"].(float64))
}

// createProduct lists a product through the API and returns its id.
func createProduct(t *testing.T, app *fiber.App, token, name, price string) uint {
	t.Helper()
	code, body := request(t, app, http.MethodPost, "/api/products", token, map[string]string{
		"name":  name,
		"price": price,
	})
	require.Equal(t, http.StatusCreated, code)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

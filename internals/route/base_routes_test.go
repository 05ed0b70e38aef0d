package routes_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routes "reflectify_backend/internals/route"
)

func health(t *testing.T, ping func(ctx context.Context) error) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	routes.BaseRoutes(app, ping, "test")

	res, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &body))
	return res.StatusCode, body
}

func TestHealthInMemory(t *testing.T) {
	status, body := health(t, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "In-memory", body["database"])
	assert.Equal(t, "test", body["environment"])
}

func TestHealthDatabaseDown(t *testing.T) {
	status, body := health(t, func(context.Context) error { return errors.New("connection refused") })
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "DOWN", body["status"])
	assert.Equal(t, "Database connection error", body["database"])
}

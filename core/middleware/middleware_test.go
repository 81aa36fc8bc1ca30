package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRayID(t *testing.T) {
	app := fiber.New()
	app.Use(RayID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RayIDKey).(string))
	})

	t.Run("Generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Len(t, resp.Header.Get(RayIDHeader), 36)
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RayIDHeader, "given-id")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "given-id", resp.Header.Get(RayIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	app := fiber.New()
	app.Use(RayID())
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadGateway, "upstream") })

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/bad", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(fiber.StatusNoContent), entries[0].ContextMap()["status"])
	assert.Equal(t, int64(fiber.StatusBadGateway), entries[1].ContextMap()["status"])
	assert.NotEmpty(t, entries[0].ContextMap()["ray_id"])
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(""))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightAllowsTrigger(t *testing.T) {
	app := fiber.New()
	app.Use(CORS("https://dashboard.example.com"))
	app.Post("/sync/trigger", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusAccepted) })

	req := httptest.NewRequest("OPTIONS", "/sync/trigger", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://dashboard.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

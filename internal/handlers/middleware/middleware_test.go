package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ywyher/survey/config"
)

func TestRequestLogger_PassesThrough(t *testing.T) {
	m := New(config.Config{AppName: "Survey"})

	app := fiber.New()
	app.Use(m.RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNoStore(t *testing.T) {
	m := New(config.Config{AppName: "Survey"})

	app := fiber.New()
	app.Use(m.NoStore())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("page") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestMetrics(t *testing.T) {
	m := New(config.Config{AppName: "Survey"})

	app := fiber.New()
	app.Use(m.Metrics())
	app.Get("/metrics", m.MetricsHandler())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendString("item") })

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `survey_http_requests_total{method="GET",route="/items/:id",status="200"} 2`)
	assert.Contains(t, string(body), "survey_http_request_duration_seconds")
}

func TestMetrics_LabelsSurviveRequestReuse(t *testing.T) {
	m := New(config.Config{AppName: "Survey"})

	app := fiber.New()
	app.Use(m.Metrics())
	app.Get("/metrics", m.MetricsHandler())
	app.Post("/items", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Delete("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	requests := []struct {
		method string
		path   string
	}{
		{method: "DELETE", path: "/items/a"},
		{method: "POST", path: "/items"},
		{method: "POST", path: "/items"},
		{method: "DELETE", path: "/items/b"},
		{method: "POST", path: "/items"},
	}

	for _, r := range requests {
		resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
		require.Less(t, resp.StatusCode, 300)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	metrics := string(body)
	assert.Contains(t, metrics, `survey_http_requests_total{method="DELETE",route="/items/:id",status="204"} 2`)
	assert.Contains(t, metrics, `survey_http_requests_total{method="POST",route="/items",status="201"} 3`)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ywyher/survey/internal/app"
	"github.com/ywyher/survey/internal/handlers/middleware"
	"github.com/ywyher/survey/internal/logger"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.RequestLogger())
	router.Use(app.Middleware.Metrics())
	router.Get("/metrics", app.Middleware.MetricsHandler())

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewResponseHandler(*app, api).Register()

	NewPageHandler(*app, router).Register()

	return nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ywyher/survey/config"
)

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"name":        config.AppName,
			"environment": config.Environment,
		})
	})
}

package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ywyher/survey/internal/app"
	"github.com/ywyher/survey/internal/logger"
)

const msgUnexpected = "Something went wrong. Please try again."

// NewServer builds the fiber app with views, error pages and every route.
func NewServer(app *app.App) (*fiber.App, error) {
	log := logger.New("handlers").File("server").Function("NewServer")

	engine, err := newViewEngine()
	if err != nil {
		return nil, log.Err("failed to create view engine", err)
	}

	server := fiber.New(fiber.Config{
		AppName:               app.Config.AppName,
		Views:                 engine,
		ErrorHandler:          errorHandler(app.Config.AppName),
		DisableStartupMessage: true,
	})
	server.Use(recover.New())

	if err := Router(server, app); err != nil {
		return nil, log.Err("failed to register routes", err)
	}

	return server, nil
}

// errorHandler answers JSON under /api and an error page everywhere else.
// Errors that are not *fiber.Error get a generic retry message.
func errorHandler(appName string) fiber.ErrorHandler {
	log := logger.New("handlers").File("server").Function("errorHandler")

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := msgUnexpected

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.Er("unhandled request error", err, "path", c.Path())
		}

		if strings.HasPrefix(c.Path(), "/api") {
			return c.Status(code).JSON(fiber.Map{"message": "error", "error": message})
		}

		renderErr := c.Status(code).Render("error", fiber.Map{
			"Title":   "Error",
			"AppName": appName,
			"Status":  code,
			"Message": message,
		}, mainLayout)
		if renderErr != nil {
			log.Er("failed to render error page", renderErr)
			return c.Status(code).SendString(message)
		}

		return nil
	}
}

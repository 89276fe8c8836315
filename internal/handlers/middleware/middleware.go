package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ywyher/survey/config"
	"github.com/ywyher/survey/internal/logger"
)

type Middleware struct {
	Config  config.Config
	metrics *Metrics
	log     logger.Logger
}

func New(config config.Config) Middleware {
	return Middleware{
		Config:  config,
		metrics: newMetrics(),
		log:     logger.New("middleware"),
	}
}

// RequestLogger logs one line per request once the handler chain returns.
// Health checks log at debug.
func (m Middleware) RequestLogger() fiber.Handler {
	log := m.log.Function("RequestLogger")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		args := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		}

		switch {
		case strings.HasSuffix(c.Path(), "/health"):
			log.Debug("request", args...)
		case err != nil || status >= fiber.StatusInternalServerError:
			log.Warn("request", append(args, "error", err)...)
		default:
			log.Info("request", args...)
		}

		return err
	}
}

// NoStore keeps browsers from serving a stale page after a write, so every
// visit re-fetches the list.
func (m Middleware) NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}

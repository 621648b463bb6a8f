package serverutils

import (
	"time"

	"course-advisor-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one access log line per request.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": ctx.Locals("requestid"),
		}
		if ctx.Response().StatusCode() >= fiber.StatusInternalServerError {
			log.Warn("HTTP", "request failed", details)
		} else {
			log.Debug("HTTP", "request", details)
		}
		return err
	}
}

package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/middlewares/logger"
	"reflectify_backend/internals/services/reporting"
)

// SetupMiddlewares: recover paling luar, lalu access log, CORS, limiter.
func SetupMiddlewares(app *fiber.App, reporter *reporting.Reporter) {
	app.Use(RecoveryMiddleware(reporter))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}

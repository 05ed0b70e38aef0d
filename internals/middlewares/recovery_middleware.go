package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"reflectify_backend/internals/configs"
	"reflectify_backend/internals/services/reporting"
)

// RecoveryMiddleware: panic jadi 500 lewat ErrorHandler; panic juga
// dikirim ke Rollbar bersama method + path.
func RecoveryMiddleware(reporter *reporting.Reporter) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			extras := map[string]interface{}{
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.Locals("reqid"),
			}
			if configs.IsDevelopment() {
				extras["query"] = string(c.Request().URI().QueryString())
			}
			reporter.Error("panic", fmt.Errorf("%v", e), extras)
		},
	})
}

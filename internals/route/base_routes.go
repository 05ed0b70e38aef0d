package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// BaseRoutes: / dan /health. ping nil = mode tanpa database.
func BaseRoutes(app *fiber.App, ping func(ctx context.Context) error, env string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Reflectify API 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				dbStatus = "Database connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		} else {
			dbStatus = "In-memory"
		}

		uptime := time.Since(startTime).Seconds()

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(uptime),
			"environment":    env,
		})
	})
}

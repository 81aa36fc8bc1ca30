package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows cross-origin calls from the given comma separated origins.
// POST is allowed so a dashboard can trigger a pass.
func CORS(origins string) fiber.Handler {
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,HEAD,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + RayIDHeader,
	})
}

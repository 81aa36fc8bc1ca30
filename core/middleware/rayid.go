package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RayIDHeader carries the request ID on requests and responses.
	RayIDHeader = "X-Ray-ID"
	// RayIDKey is the fiber locals key holding the request ID.
	RayIDKey = "ray_id"
)

// RayID assigns every request an ID, reusing the caller's when present.
func RayID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RayIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(RayIDKey, rid)
		c.Set(RayIDHeader, rid)
		return c.Next()
	}
}

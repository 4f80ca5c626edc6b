package middleware

import (
	"log/slog"

	"catalog/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// RequestContext attaches a logger tagged with the request id to the user context.
// It must run after the requestid middleware.
func RequestContext(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := base.With("method", c.Method(), "path", c.Path())
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			l = l.With("request_id", rid)
		}
		c.SetUserContext(logging.IntoContext(c.UserContext(), l))
		return c.Next()
	}
}

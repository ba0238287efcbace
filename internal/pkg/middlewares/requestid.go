package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/pkg/flog"
)

func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(constant.LocalsRequestIDKey, id.String())
		}
		return c.Next()
	}
}

package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"roadwatch.dev/backend/internal/app/appconfig"
	"roadwatch.dev/backend/internal/pkg/rwerr"
)

// AdminKeyAuth guards operational endpoints with a static bearer key.
// When no key is configured, every request is rejected.
func AdminKeyAuth(conf *appconfig.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if conf.AdminKey == "" {
			return rwerr.ErrUnauthorized.Msg("admin endpoints are disabled")
		}

		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if token == "" {
			return rwerr.ErrUnauthorized.Msg("missing admin key")
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(conf.AdminKey)) != 1 {
			return rwerr.ErrUnauthorized.Msg("invalid admin key")
		}

		return c.Next()
	}
}

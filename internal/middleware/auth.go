package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shoplite/shoplite/internal/auth"
)

// Locals keys populated by RequireAuth.
const (
	ClaimsLocal  = "session_claims"
	SubjectLocal = "subject_id"
)

// unauthorizedMessage is the single client-visible text for every
// authentication failure. Missing, malformed, invalid and expired credentials
// must be indistinguishable to callers; the internal kind is logged only.
const unauthorizedMessage = "Unauthorized"

// RequireAuth returns a middleware that authenticates the request through the
// gateway and stores the verified claims in the request locals.
func RequireAuth(gw *auth.Gateway, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := gw.Authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if logger != nil {
				logger.Debug("request authentication failed",
					slog.String("reason", err.Error()),
					slog.String("path", c.Path()),
				)
			}
			return fiber.NewError(http.StatusUnauthorized, unauthorizedMessage)
		}

		c.Locals(ClaimsLocal, claims)
		c.Locals(SubjectLocal, claims.SubjectID())
		return c.Next()
	}
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shoplite/shoplite/internal/user"
)

// RegisterAuthRoutes wires the signup/signin/me endpoints.
func RegisterAuthRoutes(r fiber.Router, h *user.Handler, requireAuth fiber.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")

	group.Post("/signup", h.Signup)
	if rateLimiter != nil {
		group.Post("/signin", rateLimiter, h.Signin)
	} else {
		group.Post("/signin", h.Signin)
	}
	group.Get("/me", requireAuth, h.Me)

	// Wrong-verb fallbacks
	group.All("/signup", methodNotAllowed)
	group.All("/signin", methodNotAllowed)
	group.All("/me", methodNotAllowed)
}

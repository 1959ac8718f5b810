package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shoplite/shoplite/internal/product"
)

// RegisterProductRoutes wires the token-gated catalog endpoint.
func RegisterProductRoutes(r fiber.Router, h *product.Handler, requireAuth fiber.Handler) {
	r.Get("/products", requireAuth, h.List)
	r.All("/products", methodNotAllowed)
}

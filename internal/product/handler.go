package product

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog endpoint.
type Handler struct{}

// NewHandler constructs a product HTTP handler.
func NewHandler() *Handler {
	return &Handler{}
}

// List returns the catalog. Authentication happens upstream in middleware;
// this handler never touches persistence.
func (h *Handler) List(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(Catalog())
}

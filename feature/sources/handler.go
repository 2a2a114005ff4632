package sources

import (
	"transit-manager/core/resolver"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for sources.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sources routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/sources", h.HandleListSources)
}

// HandleListSources lists the registered collaborators.
// @Summary List Sources
// @Description List the collaborators registered on the resolver, in query order.
// @Tags sources
// @Produce json
// @Param role query string false "stop_getter, stop_setter, stop_deleter, bus_getter, bus_setter or bus_deleter"
// @Success 200 {object} Report "Sources"
// @Router /sources [get]
func (h *Handler) HandleListSources(c *fiber.Ctx) error {
	return c.JSON(h.service.Report(resolver.Role(c.Query("role"))))
}

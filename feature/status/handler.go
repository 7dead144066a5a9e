package status

import (
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for status checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/status", h.HandleGetStatus)
}

// HandleGetStatus reports dependency reachability.
// @Summary Get service status
// @Description Probes the database, CRM configuration and archive bucket.
// @Tags status
// @Produce json
// @Success 200 {object} Report "Status report"
// @Router /status [get]
func (h *Handler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Check(c.Context()))
}

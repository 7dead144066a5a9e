package sync

import (
	"bytes"
	"encoding/json"
	"fmt"

	"hubspot-bridge/core/logger"
	"hubspot-bridge/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync operations.
type Handler struct {
	service *Service
	archive *PayloadArchive
}

// NewHandler creates a new HTTP handler. The archive may be nil when
// payload archiving is disabled.
func NewHandler(service *Service, archive *PayloadArchive) *Handler {
	return &Handler{service: service, archive: archive}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/webhook", h.HandleWebhook)
	group.Post("/batch", h.HandleBatch)
}

// HandleWebhook processes one or more CRM entity payloads.
// @Summary Process webhook payloads
// @Description Accepts a single JSON object or an array of objects and syncs each entity.
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int "Processed count"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /sync/webhook [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	body := c.Body()

	if h.archive != nil {
		rayID, _ := c.Locals(rayid.LocalsKey).(string)
		h.archive.Store(c.Context(), rayID, body)
	}

	payloads, err := decodePayloads(body)
	if err != nil {
		l.Warn("Rejecting webhook body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	processed, err := h.service.ProcessPayloads(c.Context(), payloads)
	if err != nil {
		l.Error("Webhook processing failed", zap.Error(err), zap.Int("processed", processed))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"received":  len(payloads),
		"processed": processed,
	})
}

// HandleBatch runs a full paginated sweep over both CRM collections.
// @Summary Run a full sync sweep
// @Description Pages through CRM companies and contacts and syncs every record.
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Sweep completed"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /sync/batch [post]
func (h *Handler) HandleBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.SyncAll(c.Context()); err != nil {
		l.Error("Batch sweep failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "completed",
	})
}

// decodePayloads accepts a single JSON object or an array of objects.
// Numbers are kept as json.Number so large record ids survive without
// exponent formatting.
func decodePayloads(body []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	switch trimmed[0] {
	case '{':
		var payload map[string]any
		if err := dec.Decode(&payload); err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
		return []map[string]any{payload}, nil
	case '[':
		var payloads []map[string]any
		if err := dec.Decode(&payloads); err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}
		return payloads, nil
	default:
		return nil, fmt.Errorf("unsupported payload shape, expected object or array")
	}
}

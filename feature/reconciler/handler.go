package reconciler

import (
	"card-sync/core/logger"
	"card-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Scheduler is the part of the reconcile scheduler the HTTP feature needs.
type Scheduler interface {
	Status() reconcile.Status
	Trigger()
}

// Handler handles HTTP requests for the sync loop.
type Handler struct {
	scheduler Scheduler
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(scheduler Scheduler, logger *zap.Logger) *Handler {
	return &Handler{scheduler: scheduler, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleGetStatus)
	group.Post("/trigger", h.HandleTrigger)
}

// HandleGetStatus returns the outcome of the most recent reconciliation pass.
// @Summary Sync Status
// @Description Last pass time, plan summary, write outcome and last error.
// @Tags sync
// @Produce json
// @Success 200 {object} reconcile.Status "Status"
// @Router /sync/status [get]
func (h *Handler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(h.scheduler.Status())
}

// HandleTrigger queues an extra pass.
// @Summary Trigger Sync
// @Description Queues a reconciliation pass to run as soon as the current one, if any, ends.
// @Tags sync
// @Produce json
// @Success 202 {object} map[string]string "Accepted"
// @Router /sync/trigger [post]
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	h.scheduler.Trigger()
	logger.WithRayID(h.logger, c).Info("Sync pass requested")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "queued"})
}

package cards

import (
	"net/http"
	"time"

	"card-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RefreshedHeader carries the refresh time of the served snapshot.
const RefreshedHeader = "X-Cards-Refreshed-At"

// Handler handles HTTP requests for cards.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the cards routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/cards", h.HandleGetCards)
}

// HandleGetCards returns the card snapshot as a JSON array.
// @Summary List Cards
// @Description Returns every non-archived board card. Served from a cache refreshed at most once per TTL.
// @Tags cards
// @Produce json
// @Success 200 {array} reconcile.Card "Cards"
// @Failure 502 {object} map[string]string "Board unavailable and no snapshot cached"
// @Router /cards [get]
func (h *Handler) HandleGetCards(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cards, refreshed, err := h.service.Cards(c.UserContext())
	if err != nil {
		l.Error("Card snapshot unavailable", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if !refreshed.IsZero() {
		c.Set(RefreshedHeader, refreshed.UTC().Format(time.RFC3339))
	}
	return c.JSON(cards)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stripledger/internal/log"
	"stripledger/internal/repos"
	"stripledger/internal/services"
)

type DashboardHandler struct {
	Dash *repos.DashboardRepo
	Recs *services.RecommendationService
}

// Stats handles GET /dashboard.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Dash.Stats()
	if err != nil {
		return fail(c, "dashboard.stats.fail", err)
	}
	return c.JSON(stats)
}

// GetMargin handles GET /settings/margin for the logged-in user.
func (h *DashboardHandler) GetMargin(c *fiber.Ctx) error {
	margin := h.Recs.TargetMargin(userID(c), nil)
	return c.JSON(fiber.Map{"targetMarginPercent": margin})
}

type marginRequest struct {
	TargetMarginPercent float64 `json:"targetMarginPercent"`
}

// PutMargin handles PUT /settings/margin.
func (h *DashboardHandler) PutMargin(c *fiber.Ctx) error {
	var req marginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if err := h.Recs.SaveMargin(userID(c), req.TargetMarginPercent); err != nil {
		return fail(c, "settings.margin.fail", err)
	}
	applog.Audit(c, "settings.margin", map[string]any{"margin": req.TargetMarginPercent})
	return c.JSON(fiber.Map{"targetMarginPercent": req.TargetMarginPercent})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stripledger/internal/log"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type OfferHandler struct {
	Offers *services.OfferService
}

type offerRequest struct {
	Tiers              []services.TierInput `json:"tiers"`
	DingReductionPrice *float64             `json:"dingReductionPrice"`
	DamagedPrice       *float64             `json:"damagedPrice"`
}

// Upsert handles PUT /products/:id/offers/:buyerId — create or update one
// buyer's price sheet for one product.
func (h *OfferHandler) Upsert(c *fiber.Ctx) error {
	productID, ok1 := validate.ID(c.Params("id"))
	buyerID, ok2 := validate.ID(c.Params("buyerId"))
	if !ok1 || !ok2 {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	o, err := h.Offers.Upsert(buyerID, productID, req.Tiers, req.DingReductionPrice, req.DamagedPrice)
	if err != nil {
		return fail(c, "offers.upsert.fail", err)
	}
	applog.Audit(c, "offers.upsert", map[string]any{"buyer_id": buyerID, "product_id": productID})
	return c.JSON(o)
}

// ListByProduct handles GET /products/:id/offers.
func (h *OfferHandler) ListByProduct(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	rows, err := h.Offers.ListByProduct(productID)
	if err != nil {
		return fail(c, "offers.list.fail", err)
	}
	return c.JSON(rows)
}

func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	productID, ok1 := validate.ID(c.Params("id"))
	buyerID, ok2 := validate.ID(c.Params("buyerId"))
	if !ok1 || !ok2 {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Offers.Delete(buyerID, productID); err != nil {
		return fail(c, "offers.delete.fail", err)
	}
	applog.Audit(c, "offers.delete", map[string]any{"buyer_id": buyerID, "product_id": productID})
	return c.JSON(fiber.Map{"ok": true})
}

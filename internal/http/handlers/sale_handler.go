package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stripledger/internal/log"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type SaleHandler struct {
	Sales *services.SaleService
}

type saleRequest struct {
	BuyerID  string                   `json:"buyerId"`
	SaleDate string                   `json:"saleDate"`
	Notes    string                   `json:"notes"`
	Items    []services.LineItemInput `json:"items"`
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	if buyerID := c.Query("buyerId"); buyerID != "" {
		out, err := h.Sales.ListByBuyer(buyerID)
		if err != nil {
			return fail(c, "sales.list.fail", err)
		}
		return c.JSON(out)
	}
	page, pageSize := pageParams(c)
	out, err := h.Sales.ListLatest(page, pageSize)
	if err != nil {
		return fail(c, "sales.list.fail", err)
	}
	return c.JSON(out)
}

func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	s, items, err := h.Sales.Get(id)
	if err != nil {
		return fail(c, "sales.get.fail", err)
	}
	return c.JSON(fiber.Map{"sale": s, "items": items})
}

func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, ok := validate.ID(req.BuyerID); !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid buyer id")
	}
	s, err := h.Sales.Create(req.BuyerID, req.SaleDate, req.Notes, req.Items)
	if err != nil {
		return fail(c, "sales.create.fail", err)
	}
	applog.Audit(c, "sales.create", map[string]any{
		"sale_id": s.ID, "revenue": s.TotalRevenue, "profit": s.Profit,
	})
	return c.Status(fiber.StatusCreated).JSON(s)
}

type saleStatusRequest struct {
	Status string `json:"status"`
}

func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	var req saleStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if err := h.Sales.UpdateStatus(id, req.Status); err != nil {
		return fail(c, "sales.status.fail", err)
	}
	applog.Audit(c, "sales.status", map[string]any{"sale_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Sales.Deactivate(id); err != nil {
		return fail(c, "sales.delete.fail", err)
	}
	applog.Audit(c, "sales.delete", map[string]any{"sale_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

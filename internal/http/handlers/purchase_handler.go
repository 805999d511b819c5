package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stripledger/internal/log"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
}

type purchaseRequest struct {
	CustomerID   string                   `json:"customerId"`
	PurchaseDate string                   `json:"purchaseDate"`
	Notes        string                   `json:"notes"`
	Items        []services.LineItemInput `json:"items"`
}

func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	if custID := c.Query("customerId"); custID != "" {
		out, err := h.Purchases.ListByCustomer(custID)
		if err != nil {
			return fail(c, "purchases.list.fail", err)
		}
		return c.JSON(out)
	}
	page, pageSize := pageParams(c)
	out, err := h.Purchases.ListLatest(page, pageSize)
	if err != nil {
		return fail(c, "purchases.list.fail", err)
	}
	return c.JSON(out)
}

func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	p, items, err := h.Purchases.Get(id)
	if err != nil {
		return fail(c, "purchases.get.fail", err)
	}
	return c.JSON(fiber.Map{"purchase": p, "items": items})
}

func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, ok := validate.ID(req.CustomerID); !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid customer id")
	}
	p, err := h.Purchases.Create(req.CustomerID, req.PurchaseDate, req.Notes, req.Items)
	if err != nil {
		return fail(c, "purchases.create.fail", err)
	}
	applog.Audit(c, "purchases.create", map[string]any{"purchase_id": p.ID, "total": p.Total})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, ok := validate.ID(req.CustomerID); !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid customer id")
	}
	if err := h.Purchases.Update(id, req.CustomerID, req.PurchaseDate, req.Notes, req.Items); err != nil {
		return fail(c, "purchases.update.fail", err)
	}
	applog.Audit(c, "purchases.update", map[string]any{"purchase_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Purchases.Deactivate(id); err != nil {
		return fail(c, "purchases.delete.fail", err)
	}
	applog.Audit(c, "purchases.delete", map[string]any{"purchase_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stripledger/internal/domain"
	applog "stripledger/internal/log"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type BuyerHandler struct {
	Buyers *services.BuyerService
	Offers *services.OfferService
}

type buyerRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	IsPreferred bool   `json:"isPreferred"`
	Notes       string `json:"notes"`
}

func (r *buyerRequest) validate() (domain.Buyer, bool) {
	name, ok1 := validate.Name(r.Name)
	phone, ok2 := validate.Phone(r.Phone)
	if !(ok1 && ok2) {
		return domain.Buyer{}, false
	}
	if r.Email != "" {
		if _, ok := validate.Email(r.Email); !ok {
			return domain.Buyer{}, false
		}
	}
	return domain.Buyer{
		Name: name, ContactName: r.ContactName, Phone: phone, Email: r.Email,
		Website: r.Website, IsPreferred: r.IsPreferred, Notes: r.Notes,
	}, true
}

func (h *BuyerHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	out, err := h.Buyers.List(c.Query("q"), page, pageSize)
	if err != nil {
		return fail(c, "buyers.list.fail", err)
	}
	if out == nil {
		out = []domain.Buyer{}
	}
	return c.JSON(out)
}

func (h *BuyerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	b, err := h.Buyers.Get(id)
	if err != nil {
		return fail(c, "buyers.get.fail", err)
	}
	return c.JSON(b)
}

func (h *BuyerHandler) Create(c *fiber.Ctx) error {
	var req buyerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	b, ok := req.validate()
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid buyer fields")
	}
	created, err := h.Buyers.Create(b)
	if err != nil {
		return fail(c, "buyers.create.fail", err)
	}
	applog.Audit(c, "buyers.create", map[string]any{"buyer_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *BuyerHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	var req buyerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	b, okReq := req.validate()
	if !okReq {
		return jsonErr(c, fiber.StatusBadRequest, "invalid buyer fields")
	}
	b.ID = id
	if err := h.Buyers.Update(b); err != nil {
		return fail(c, "buyers.update.fail", err)
	}
	applog.Audit(c, "buyers.update", map[string]any{"buyer_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *BuyerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Buyers.Deactivate(id); err != nil {
		return fail(c, "buyers.delete.fail", err)
	}
	applog.Audit(c, "buyers.delete", map[string]any{"buyer_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// ListOffers lists one buyer's full price sheet across products.
func (h *BuyerHandler) ListOffers(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	rows, err := h.Offers.ListByBuyer(id)
	if err != nil {
		return fail(c, "buyers.offers.fail", err)
	}
	return c.JSON(rows)
}

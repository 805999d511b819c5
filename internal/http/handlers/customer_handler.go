package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stripledger/internal/domain"
	applog "stripledger/internal/log"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

type customerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Notes     string `json:"notes"`
}

func (r *customerRequest) validate() (domain.Customer, bool) {
	first, ok1 := validate.Name(r.FirstName)
	last, ok2 := validate.Name(r.LastName)
	phone, ok3 := validate.Phone(r.Phone)
	state, ok4 := validate.State(r.State)
	zip, ok5 := validate.Zip(r.Zip)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return domain.Customer{}, false
	}
	if r.Email != "" {
		if _, ok := validate.Email(r.Email); !ok {
			return domain.Customer{}, false
		}
	}
	return domain.Customer{
		FirstName: first, LastName: last, Phone: phone, Email: r.Email,
		Street: r.Street, City: r.City, State: state, Zip: zip, Notes: r.Notes,
	}, true
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	out, err := h.Customers.List(c.Query("q"), page, pageSize)
	if err != nil {
		return fail(c, "customers.list.fail", err)
	}
	if out == nil {
		out = []domain.Customer{}
	}
	return c.JSON(out)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	cust, err := h.Customers.Get(id)
	if err != nil {
		return fail(c, "customers.get.fail", err)
	}
	return c.JSON(cust)
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	cust, ok := req.validate()
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"entity": "customer"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid customer fields")
	}
	created, err := h.Customers.Create(cust)
	if err != nil {
		return fail(c, "customers.create.fail", err)
	}
	applog.Audit(c, "customers.create", map[string]any{"customer_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	cust, okReq := req.validate()
	if !okReq {
		return jsonErr(c, fiber.StatusBadRequest, "invalid customer fields")
	}
	cust.ID = id
	if err := h.Customers.Update(cust); err != nil {
		return fail(c, "customers.update.fail", err)
	}
	applog.Audit(c, "customers.update", map[string]any{"customer_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Customers.Deactivate(id); err != nil {
		return fail(c, "customers.delete.fail", err)
	}
	applog.Audit(c, "customers.delete", map[string]any{"customer_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

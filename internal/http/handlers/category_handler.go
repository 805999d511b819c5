package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stripledger/internal/domain"
	applog "stripledger/internal/log"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type categoryRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	tree, err := h.Catalog.CategoryTree()
	if err != nil {
		return fail(c, "categories.list.fail", err)
	}
	return c.JSON(tree)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid category name")
	}
	if req.ParentID != nil {
		if _, ok := validate.ID(*req.ParentID); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid parent id")
		}
	}
	created, err := h.Catalog.CreateCategory(name, req.ParentID)
	if err != nil {
		return fail(c, "categories.create.fail", err)
	}
	applog.Audit(c, "categories.create", map[string]any{"category_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	name, okName := validate.Name(req.Name)
	if !okName {
		return jsonErr(c, fiber.StatusBadRequest, "invalid category name")
	}
	if err := h.Catalog.UpdateCategory(domain.Category{ID: id, Name: name, ParentID: req.ParentID}); err != nil {
		return fail(c, "categories.update.fail", err)
	}
	applog.Audit(c, "categories.update", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Catalog.DeactivateCategory(id); err != nil {
		return fail(c, "categories.delete.fail", err)
	}
	applog.Audit(c, "categories.delete", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

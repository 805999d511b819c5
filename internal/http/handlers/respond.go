package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "stripledger/internal/log"
	"stripledger/internal/services"
)

func jsonErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// fail maps service and store errors onto HTTP statuses: missing rows to
// 404, validation sentinels to 400, uniqueness conflicts to 409.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return jsonErr(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrNoItems),
		errors.Is(err, services.ErrBadQuantity),
		errors.Is(err, services.ErrBadPrice),
		errors.Is(err, services.ErrBadMargin),
		errors.Is(err, services.ErrBadStatus),
		errors.Is(err, services.ErrHasChildren),
		errors.Is(err, services.ErrTooManyTiers):
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return jsonErr(c, fiber.StatusConflict, "already exists")
	}
	applog.Error(c, action, err, nil)
	return jsonErr(c, fiber.StatusInternalServerError, "internal error")
}

func pageParams(c *fiber.Ctx) (page, pageSize int) {
	return c.QueryInt("page", 1), c.QueryInt("pageSize", 25)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stripledger/internal/log"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	email, ok := validate.Email(req.Email)
	if !ok || !validate.Password(req.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	u, pair, err := h.Auth.Login(email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"user": u, "accessToken": pair.AccessToken, "refreshToken": pair.RefreshToken})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	access, err := h.Auth.Refresh(req.RefreshToken)
	if err != nil {
		log.Security(c, "auth.refresh.fail", nil)
		return jsonErr(c, fiber.StatusUnauthorized, "invalid refresh token")
	}
	return c.JSON(fiber.Map{"accessToken": access})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, _ := c.Locals("claims").(*services.Claims)
	if claims == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "missing bearer token")
	}
	u, err := h.Auth.CurrentUser(claims)
	if err != nil {
		return fail(c, "auth.me.fail", err)
	}
	return c.JSON(u)
}

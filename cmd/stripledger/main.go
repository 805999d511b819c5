package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stripledger/internal/config"
	"stripledger/internal/http/handlers"
	applog "stripledger/internal/log"
	"stripledger/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and return a generic message; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, cfg.JWTSecret)

	// ---------- Routes ----------
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")

	// Auth (login throttled)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	api.Post("/auth/refresh", deps.AuthHandler.Refresh)

	// Everything below requires a valid access token
	priv := api.Group("", handlers.RequireUser(deps.Auth))
	priv.Get("/auth/me", deps.AuthHandler.Me)

	priv.Get("/customers", deps.CustomerHandler.List)
	priv.Post("/customers", deps.CustomerHandler.Create)
	priv.Get("/customers/:id", deps.CustomerHandler.Get)
	priv.Put("/customers/:id", deps.CustomerHandler.Update)

	priv.Get("/buyers", deps.BuyerHandler.List)
	priv.Post("/buyers", deps.BuyerHandler.Create)
	priv.Get("/buyers/:id", deps.BuyerHandler.Get)
	priv.Put("/buyers/:id", deps.BuyerHandler.Update)
	priv.Get("/buyers/:id/offers", deps.BuyerHandler.ListOffers)

	priv.Get("/categories", deps.CategoryHandler.Tree)
	priv.Post("/categories", deps.CategoryHandler.Create)
	priv.Put("/categories/:id", deps.CategoryHandler.Update)

	priv.Get("/products", deps.ProductHandler.List)
	priv.Get("/products/search", deps.ProductHandler.Search)
	priv.Post("/products", deps.ProductHandler.Create)
	priv.Get("/products/:id", deps.ProductHandler.Get)
	priv.Put("/products/:id", deps.ProductHandler.Update)
	priv.Post("/products/:id/reactivate", deps.ProductHandler.Reactivate)
	priv.Get("/products/:id/cost", deps.ProductHandler.Cost)
	priv.Get("/products/:id/recommendations", deps.ProductHandler.Recommendations)
	priv.Get("/products/:id/offers", deps.OfferHandler.ListByProduct)
	priv.Put("/products/:id/offers/:buyerId", deps.OfferHandler.Upsert)

	priv.Get("/purchases", deps.PurchaseHandler.List)
	priv.Post("/purchases", deps.PurchaseHandler.Create)
	priv.Get("/purchases/:id", deps.PurchaseHandler.Get)
	priv.Put("/purchases/:id", deps.PurchaseHandler.Update)

	priv.Get("/sales", deps.SaleHandler.List)
	priv.Post("/sales", deps.SaleHandler.Create)
	priv.Get("/sales/:id", deps.SaleHandler.Get)
	priv.Patch("/sales/:id/status", deps.SaleHandler.UpdateStatus)

	priv.Get("/dashboard", deps.DashboardHandler.Stats)
	priv.Get("/settings/margin", deps.DashboardHandler.GetMargin)
	priv.Put("/settings/margin", deps.DashboardHandler.PutMargin)

	// Destructive routes are admin-only (soft deletes; history survives)
	admin := priv.Group("", handlers.RequireAdmin())
	admin.Delete("/customers/:id", deps.CustomerHandler.Delete)
	admin.Delete("/buyers/:id", deps.BuyerHandler.Delete)
	admin.Delete("/categories/:id", deps.CategoryHandler.Delete)
	admin.Delete("/products/:id", deps.ProductHandler.Delete)
	admin.Delete("/products/:id/offers/:buyerId", deps.OfferHandler.Delete)
	admin.Delete("/purchases/:id", deps.PurchaseHandler.Delete)
	admin.Delete("/sales/:id", deps.SaleHandler.Delete)

	// 404 for everything else
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stripledger/internal/http/handlers"
	"stripledger/internal/repos"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db, testSecret)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Post("/auth/refresh", deps.AuthHandler.Refresh)

	priv := api.Group("", handlers.RequireUser(deps.Auth))
	priv.Get("/auth/me", deps.AuthHandler.Me)
	priv.Get("/products", deps.ProductHandler.List)
	priv.Post("/products", deps.ProductHandler.Create)
	priv.Get("/products/:id/cost", deps.ProductHandler.Cost)
	priv.Get("/products/:id/recommendations", deps.ProductHandler.Recommendations)
	priv.Put("/products/:id/offers/:buyerId", deps.OfferHandler.Upsert)
	priv.Post("/customers", deps.CustomerHandler.Create)
	priv.Post("/buyers", deps.BuyerHandler.Create)
	priv.Post("/purchases", deps.PurchaseHandler.Create)

	admin := priv.Group("", handlers.RequireAdmin())
	admin.Delete("/products/:id", deps.ProductHandler.Delete)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func login(t *testing.T, app *fiber.App, email string) (access string) {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "Passw0rd!",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("login %s: status %d body %v", email, resp.StatusCode, body)
	}
	access, _ = body["accessToken"].(string)
	if access == "" {
		t.Fatal("no access token")
	}
	return access
}

func TestLoginAndBearerFlow(t *testing.T) {
	app, _ := newTestApp(t)

	// bad creds -> 401, same message either way
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "clerk@stripledger.test", "password": "WrongPass1",
	})
	if resp.StatusCode != 401 {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}

	access := login(t, app, "clerk@stripledger.test")

	// protected route without token -> 401
	resp, _ = doJSON(t, app, "GET", "/api/v1/auth/me", "", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("want 401 without token, got %d", resp.StatusCode)
	}

	// with token -> 200 and the right user
	resp, body := doJSON(t, app, "GET", "/api/v1/auth/me", access, nil)
	if resp.StatusCode != 200 || body["email"] != "clerk@stripledger.test" {
		t.Fatalf("me failed: %d %v", resp.StatusCode, body)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	app, _ := newTestApp(t)
	access := login(t, app, "clerk@stripledger.test")

	// an access token is not a refresh token
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/refresh", "", map[string]string{
		"refreshToken": access,
	})
	if resp.StatusCode != 401 {
		t.Fatalf("want 401 refreshing with access token, got %d", resp.StatusCode)
	}
}

func TestAdminOnlyDelete(t *testing.T) {
	app, db := newTestApp(t)
	userTok := login(t, app, "clerk@stripledger.test")
	adminTok := login(t, app, "admin@stripledger.test")

	resp, created := doJSON(t, app, "POST", "/api/v1/products", userTok, map[string]any{
		"name": "FreeStyle Lite 100ct", "brand": "FreeStyle", "model": "Lite",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("create product: %d %v", resp.StatusCode, created)
	}
	id := created["id"].(string)

	// regular user cannot delete
	resp, _ = doJSON(t, app, "DELETE", "/api/v1/products/"+id, userTok, nil)
	if resp.StatusCode != 403 {
		t.Fatalf("want 403 for non-admin delete, got %d", resp.StatusCode)
	}
	// admin can
	resp, _ = doJSON(t, app, "DELETE", "/api/v1/products/"+id, adminTok, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200 for admin delete, got %d", resp.StatusCode)
	}
	// soft delete: row survives, flagged inactive
	var active bool
	if err := db.Get(&active, `SELECT active FROM products WHERE id=?`, id); err != nil {
		t.Fatalf("deleted product row gone: %v", err)
	}
	if active {
		t.Fatal("product still active after delete")
	}
}

package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func seedPricingFixtures(t *testing.T, app *fiber.App, token string) (productID string) {
	t.Helper()
	resp, prod := doJSON(t, app, "POST", "/api/v1/products", token, map[string]any{
		"name": "OneTouch Ultra 100ct", "brand": "OneTouch", "model": "Ultra",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("create product: %d %v", resp.StatusCode, prod)
	}
	productID = prod["id"].(string)

	resp, bx := doJSON(t, app, "POST", "/api/v1/buyers", token, map[string]any{"name": "Buyer X"})
	if resp.StatusCode != 201 {
		t.Fatalf("create buyer x: %d %v", resp.StatusCode, bx)
	}
	resp, by := doJSON(t, app, "POST", "/api/v1/buyers", token, map[string]any{"name": "Buyer Y", "isPreferred": true})
	if resp.StatusCode != 201 {
		t.Fatalf("create buyer y: %d %v", resp.StatusCode, by)
	}

	// Buyer X: tier1 $60; Buyer Y: tier1 $62 (preferred, but price decides)
	resp, body := doJSON(t, app, "PUT", "/api/v1/products/"+productID+"/offers/"+bx["id"].(string), token, map[string]any{
		"tiers": []map[string]any{{"label": "Mint 12/26+", "price": 60}},
	})
	if resp.StatusCode != 200 {
		t.Fatalf("upsert offer x: %d %v", resp.StatusCode, body)
	}
	resp, body = doJSON(t, app, "PUT", "/api/v1/products/"+productID+"/offers/"+by["id"].(string), token, map[string]any{
		"tiers": []map[string]any{{"label": "Mint 12/26+", "price": 62}},
	})
	if resp.StatusCode != 200 {
		t.Fatalf("upsert offer y: %d %v", resp.StatusCode, body)
	}
	return productID
}

func TestRecommendationEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "clerk@stripledger.test")
	productID := seedPricingFixtures(t, app, token)

	// default margin 20: best 62 -> ceiling 62/1.2 = 51.67 rounded for display
	resp, body := doJSON(t, app, "GET", "/api/v1/products/"+productID+"/recommendations", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("recommendations: %d %v", resp.StatusCode, body)
	}
	if body["targetMarginPercent"].(float64) != 20 {
		t.Fatalf("want default margin 20, got %v", body["targetMarginPercent"])
	}
	recs := body["recommendations"].([]any)
	if len(recs) != 1 {
		t.Fatalf("want 1 recommendation, got %d", len(recs))
	}
	first := recs[0].(map[string]any)
	if first["bestPrice"].(float64) != 62 || first["buyerName"] != "Buyer Y" {
		t.Fatalf("bad best offer: %v", first)
	}
	if first["recommendedAcquisitionPrice"].(float64) != 51.67 {
		t.Fatalf("want 51.67, got %v", first["recommendedAcquisitionPrice"])
	}

	// explicit override
	resp, body = doJSON(t, app, "GET", "/api/v1/products/"+productID+"/recommendations?margin=25", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("override: %d %v", resp.StatusCode, body)
	}
	if body["targetMarginPercent"].(float64) != 25 {
		t.Fatalf("override ignored: %v", body["targetMarginPercent"])
	}

	// out-of-range override rejected
	resp, _ = doJSON(t, app, "GET", "/api/v1/products/"+productID+"/recommendations?margin=99", token, nil)
	if resp.StatusCode != 400 {
		t.Fatalf("want 400 for bad margin, got %d", resp.StatusCode)
	}
}

func TestRecommendationEmptyAndUnknownProduct(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "clerk@stripledger.test")

	resp, prod := doJSON(t, app, "POST", "/api/v1/products", token, map[string]any{"name": "Unpriced Product"})
	if resp.StatusCode != 201 {
		t.Fatalf("create product: %d", resp.StatusCode)
	}
	id := prod["id"].(string)

	// no offers: empty list, 200
	resp, body := doJSON(t, app, "GET", "/api/v1/products/"+id+"/recommendations", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if len(body["recommendations"].([]any)) != 0 {
		t.Fatalf("want empty recommendations, got %v", body["recommendations"])
	}

	// unknown product: 404, not an exception surface
	resp, _ = doJSON(t, app, "GET", "/api/v1/products/no-such-id/recommendations", token, nil)
	if resp.StatusCode != 404 {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestCostEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "clerk@stripledger.test")

	resp, prod := doJSON(t, app, "POST", "/api/v1/products", token, map[string]any{"name": "Contour Next 100ct"})
	if resp.StatusCode != 201 {
		t.Fatalf("create product: %d", resp.StatusCode)
	}
	productID := prod["id"].(string)
	resp, cust := doJSON(t, app, "POST", "/api/v1/customers", token, map[string]any{
		"firstName": "Pat", "lastName": "Seller",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("create customer: %d %v", resp.StatusCode, cust)
	}

	// no history yet: cost 0 (documented zero-cost fallback)
	resp, body := doJSON(t, app, "GET", "/api/v1/products/"+productID+"/cost", token, nil)
	if resp.StatusCode != 200 || body["averageUnitCost"].(float64) != 0 {
		t.Fatalf("want zero cost, got %d %v", resp.StatusCode, body)
	}

	resp, pbody := doJSON(t, app, "POST", "/api/v1/purchases", token, map[string]any{
		"customerId":   cust["id"],
		"purchaseDate": "2026-08-20",
		"items": []map[string]any{
			{"productId": productID, "quantity": 5, "unitPrice": 2.00},
			{"productId": productID, "quantity": 5, "unitPrice": 4.00},
		},
	})
	if resp.StatusCode != 201 {
		t.Fatalf("create purchase: %d %v", resp.StatusCode, pbody)
	}

	// weighted average: (10+20)/10 = 3.00
	resp, body = doJSON(t, app, "GET", "/api/v1/products/"+productID+"/cost", token, nil)
	if resp.StatusCode != 200 || body["averageUnitCost"].(float64) != 3.00 {
		t.Fatalf("want 3.00, got %d %v", resp.StatusCode, body)
	}
}

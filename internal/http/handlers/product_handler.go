package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"stripledger/internal/domain"
	applog "stripledger/internal/log"
	"stripledger/internal/pricing"
	"stripledger/internal/services"
	"stripledger/internal/validate"
)

type ProductHandler struct {
	Catalog   *services.CatalogService
	Purchases *services.PurchaseService
	Recs      *services.RecommendationService
}

type productRequest struct {
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	CategoryID *string `json:"categoryId"`
	Notes      string  `json:"notes"`
}

func (r *productRequest) validate() (domain.Product, bool) {
	name, ok := validate.Name(r.Name)
	if !ok {
		return domain.Product{}, false
	}
	if r.CategoryID != nil {
		if _, ok := validate.ID(*r.CategoryID); !ok {
			return domain.Product{}, false
		}
	}
	return domain.Product{Name: name, Brand: r.Brand, Model: r.Model, CategoryID: r.CategoryID, Notes: r.Notes}, true
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	var (
		out []domain.Product
		err error
	)
	if catID := c.Query("categoryId"); catID != "" {
		out, err = h.Catalog.ListProductsByCategory(catID, page, pageSize)
	} else {
		out, err = h.Catalog.ListProducts(page, pageSize)
	}
	if err != nil {
		return fail(c, "products.list.fail", err)
	}
	if out == nil {
		out = []domain.Product{}
	}
	return c.JSON(out)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	out, err := h.Catalog.SearchProducts(c.Query("q"), c.Query("categoryId"), page, pageSize)
	if err != nil {
		return fail(c, "products.search.fail", err)
	}
	if out == nil {
		out = []domain.Product{}
	}
	return c.JSON(out)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "products.get.fail", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	p, ok := req.validate()
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid product fields")
	}
	created, err := h.Catalog.CreateProduct(p)
	if err != nil {
		return fail(c, "products.create.fail", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	p, okReq := req.validate()
	if !okReq {
		return jsonErr(c, fiber.StatusBadRequest, "invalid product fields")
	}
	p.ID = id
	if err := h.Catalog.UpdateProduct(p); err != nil {
		return fail(c, "products.update.fail", err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Catalog.DeactivateProduct(id); err != nil {
		return fail(c, "products.delete.fail", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Catalog.ReactivateProduct(id); err != nil {
		return fail(c, "products.reactivate.fail", err)
	}
	applog.Audit(c, "products.reactivate", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// Cost exposes the weighted-average recent unit acquisition cost.
func (h *ProductHandler) Cost(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if _, err := h.Catalog.GetProduct(id); err != nil {
		return fail(c, "products.cost.fail", err)
	}
	sample := c.QueryInt("sampleSize", pricing.DefaultCostSampleSize)
	cost, err := h.Purchases.AverageRecentUnitCost(id, sample)
	if err != nil {
		return fail(c, "products.cost.fail", err)
	}
	return c.JSON(fiber.Map{
		"productId":       id,
		"sampleSize":      sample,
		"averageUnitCost": round2(cost),
	})
}

type recommendationDTO struct {
	TierIndex                   int     `json:"tierIndex"`
	TierLabel                   string  `json:"tierLabel"`
	BuyerID                     string  `json:"buyerId"`
	BuyerName                   string  `json:"buyerName"`
	BestPrice                   float64 `json:"bestPrice"`
	RecommendedAcquisitionPrice float64 `json:"recommendedAcquisitionPrice"`
}

// Recommendations returns, per expiration tier, the best buyer offer and the
// acquisition ceiling for the target margin. ?margin= overrides the saved
// preference for this request only.
func (h *ProductHandler) Recommendations(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid id")
	}
	if _, err := h.Catalog.GetProduct(id); err != nil {
		return fail(c, "products.recommendations.fail", err)
	}

	var override *float64
	if raw := c.Query("margin"); raw != "" {
		m, ok := validate.MarginParam(raw)
		if !ok {
			return jsonErr(c, fiber.StatusBadRequest, "margin must be between 5 and 50")
		}
		override = &m
	}
	margin := h.Recs.TargetMargin(userID(c), override)

	recs, err := h.Recs.ForProduct(id, margin)
	if err != nil {
		return fail(c, "products.recommendations.fail", err)
	}
	out := make([]recommendationDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, recommendationDTO{
			TierIndex:                   r.TierIndex,
			TierLabel:                   r.TierLabel,
			BuyerID:                     r.Best.BuyerID,
			BuyerName:                   r.Best.BuyerName,
			BestPrice:                   r.Best.Price,
			RecommendedAcquisitionPrice: round2(r.RecommendedAcquisitionPrice),
		})
	}
	return c.JSON(fiber.Map{"productId": id, "targetMarginPercent": margin, "recommendations": out})
}

// round2 is presentation-only; engines and stored totals stay unrounded.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

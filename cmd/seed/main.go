// Command seed loads the reference data the business starts from: the known
// resale buyers, the category tree, a starter product catalog and per-buyer
// price sheets. Idempotent; safe to run repeatedly against DB_DSN.
package main

import (
	"log"

	"github.com/jmoiron/sqlx"

	"stripledger/internal/config"
	"stripledger/internal/repos"
)

type buyerSeed struct {
	ID, Name, Website string
	Preferred         bool
}

type categorySeed struct {
	ID, Name string
	ParentID string // empty = top level
}

type productSeed struct {
	ID, Name, Brand, Model, CategoryID string
}

type tierSeed struct {
	Label string
	Price *float64
}

type offerSeed struct {
	BuyerID, ProductID string
	Tiers              []tierSeed
	DingReduction      *float64
	Damaged            *float64
}

func fp(v float64) *float64 { return &v }

var buyers = []buyerSeed{
	{ID: "buy-teststripz", Name: "TestStripz", Website: "https://teststripz.example", Preferred: true},
	{ID: "buy-quickcash", Name: "QuickCash Strips", Website: "https://quickcashstrips.example"},
	{ID: "buy-stripsearch", Name: "StripSearch", Website: "https://stripsearch.example"},
}

var categories = []categorySeed{
	{ID: "cat-teststrips", Name: "Test Strips"},
	{ID: "cat-ts-freestyle", Name: "FreeStyle", ParentID: "cat-teststrips"},
	{ID: "cat-ts-contour", Name: "Contour", ParentID: "cat-teststrips"},
	{ID: "cat-ts-onetouch", Name: "OneTouch", ParentID: "cat-teststrips"},
	{ID: "cat-lancets", Name: "Lancets"},
	{ID: "cat-cgm", Name: "CGM Sensors"},
	{ID: "cat-cgm-dexcom", Name: "Dexcom", ParentID: "cat-cgm"},
	{ID: "cat-cgm-libre", Name: "Libre", ParentID: "cat-cgm"},
}

var products = []productSeed{
	{ID: "prod-fsl-100", Name: "FreeStyle Lite 100ct", Brand: "FreeStyle", Model: "Lite", CategoryID: "cat-ts-freestyle"},
	{ID: "prod-fsl-50", Name: "FreeStyle Lite 50ct", Brand: "FreeStyle", Model: "Lite", CategoryID: "cat-ts-freestyle"},
	{ID: "prod-cn-100", Name: "Contour Next 100ct", Brand: "Contour", Model: "Next", CategoryID: "cat-ts-contour"},
	{ID: "prod-ot-ultra-100", Name: "OneTouch Ultra 100ct", Brand: "OneTouch", Model: "Ultra", CategoryID: "cat-ts-onetouch"},
	{ID: "prod-ot-verio-100", Name: "OneTouch Verio 100ct", Brand: "OneTouch", Model: "Verio", CategoryID: "cat-ts-onetouch"},
	{ID: "prod-dexcom-g6", Name: "Dexcom G6 Sensor 3pk", Brand: "Dexcom", Model: "G6", CategoryID: "cat-cgm-dexcom"},
	{ID: "prod-libre-3", Name: "FreeStyle Libre 3 Sensor", Brand: "FreeStyle", Model: "Libre 3", CategoryID: "cat-cgm-libre"},
}

var offers = []offerSeed{
	{BuyerID: "buy-teststripz", ProductID: "prod-fsl-100",
		Tiers:         []tierSeed{{"Mint 12/26+", fp(65)}, {"Short 06/26", fp(45)}},
		DingReduction: fp(5), Damaged: fp(20)},
	{BuyerID: "buy-quickcash", ProductID: "prod-fsl-100",
		Tiers: []tierSeed{{"Mint 12/26+", fp(60)}, {"Short 06/26", fp(48)}}},
	{BuyerID: "buy-stripsearch", ProductID: "prod-fsl-100",
		Tiers: []tierSeed{{"Mint 12/26+", fp(65)}, {"Short 06/26", nil}}},
	{BuyerID: "buy-teststripz", ProductID: "prod-cn-100",
		Tiers:         []tierSeed{{"Mint 12/26+", fp(42)}, {"Short 06/26", fp(30)}},
		DingReduction: fp(4)},
	{BuyerID: "buy-quickcash", ProductID: "prod-ot-ultra-100",
		Tiers:   []tierSeed{{"Mint 12/26+", fp(38)}, {"Short 06/26", fp(25)}, {"Short 03/26", fp(15)}},
		Damaged: fp(10)},
	{BuyerID: "buy-teststripz", ProductID: "prod-dexcom-g6",
		Tiers: []tierSeed{{"Mint 12/26+", fp(210)}, {"Short 06/26", fp(150)}}},
}

func main() {
	cfg := config.Load()
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(db); err != nil {
		log.Fatal(err)
	}
	log.Printf("[seed] done: %d buyers, %d categories, %d products, %d price sheets",
		len(buyers), len(categories), len(products), len(offers))
}

func run(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, b := range buyers {
		if _, err := tx.Exec(`
		  INSERT INTO buyers(id, name, website, is_preferred)
		  VALUES(?,?,?,?)
		  ON CONFLICT(id) DO UPDATE SET website=excluded.website, is_preferred=excluded.is_preferred
		`, b.ID, b.Name, b.Website, b.Preferred); err != nil {
			return err
		}
	}

	for _, c := range categories {
		var parent any
		if c.ParentID != "" {
			parent = c.ParentID
		}
		if _, err := tx.Exec(`
		  INSERT INTO categories(id, name, parent_id)
		  VALUES(?,?,?)
		  ON CONFLICT(id) DO UPDATE SET name=excluded.name, parent_id=excluded.parent_id
		`, c.ID, c.Name, parent); err != nil {
			return err
		}
	}

	for _, p := range products {
		if _, err := tx.Exec(`
		  INSERT INTO products(id, name, brand, model, category_id)
		  VALUES(?,?,?,?,?)
		  ON CONFLICT(id) DO UPDATE SET
		    name=excluded.name, brand=excluded.brand, model=excluded.model,
		    category_id=excluded.category_id
		`, p.ID, p.Name, p.Brand, p.Model, p.CategoryID); err != nil {
			return err
		}
	}

	for _, o := range offers {
		offerID := "offer-" + o.BuyerID + "-" + o.ProductID
		if _, err := tx.Exec(`
		  INSERT INTO buyer_offers(id, buyer_id, product_id, ding_reduction_price, damaged_price, updated_at)
		  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
		  ON CONFLICT(buyer_id, product_id) DO UPDATE SET
		    ding_reduction_price=excluded.ding_reduction_price,
		    damaged_price=excluded.damaged_price,
		    updated_at=CURRENT_TIMESTAMP
		`, offerID, o.BuyerID, o.ProductID, o.DingReduction, o.Damaged); err != nil {
			return err
		}
		var id string
		if err := tx.Get(&id, `SELECT id FROM buyer_offers WHERE buyer_id=? AND product_id=?`, o.BuyerID, o.ProductID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM offer_tiers WHERE offer_id=?`, id); err != nil {
			return err
		}
		for i, t := range o.Tiers {
			if _, err := tx.Exec(`
			  INSERT INTO offer_tiers(offer_id, tier_index, label, price)
			  VALUES(?,?,?,?)
			`, id, i+1, t.Label, t.Price); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

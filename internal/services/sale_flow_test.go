package services_test

import (
	"math"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stripledger/internal/repos"
	"stripledger/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	fixtures := `
	INSERT INTO customers(id, first_name, last_name) VALUES ('cust-1','Pat','Seller');
	INSERT INTO buyers(id, name, is_preferred) VALUES
	  ('buy-x','Buyer X',0),
	  ('buy-y','Buyer Y',1);
	INSERT INTO products(id, name, brand, model) VALUES
	  ('prod-fs','FreeStyle Lite 100ct','FreeStyle','Lite'),
	  ('prod-new','Contour Next 50ct','Contour','Next');
	`
	if _, err := db.Exec(fixtures); err != nil {
		t.Fatal(err)
	}
	return db
}

func newServices(db *sqlx.DB) (*services.PurchaseService, *services.SaleService) {
	custRepo := repos.NewCustomerRepo(db)
	prodRepo := repos.NewProductRepo(db)
	purchSvc := services.NewPurchaseService(repos.NewPurchaseRepo(db), custRepo, prodRepo)
	saleSvc := services.NewSaleService(repos.NewSaleRepo(db), repos.NewBuyerRepo(db), prodRepo, purchSvc)
	return purchSvc, saleSvc
}

func TestSaleProfitFromPurchaseHistory(t *testing.T) {
	db := memdb(t)
	purchSvc, saleSvc := newServices(db)

	// acquisition history: (5*20 + 5*40)/10 = 30.00 average unit cost
	_, err := purchSvc.Create("cust-1", "2026-08-01", "", []services.LineItemInput{
		{ProductID: "prod-fs", Quantity: 5, UnitPrice: 20.00},
		{ProductID: "prod-fs", Quantity: 5, UnitPrice: 40.00},
	})
	if err != nil {
		t.Fatal(err)
	}

	cost, err := purchSvc.AverageRecentUnitCost("prod-fs", 10)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 30.00 {
		t.Fatalf("want avg cost 30.00, got %v", cost)
	}

	// sell 4 units at 50: revenue 200, cost 120, profit 80, margin 40%
	sale, err := saleSvc.Create("buy-y", "2026-08-15", "", []services.LineItemInput{
		{ProductID: "prod-fs", Quantity: 4, UnitPrice: 50.00},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sale.TotalRevenue != 200 || sale.TotalCost != 120 {
		t.Fatalf("bad totals: %+v", sale)
	}
	if sale.Profit != 80 || math.Abs(sale.ProfitMargin-40) > 1e-9 {
		t.Fatalf("bad profit/margin: %+v", sale)
	}

	// persisted with line-item costs
	got, items, err := saleSvc.Get(sale.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "PENDING" || len(items) != 1 {
		t.Fatalf("bad stored sale: %+v items=%d", got, len(items))
	}
	if items[0].UnitCost != 30 || items[0].CostTotal != 120 {
		t.Fatalf("bad stored costs: %+v", items[0])
	}
}

func TestSaleWithoutHistoryCostsZero(t *testing.T) {
	db := memdb(t)
	_, saleSvc := newServices(db)

	// no purchase history: cost 0, profit equals revenue
	sale, err := saleSvc.Create("buy-x", "2026-08-15", "", []services.LineItemInput{
		{ProductID: "prod-new", Quantity: 2, UnitPrice: 30.00},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sale.TotalCost != 0 || sale.Profit != 60 || sale.ProfitMargin != 100 {
		t.Fatalf("want zero-cost sale, got %+v", sale)
	}
}

func TestSaleRejectsBadInput(t *testing.T) {
	db := memdb(t)
	_, saleSvc := newServices(db)

	if _, err := saleSvc.Create("buy-x", "2026-08-15", "", []services.LineItemInput{
		{ProductID: "no-such-product", Quantity: 1, UnitPrice: 10},
	}); err != services.ErrUnknownProduct {
		t.Fatalf("want ErrUnknownProduct, got %v", err)
	}
	if _, err := saleSvc.Create("buy-x", "2026-08-15", "", nil); err != services.ErrNoItems {
		t.Fatalf("want ErrNoItems, got %v", err)
	}
	if _, err := saleSvc.Create("buy-x", "2026-08-15", "", []services.LineItemInput{
		{ProductID: "prod-fs", Quantity: 0, UnitPrice: 10},
	}); err != services.ErrBadQuantity {
		t.Fatalf("want ErrBadQuantity, got %v", err)
	}
	if err := saleSvc.UpdateStatus("whatever", "LOST"); err != services.ErrBadStatus {
		t.Fatalf("want ErrBadStatus, got %v", err)
	}
}

func TestAverageCostWindowSensitivity(t *testing.T) {
	db := memdb(t)
	purchSvc, _ := newServices(db)

	// two purchases; force distinct created_at so the recency window is stable
	p1, err := purchSvc.Create("cust-1", "2026-07-01", "old lot", []services.LineItemInput{
		{ProductID: "prod-fs", Quantity: 10, UnitPrice: 10.00},
	})
	if err != nil {
		t.Fatal(err)
	}
	p2, err := purchSvc.Create("cust-1", "2026-08-01", "new lot", []services.LineItemInput{
		{ProductID: "prod-fs", Quantity: 10, UnitPrice: 20.00},
	})
	if err != nil {
		t.Fatal(err)
	}
	mustExec(t, db, `UPDATE purchase_items SET created_at='2026-07-01 00:00:00' WHERE purchase_id=?`, p1.ID)
	mustExec(t, db, `UPDATE purchase_items SET created_at='2026-08-01 00:00:00' WHERE purchase_id=?`, p2.ID)

	// window covering both lots
	full, err := purchSvc.AverageRecentUnitCost("prod-fs", 10)
	if err != nil {
		t.Fatal(err)
	}
	if full != 15.00 {
		t.Fatalf("want 15.00 over both lots, got %v", full)
	}

	// shrinking the window below available history changes the answer
	recent, err := purchSvc.AverageRecentUnitCost("prod-fs", 1)
	if err != nil {
		t.Fatal(err)
	}
	if recent != 20.00 {
		t.Fatalf("want 20.00 over newest lot, got %v", recent)
	}

	// growing it beyond available history does not
	wide, err := purchSvc.AverageRecentUnitCost("prod-fs", 500)
	if err != nil {
		t.Fatal(err)
	}
	if wide != full {
		t.Fatalf("limit beyond history changed result: %v vs %v", wide, full)
	}
}

func TestSoftDeletedPurchaseLeavesCostWindow(t *testing.T) {
	db := memdb(t)
	purchSvc, _ := newServices(db)

	p, err := purchSvc.Create("cust-1", "2026-08-01", "", []services.LineItemInput{
		{ProductID: "prod-fs", Quantity: 10, UnitPrice: 99.00},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := purchSvc.Deactivate(p.ID); err != nil {
		t.Fatal(err)
	}
	cost, err := purchSvc.AverageRecentUnitCost("prod-fs", 10)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0 {
		t.Fatalf("deactivated purchase still feeding cost: %v", cost)
	}
}

func mustExec(t *testing.T, db *sqlx.DB, q string, args ...any) {
	t.Helper()
	if _, err := db.Exec(q, args...); err != nil {
		t.Fatal(err)
	}
}

package repos

import (
	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

const purchaseCols = `
  id, customer_id, purchase_date, notes, total, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

// PurchaseSummary is the list-view row (joined customer name).
type PurchaseSummary struct {
	ID           string  `db:"id" json:"id"`
	CustomerID   string  `db:"customer_id" json:"customerId"`
	CustomerName string  `db:"customer_name" json:"customerName"`
	PurchaseDate string  `db:"purchase_date" json:"purchaseDate"`
	Total        float64 `db:"total" json:"total"`
	ItemCount    int     `db:"item_count" json:"itemCount"`
	CreatedAt    string  `db:"created_at" json:"createdAt"`
}

func (r *PurchaseRepo) ListLatest(limit, offset int) ([]PurchaseSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []PurchaseSummary
	err := r.db.Select(&out, `
	  SELECT p.id, p.customer_id, c.first_name || ' ' || c.last_name AS customer_name,
	         p.purchase_date, p.total,
	         (SELECT COUNT(*) FROM purchase_items pi WHERE pi.purchase_id = p.id) AS item_count,
	         p.created_at
	  FROM purchases p
	  JOIN customers c ON c.id = p.customer_id
	  WHERE p.active = 1
	  ORDER BY datetime(p.created_at) DESC
	  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *PurchaseRepo) ListByCustomer(customerID string) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.Select(&out, `
	  SELECT `+purchaseCols+`
	  FROM purchases
	  WHERE customer_id = ? AND active = 1
	  ORDER BY datetime(created_at) DESC`, customerID)
	return out, err
}

func (r *PurchaseRepo) Get(id string) (domain.Purchase, []domain.PurchaseItem, error) {
	var p domain.Purchase
	if err := r.db.Get(&p, `SELECT `+purchaseCols+` FROM purchases WHERE id = ?`, id); err != nil {
		return domain.Purchase{}, nil, err
	}
	var items []domain.PurchaseItem
	if err := r.db.Select(&items, `
	  SELECT id, purchase_id, product_id, quantity, unit_price, total_price, created_at
	  FROM purchase_items
	  WHERE purchase_id = ?
	  ORDER BY created_at, id`, id); err != nil {
		return domain.Purchase{}, nil, err
	}
	return p, items, nil
}

// Create inserts the purchase header and its line items in one transaction.
func (r *PurchaseRepo) Create(p domain.Purchase, items []domain.PurchaseItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO purchases(id, customer_id, purchase_date, notes, total)
	  VALUES(?,?,?,?,?)
	`, p.ID, p.CustomerID, p.PurchaseDate, p.Notes, p.Total); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO purchase_items(id, purchase_id, product_id, quantity, unit_price, total_price)
		  VALUES(?,?,?,?,?,?)
		`, it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReplaceItems rewrites a purchase's line items and header fields, the
// update-and-recreate path for edits.
func (r *PurchaseRepo) ReplaceItems(p domain.Purchase, items []domain.PurchaseItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE purchases SET customer_id=?, purchase_date=?, notes=?, total=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND active=1
	`, p.CustomerID, p.PurchaseDate, p.Notes, p.Total, p.ID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM purchase_items WHERE purchase_id = ?`, p.ID); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO purchase_items(id, purchase_id, product_id, quantity, unit_price, total_price)
		  VALUES(?,?,?,?,?,?)
		`, it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PurchaseRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE purchases SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// RecentItems returns up to limit line items for a product, newest first.
// This ordered window is what gives the cost engine its recency bias.
// Line items on soft-deleted purchases are excluded.
func (r *PurchaseRepo) RecentItems(productID string, limit int) ([]domain.PurchaseItem, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []domain.PurchaseItem
	err := r.db.Select(&out, `
	  SELECT pi.id, pi.purchase_id, pi.product_id, pi.quantity, pi.unit_price, pi.total_price, pi.created_at
	  FROM purchase_items pi
	  JOIN purchases p ON p.id = pi.purchase_id
	  WHERE pi.product_id = ? AND p.active = 1
	  ORDER BY datetime(pi.created_at) DESC, pi.id DESC
	  LIMIT ?`, productID, limit)
	return out, err
}

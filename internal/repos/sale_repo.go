package repos

import (
	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

const saleCols = `
  id, buyer_id, sale_date, notes, total_revenue, total_cost, profit,
  profit_margin, status, active, created_at, COALESCE(updated_at,'') AS updated_at`

type SaleSummary struct {
	ID           string  `db:"id" json:"id"`
	BuyerID      string  `db:"buyer_id" json:"buyerId"`
	BuyerName    string  `db:"buyer_name" json:"buyerName"`
	SaleDate     string  `db:"sale_date" json:"saleDate"`
	TotalRevenue float64 `db:"total_revenue" json:"totalRevenue"`
	Profit       float64 `db:"profit" json:"profit"`
	ProfitMargin float64 `db:"profit_margin" json:"profitMargin"`
	Status       string  `db:"status" json:"status"`
	CreatedAt    string  `db:"created_at" json:"createdAt"`
}

func (r *SaleRepo) ListLatest(limit, offset int) ([]SaleSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []SaleSummary
	err := r.db.Select(&out, `
	  SELECT s.id, s.buyer_id, b.name AS buyer_name, s.sale_date,
	         s.total_revenue, s.profit, s.profit_margin, s.status, s.created_at
	  FROM sales s
	  JOIN buyers b ON b.id = s.buyer_id
	  WHERE s.active = 1
	  ORDER BY datetime(s.created_at) DESC
	  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *SaleRepo) ListByBuyer(buyerID string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleCols+`
	  FROM sales
	  WHERE buyer_id = ? AND active = 1
	  ORDER BY datetime(created_at) DESC`, buyerID)
	return out, err
}

func (r *SaleRepo) Get(id string) (domain.Sale, []domain.SaleItem, error) {
	var s domain.Sale
	if err := r.db.Get(&s, `SELECT `+saleCols+` FROM sales WHERE id = ?`, id); err != nil {
		return domain.Sale{}, nil, err
	}
	var items []domain.SaleItem
	if err := r.db.Select(&items, `
	  SELECT id, sale_id, product_id, quantity, unit_price, line_total, unit_cost, cost_total
	  FROM sale_items
	  WHERE sale_id = ?
	  ORDER BY id`, id); err != nil {
		return domain.Sale{}, nil, err
	}
	return s, items, nil
}

func (r *SaleRepo) Create(s domain.Sale, items []domain.SaleItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO sales(id, buyer_id, sale_date, notes, total_revenue, total_cost, profit, profit_margin, status)
	  VALUES(?,?,?,?,?,?,?,?,?)
	`, s.ID, s.BuyerID, s.SaleDate, s.Notes, s.TotalRevenue, s.TotalCost, s.Profit, s.ProfitMargin, s.Status); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO sale_items(id, sale_id, product_id, quantity, unit_price, line_total, unit_cost, cost_total)
		  VALUES(?,?,?,?,?,?,?,?)
		`, it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal, it.UnitCost, it.CostTotal); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SaleRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE sales SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SaleRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE sales SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

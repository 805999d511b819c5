package repos

import "github.com/jmoiron/sqlx"

type DashboardRepo struct{ db *sqlx.DB }

func NewDashboardRepo(db *sqlx.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// Stats are the aggregate counts and totals the dashboard page shows.
type Stats struct {
	Customers    int     `db:"customers" json:"customers"`
	Buyers       int     `db:"buyers" json:"buyers"`
	Products     int     `db:"products" json:"products"`
	Purchases    int     `db:"purchases" json:"purchases"`
	Sales        int     `db:"sales" json:"sales"`
	Offers       int     `db:"offers" json:"offers"`
	TotalRevenue float64 `db:"total_revenue" json:"totalRevenue"`
	TotalProfit  float64 `db:"total_profit" json:"totalProfit"`
}

func (r *DashboardRepo) Stats() (Stats, error) {
	var s Stats
	err := r.db.Get(&s, `
	  SELECT
	    (SELECT COUNT(*) FROM customers WHERE active=1) AS customers,
	    (SELECT COUNT(*) FROM buyers WHERE active=1) AS buyers,
	    (SELECT COUNT(*) FROM products WHERE active=1) AS products,
	    (SELECT COUNT(*) FROM purchases WHERE active=1) AS purchases,
	    (SELECT COUNT(*) FROM sales WHERE active=1) AS sales,
	    (SELECT COUNT(*) FROM buyer_offers) AS offers,
	    (SELECT COALESCE(SUM(total_revenue),0) FROM sales WHERE active=1 AND status != 'CANCELED') AS total_revenue,
	    (SELECT COALESCE(SUM(profit),0) FROM sales WHERE active=1 AND status != 'CANCELED') AS total_profit
	`)
	return s, err
}

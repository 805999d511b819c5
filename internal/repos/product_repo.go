package repos

import (
	"strings"

	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, brand, model, category_id, notes, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List(limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE active = 1
	  ORDER BY LOWER(name)
	  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *ProductRepo) ListByCategory(catID string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ? AND active = 1
	  ORDER BY LOWER(name)
	  LIMIT ? OFFSET ?`, catID, limit, offset)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Search(q, catID string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?)`
		pat := "%" + strings.ToLower(q) + "%"
		args = append(args, pat, pat, pat)
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY LOWER(name)
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, name, brand, model, category_id, notes)
	  VALUES(?,?,?,?,?,?)
	`, p.ID, p.Name, p.Brand, p.Model, p.CategoryID, p.Notes)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products SET name=?, brand=?, model=?, category_id=?, notes=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND active=1
	`, p.Name, p.Brand, p.Model, p.CategoryID, p.Notes, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Deactivate suppresses the product from active listings; purchase and sale
// history keep referencing it.
func (r *ProductRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE products SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ProductRepo) Reactivate(id string) error {
	res, err := r.db.Exec(`UPDATE products SET active=1, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=0`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Exists checks the reference regardless of active flag; historical records
// may point at deactivated products.
func (r *ProductRepo) Exists(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE id = ?`, id)
	return n > 0, err
}

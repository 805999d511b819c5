package repos

import (
	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `
  id, name, parent_id, active, created_at, COALESCE(updated_at,'') AS updated_at`

// List returns active categories, parents before children.
func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT `+categoryCols+`
	  FROM categories
	  WHERE active = 1
	  ORDER BY parent_id IS NOT NULL, LOWER(name)
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, parent_id)
	  VALUES(?,?,?)
	`, c.ID, c.Name, c.ParentID)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	res, err := r.db.Exec(`
	  UPDATE categories SET name=?, parent_id=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND active=1
	`, c.Name, c.ParentID, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *CategoryRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE categories SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// HasChildren reports whether any active subcategory points at id.
func (r *CategoryRepo) HasChildren(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE parent_id = ? AND active = 1`, id)
	return n > 0, err
}

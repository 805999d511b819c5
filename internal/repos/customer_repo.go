package repos

import (
	"strings"

	"stripledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `
  id, first_name, last_name, phone, email, street, city, state, zip, notes,
  active, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CustomerRepo) List(q string, limit, offset int) ([]domain.Customer, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)`
		pat := "%" + strings.ToLower(q) + "%"
		args = append(args, pat, pat, pat, pat)
	}
	args = append(args, limit, offset)

	var out []domain.Customer
	err := r.db.Select(&out, `
	  SELECT `+customerCols+`
	  FROM customers
	  WHERE `+where+`
	  ORDER BY LOWER(last_name), LOWER(first_name)
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	return c, err
}

func (r *CustomerRepo) Create(c domain.Customer) error {
	_, err := r.db.Exec(`
	  INSERT INTO customers(id, first_name, last_name, phone, email, street, city, state, zip, notes)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, c.ID, c.FirstName, c.LastName, c.Phone, c.Email, c.Street, c.City, c.State, c.Zip, c.Notes)
	return err
}

func (r *CustomerRepo) Update(c domain.Customer) error {
	res, err := r.db.Exec(`
	  UPDATE customers SET
	    first_name=?, last_name=?, phone=?, email=?, street=?, city=?, state=?, zip=?, notes=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND active=1
	`, c.FirstName, c.LastName, c.Phone, c.Email, c.Street, c.City, c.State, c.Zip, c.Notes, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Deactivate soft-deletes; purchase history stays intact.
func (r *CustomerRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE customers SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
